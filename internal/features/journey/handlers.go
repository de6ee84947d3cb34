// Package journey — handlers.go renders the /journey command: level,
// lifetime count, streak and the at-risk warning.
package journey

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/noctua-labs/arcana-bot/internal/common"
)

// Handler handles journey commands.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler creates a journey command handler.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleJourney handles /journey — shows the current journey state.
//
// Response shape:
//
//	🔮 Your journey
//	Level: Apprentice (17 readings)
//	Current streak: 4 days
//	⚠️ Streak at risk — draw today's card to keep it!
func (h *Handler) HandleJourney(ctx context.Context, chatID, userID int64, today string) {
	// Reconcile first so a lapsed streak is shown as zero, not stale.
	profile, err := h.service.Reconcile(ctx, userID, today)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("journey reconcile failed")
		h.sendMessage(chatID, "❌ Could not update your progress. Try again in a moment.")
		return
	}

	status, err := h.service.Status(ctx, userID, today)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("journey status failed")
		h.sendMessage(chatID, "❌ Could not update your progress. Try again in a moment.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🔮 Your journey\n\n")
	sb.WriteString(fmt.Sprintf("Level: %s (%d %s)\n",
		profile.Level, profile.TotalReadings, common.PluralizeReadings(profile.TotalReadings)))
	sb.WriteString(fmt.Sprintf("Current streak: %s\n", common.FormatDays(status.CurrentStreak)))

	if status.IsStreakAtRisk {
		sb.WriteString("\n⚠️ Streak at risk — draw today's card to keep it!")
	} else if status.CurrentStreak > 0 {
		sb.WriteString("\n✅ Today's reading is done. See you tomorrow!")
	} else {
		sb.WriteString("\nDraw a card with /card to start a streak.")
	}

	h.sendMessage(chatID, sb.String())
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
