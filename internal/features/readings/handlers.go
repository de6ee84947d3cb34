// Package readings — handlers.go renders the /card command.
package readings

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/noctua-labs/arcana-bot/internal/common"
)

// Handler handles reading commands.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler creates a readings command handler.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleCard handles /card — draws (or replays) the card of the day.
//
// Response shape:
//
//	🃏 The Star (upright)
//
//	<interpretation>
//
//	🔥 Streak: 4 days · Level: Novice
func (h *Handler) HandleCard(ctx context.Context, chatID, userID int64, today string) {
	result, err := h.service.DrawDaily(ctx, userID, today)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("daily draw failed")
		h.sendMessage(chatID, "❌ Could not update your progress. Try again in a moment.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🃏 %s (%s)\n\n", result.Reading.Card, result.Reading.Orientation))
	sb.WriteString(result.Reading.Interpretation)

	if result.Reused {
		sb.WriteString("\n\n✨ You already drew today. The cards do not change their mind — come back tomorrow.")
	} else if result.Profile != nil {
		sb.WriteString(fmt.Sprintf("\n\n🔥 Streak: %s · Level: %s",
			common.FormatDays(result.Profile.CurrentStreak), result.Profile.Level))
	}

	h.sendMessage(chatID, sb.String())
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
