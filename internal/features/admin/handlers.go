// Package admin — handlers.go drives the admin panel conversation.
// The panel works over a Reply Keyboard in private messages.
// Flow: authenticate, keyboard, pick action, stepwise dialog.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/noctua-labs/arcana-bot/internal/common"
	"github.com/noctua-labs/arcana-bot/internal/features/seekers"
)

// Keyboard button labels.
const (
	buttonSetProgress = "Set progress"
	buttonLogout      = "Log out"
)

// overridePending carries the selected seeker between dialog steps.
type overridePending struct {
	seeker *seekers.Seeker
}

// Handler handles the admin panel.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
}

// NewHandler creates the admin panel handler.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{service: service, bot: bot}
}

// HandleLogin handles /login in a private chat: starts the password
// prompt, or reopens the keyboard if a session is already active.
func (h *Handler) HandleLogin(ctx context.Context, chatID, userID int64) {
	if !h.isAdmin(ctx, userID) {
		h.sendMessage(chatID, "❌ "+common.ErrNotAdmin.Error())
		return
	}

	if h.service.HasActiveSession(ctx, userID) {
		h.showKeyboard(chatID)
		return
	}

	h.sendMessage(chatID, "🔐 Enter the admin password:")
	h.service.SetState(userID, StateAwaitingPassword, nil)
}

// HandleAdminMessage routes any private message from an administrator
// through the dialog state machine. Returns false when the message is
// not admin traffic and should fall through to the normal handlers.
func (h *Handler) HandleAdminMessage(ctx context.Context, chatID, userID int64, text string) bool {
	if !h.isAdmin(ctx, userID) {
		return false
	}

	state := h.service.GetState(userID)

	if state != nil && state.State == StateAwaitingPassword {
		h.handlePasswordInput(ctx, chatID, userID, text)
		return true
	}

	if !h.service.HasActiveSession(ctx, userID) {
		return false
	}

	if err := h.service.repo.UpdateActivity(ctx, userID); err != nil {
		log.WithError(err).Debug("failed to bump admin session activity")
	}

	if state != nil {
		switch state.State {
		case StateOverrideSelect:
			h.handleOverrideSelect(ctx, chatID, userID, text)
			return true
		case StateOverrideCounters:
			h.handleOverrideCounters(ctx, chatID, userID, text)
			return true
		}
	}

	switch text {
	case buttonSetProgress:
		h.startOverride(ctx, chatID, userID)
		return true
	case buttonLogout:
		if err := h.service.Logout(ctx, userID); err != nil {
			log.WithError(err).Error("admin logout failed")
		}
		h.sendMessage(chatID, "👋 Logged out.")
		return true
	}

	return false
}

// handlePasswordInput checks the entered password.
func (h *Handler) handlePasswordInput(ctx context.Context, chatID, userID int64, password string) {
	err := h.service.VerifyPassword(ctx, userID, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTooManyAttempts), errors.Is(err, common.ErrWrongPassword):
			h.sendMessage(chatID, "❌ "+err.Error())
		default:
			log.WithError(err).Error("password verification failed")
			h.sendMessage(chatID, "❌ Something went wrong, try again later.")
		}
		h.service.ClearState(userID)
		return
	}

	h.service.ClearState(userID)
	h.sendMessage(chatID, "✅ Authenticated.")
	h.showKeyboard(chatID)
}

// showKeyboard displays the admin panel keyboard.
func (h *Handler) showKeyboard(chatID int64) {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonSetProgress),
			tgbotapi.NewKeyboardButton(buttonLogout),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "✅ Admin panel is open")
	msg.ReplyMarkup = keyboard
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("failed to send keyboard")
	}
}

// --- Set progress (3 steps) ---

// startOverride — step 1: list seekers to pick from.
func (h *Handler) startOverride(ctx context.Context, chatID, userID int64) {
	list, err := h.service.ListSeekers(ctx)
	if err != nil || len(list) == 0 {
		h.sendMessage(chatID, "No seekers registered yet")
		return
	}

	var sb strings.Builder
	sb.WriteString("Pick a seeker (send the number):\n\n")
	for i, seeker := range list {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, seeker.DisplayName()))
	}

	h.sendMessage(chatID, sb.String())
	h.service.SetState(userID, StateOverrideSelect, list)
}

// handleOverrideSelect — step 2: the admin picked a number.
func (h *Handler) handleOverrideSelect(ctx context.Context, chatID, userID int64, text string) {
	state := h.service.GetState(userID)
	list := state.Data.([]*seekers.Seeker)

	num, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || num < 1 || num > len(list) {
		h.sendMessage(chatID, "❌ Invalid number. Try again.")
		return
	}

	selected := list[num-1]
	h.sendMessage(chatID, fmt.Sprintf(
		"Enter new counters for %s as \"<total> <streak>\", e.g. 17 4:",
		selected.DisplayName()))
	h.service.SetState(userID, StateOverrideCounters, &overridePending{seeker: selected})
}

// handleOverrideCounters — step 3: parse and apply the new counters.
func (h *Handler) handleOverrideCounters(ctx context.Context, chatID, userID int64, text string) {
	state := h.service.GetState(userID)
	pending := state.Data.(*overridePending)

	fields := strings.Fields(text)
	if len(fields) != 2 {
		h.sendMessage(chatID, "❌ Expected two numbers: \"<total> <streak>\"")
		return
	}
	total, err1 := strconv.Atoi(fields[0])
	streak, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || total < 0 || streak < 0 {
		h.sendMessage(chatID, "❌ Both values must be non-negative integers")
		return
	}

	if err := h.service.OverrideJourney(ctx, pending.seeker.UserID, total, streak); err != nil {
		log.WithError(err).WithField("target", pending.seeker.UserID).Error("journey override failed")
		h.sendMessage(chatID, fmt.Sprintf("❌ Error: %s", err.Error()))
		h.service.ClearState(userID)
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("✅ Progress set: %s now has %d readings, streak %d",
		pending.seeker.DisplayName(), total, streak))
	h.service.ClearState(userID)
}

func (h *Handler) isAdmin(ctx context.Context, userID int64) bool {
	return h.service.seekerSvc.IsAdmin(ctx, userID)
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
