// Package filters decides which updates the bot handles at all.
package filters

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/noctua-labs/arcana-bot/internal/features/seekers"
)

// ChatFilter admits private chats only and rejects blocked seekers.
// Group chats are ignored outright: readings are a one-on-one thing.
type ChatFilter struct {
	seekerService *seekers.Service
}

func NewChatFilter(seekerService *seekers.Service) *ChatFilter {
	return &ChatFilter{seekerService: seekerService}
}

func (f *ChatFilter) CheckAccess(ctx context.Context, message *tgbotapi.Message) bool {
	if message == nil || message.Chat == nil || message.From == nil {
		log.WithField("component", "ChatFilter").Warn("nil message/chat/from")
		return false
	}

	logger := log.WithFields(log.Fields{
		"component": "ChatFilter",
		"chat_id":   message.Chat.ID,
		"chat_type": message.Chat.Type,
		"user_id":   message.From.ID,
	})

	if !message.Chat.IsPrivate() {
		logger.Debug("deny: not a private chat")
		return false
	}

	seeker, err := f.seekerService.GetByUserID(ctx, message.From.ID)
	if err == nil && seeker.IsBlocked {
		logger.Info("deny: blocked seeker")
		return false
	}

	// Unknown users pass: registration happens right after this check.
	return true
}
