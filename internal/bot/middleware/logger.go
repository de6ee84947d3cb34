// Package middleware holds the cross-cutting update handlers: logging,
// panic recovery and rate limiting.
package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/noctua-labs/arcana-bot/internal/common"
)

// LogMessage logs an incoming message: user_id, chat_id, username and
// a truncated text preview. Photo messages log as "<photo>".
func LogMessage(message *tgbotapi.Message) {
	if message == nil || message.From == nil || message.Chat == nil {
		return
	}

	preview := common.Truncate(message.Text, 50)
	if preview == "" && len(message.Photo) > 0 {
		preview = "<photo>"
	}

	log.WithFields(log.Fields{
		"user_id":  message.From.ID,
		"chat_id":  message.Chat.ID,
		"username": message.From.UserName,
		"text":     preview,
	}).Debug("incoming message")
}
