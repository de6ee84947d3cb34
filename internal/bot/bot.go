// Package bot is the Telegram surface: polling, routing and the
// command parser.
package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/noctua-labs/arcana-bot/internal/bot/filters"
	"github.com/noctua-labs/arcana-bot/internal/bot/middleware"
	"github.com/noctua-labs/arcana-bot/internal/config"
	"github.com/noctua-labs/arcana-bot/internal/features/admin"
	"github.com/noctua-labs/arcana-bot/internal/features/insight"
	"github.com/noctua-labs/arcana-bot/internal/features/journey"
	"github.com/noctua-labs/arcana-bot/internal/features/readings"
	"github.com/noctua-labs/arcana-bot/internal/features/seekers"
)

const helpText = `🔮 Arcana reads for you.

/card — draw your card of the day
/journey — your level, streak and progress
Send a photo of your palm for a palm reading.`

// Bot ties the handlers to the Telegram polling loop.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config
	loc *time.Location

	chatFilter  *filters.ChatFilter
	rateLimiter *middleware.RateLimiter

	seekerService *seekers.Service

	journeyHandler *journey.Handler
	readingHandler *readings.Handler
	palmHandler    *insight.Handler
	adminHandler   *admin.Handler

	parser *CommandParser

	// caps concurrent update handling
	inflight chan struct{}
}

// New creates the bot with all its dependencies.
func New(
	api *tgbotapi.BotAPI,
	cfg *config.Config,
	loc *time.Location,
	seekerService *seekers.Service,
	journeyHandler *journey.Handler,
	readingHandler *readings.Handler,
	palmHandler *insight.Handler,
	adminHandler *admin.Handler,
	chatFilter *filters.ChatFilter,
) *Bot {
	maxInflight := cfg.BotMaxInflight
	if maxInflight <= 0 {
		maxInflight = 64
	}

	return &Bot{
		api:            api,
		cfg:            cfg,
		loc:            loc,
		chatFilter:     chatFilter,
		rateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		seekerService:  seekerService,
		journeyHandler: journeyHandler,
		readingHandler: readingHandler,
		palmHandler:    palmHandler,
		adminHandler:   adminHandler,
		parser:         NewCommandParser(),
		inflight:       make(chan struct{}, maxInflight),
	}
}

// Start runs the update polling loop until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.BotUpdateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	log.WithFields(log.Fields{
		"max_inflight": b.cfg.BotMaxInflight,
		"timeout_sec":  b.cfg.BotUpdateTimeoutSeconds,
	}).Info("bot started, waiting for messages")

	for {
		select {
		case <-ctx.Done():
			log.Info("bot stopping (ctx done)")
			b.api.StopReceivingUpdates()
			b.rateLimiter.Close()
			return

		case update, ok := <-updates:
			if !ok {
				log.Info("updates channel closed, bot stopped")
				return
			}

			b.inflight <- struct{}{}
			go func(upd tgbotapi.Update) {
				defer func() { <-b.inflight }()
				b.handleUpdate(ctx, upd)
			}(update)
		}
	}
}

// today is the bot's calendar date in the configured timezone. Every
// handler call passes it down explicitly.
func (b *Bot) today() string {
	return journey.DayOf(time.Now().In(b.loc)).String()
}

// handleUpdate processes one Telegram update.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer middleware.RecoverFromPanic()

	message := update.Message
	if message == nil {
		return
	}

	middleware.LogMessage(message)

	if !b.chatFilter.CheckAccess(ctx, message) {
		return
	}

	if message.From != nil && !b.rateLimiter.Allow(message.From.ID) {
		log.WithField("user_id", message.From.ID).Debug("rate limited")
		return
	}

	chatID := message.Chat.ID
	userID := message.From.ID

	if err := b.seekerService.EnsureSeeker(ctx, userID,
		message.From.UserName, message.From.FirstName, message.From.LastName,
	); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("EnsureSeeker failed")
	}

	// Palm photos route by content, not by command.
	if len(message.Photo) > 0 {
		if b.cfg.FeaturePalmEnabled {
			b.palmHandler.HandlePalmPhoto(ctx, chatID, userID, message.Photo)
		} else {
			b.sendMessage(chatID, "🖐 Palm readings are taking a rest. Try /card instead.")
		}
		return
	}

	if message.Text == "" {
		return
	}

	// Admin dialog state takes the message before command routing.
	if b.adminHandler.HandleAdminMessage(ctx, chatID, userID, message.Text) {
		return
	}

	cmd, args, isCommand := b.parser.ParseCommand(message.Text)
	if !isCommand {
		return
	}
	log.WithFields(log.Fields{
		"cmd":  cmd,
		"args": args,
	}).Debug("routing command")

	b.routeCommand(ctx, chatID, userID, cmd, args)
}

// routeCommand dispatches a parsed command.
func (b *Bot) routeCommand(ctx context.Context, chatID, userID int64, cmd string, args []string) {
	switch cmd {
	case "start":
		b.sendMessage(chatID, "✨ Welcome, seeker.\n\n"+helpText)

	case "help":
		b.sendMessage(chatID, helpText)

	case "card":
		b.readingHandler.HandleCard(ctx, chatID, userID, b.today())

	case "journey":
		b.journeyHandler.HandleJourney(ctx, chatID, userID, b.today())

	case "login":
		b.adminHandler.HandleLogin(ctx, chatID, userID)

	default:
		b.sendMessage(chatID, "🤔 Unknown command. Try /help.")
	}
}

// sendMessage is the plain-text send utility.
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", chatID).Error("failed to send message")
	}
}

// SendMessageToUser delivers a message to a user's DM (reminders).
func (b *Bot) SendMessageToUser(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("could not deliver message")
	}
}

// CommandParser parses commands with / and ! prefixes.
type CommandParser struct {
	validPrefixes []string
}

// NewCommandParser creates the parser.
func NewCommandParser() *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"/", "!"},
	}
}

// ParseCommand splits text into a command and its arguments.
// "/card@ArcanaBot" parses the same as "/card".
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}
	if !hasPrefix {
		return "", nil, false
	}

	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) == 0 {
		return "", nil, false
	}

	command := strings.ToLower(parts[0])
	if at := strings.IndexByte(command, '@'); at >= 0 {
		command = command[:at]
	}

	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}
	return command, args, true
}
