// Package insight — handlers.go turns a palm photo message into a
// palm reading.
package insight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// maxPhotoBytes caps the download; Telegram photos are re-encoded
// JPEGs well under this.
const maxPhotoBytes = 10 << 20

// Handler handles palm photo messages.
type Handler struct {
	service *Service
	bot     *tgbotapi.BotAPI
	http    *http.Client
}

// NewHandler creates a palm-reading handler.
func NewHandler(service *Service, bot *tgbotapi.BotAPI) *Handler {
	return &Handler{
		service: service,
		bot:     bot,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// HandlePalmPhoto downloads the largest photo size and runs the
// two-stage reading. The typing indicator covers the model latency.
func (h *Handler) HandlePalmPhoto(ctx context.Context, chatID, userID int64, photos []tgbotapi.PhotoSize) {
	if len(photos) == 0 {
		return
	}
	// Telegram sorts sizes ascending; the last one is the original.
	photo := photos[len(photos)-1]

	if _, err := h.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.WithError(err).Debug("failed to send chat action")
	}

	image, err := h.downloadPhoto(ctx, photo.FileID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("palm photo download failed")
		h.sendMessage(chatID, "❌ Could not fetch your photo. Please send it again.")
		return
	}

	reading, err := h.service.ReadPalm(ctx, userID, image, "image/jpeg")
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("palm reading failed")
		if errors.Is(err, ErrPalmUnreadable) {
			h.sendMessage(chatID, "🖐 I could not make out the lines in that photo. "+
				"Try again in good light, palm open and facing the camera.")
		} else {
			h.sendMessage(chatID, "❌ The reading did not come through. Try again in a moment.")
		}
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("🖐 Your palm reading\n\n%s", reading.Narrative))
}

func (h *Handler) downloadPhoto(ctx context.Context, fileID string) ([]byte, error) {
	url, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download photo: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
	if err != nil {
		return nil, fmt.Errorf("read photo body: %w", err)
	}
	return data, nil
}

func (h *Handler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Error("failed to send message")
	}
}
