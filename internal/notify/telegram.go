// Package notify delivers the rendered dashboard to a Telegram chat.
// Delivery is optional: the image on disk is the primary output and a
// failed send never fails the run.
package notify

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Telegram sends dashboard images to a single chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegram creates a Telegram sender for the given bot token and
// chat id.
func NewTelegram(token, chatID string) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("telegram chat id %q: %w", chatID, err)
	}
	return &Telegram{
		bot:    bot,
		chatID: id,
		logger: log.With().Str("component", "telegram").Logger(),
	}, nil
}

// SendDashboard uploads the rendered image as a photo with a caption.
func (t *Telegram) SendDashboard(path, caption string) error {
	photo := tgbotapi.NewPhoto(t.chatID, tgbotapi.FilePath(path))
	photo.Caption = caption
	if _, err := t.bot.Send(photo); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	t.logger.Info().Str("path", path).Msg("dashboard delivered")
	return nil
}
