package notify

import (
	"context"
	"fmt"

	"github.com/centavo-app/centavo-backend/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// AlertSink receives alerts found by the background sweep
type AlertSink interface {
	Notify(ctx context.Context, alerts []domain.Alert)
}

// NoOpSink discards alerts; used when no sink is configured
type NoOpSink struct{}

func (NoOpSink) Notify(ctx context.Context, alerts []domain.Alert) {}

// TelegramSink forwards danger alerts to a Telegram chat. Delivery failures
// are logged and swallowed; notification is best-effort.
type TelegramSink struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegramSink creates a sink for the given bot token and chat
func NewTelegramSink(token string, chatID int64, logger zerolog.Logger) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramSink{
		bot:    bot,
		chatID: chatID,
		logger: logger.With().Str("component", "telegram_sink").Logger(),
	}, nil
}

// Notify sends one message per danger alert
func (s *TelegramSink) Notify(_ context.Context, alerts []domain.Alert) {
	for _, a := range alerts {
		if a.Severity != domain.AlertSeverityDanger {
			continue
		}
		msg := tgbotapi.NewMessage(s.chatID, fmt.Sprintf("⚠️ %s", a.Message))
		if _, err := s.bot.Send(msg); err != nil {
			s.logger.Warn().Err(err).Str("alert_type", string(a.Type)).Msg("Failed to deliver alert")
		}
	}
}
