package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/BilalEnesS/calender-telegram-app/internal/observability"
)

// Bot is the Telegram long-polling transport. Updates are handled one at a
// time; there is no shared state between messages.
type Bot struct {
	api    *tgbotapi.BotAPI
	router *Router
	logger *slog.Logger
}

// New connects to the Telegram Bot API with the given token.
func New(token string, router *Router, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to Telegram")
	}
	return &Bot{
		api:    api,
		router: router,
		logger: logger,
	}, nil
}

// Run polls for updates until the context is canceled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("bot running", slog.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	msg := update.Message

	if msg.IsCommand() {
		if msg.Command() == "start" {
			b.reply(msg.Chat.ID, welcomeMessage)
		}
		return
	}

	reqCtx := observability.NewRequestContext(b.logger, msg.Chat.ID)
	reqCtx.Info("message received", slog.Int(observability.LogFieldMessageLen, len(msg.Text)))

	// Typing indicator is best-effort; processing continues regardless.
	if _, err := b.api.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping)); err != nil {
		reqCtx.Debug("typing action failed", slog.String("error", err.Error()))
	}

	b.reply(msg.Chat.ID, b.router.Route(ctx, reqCtx, msg.Text))
	reqCtx.Info("reply sent", slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send reply",
			slog.Int64(observability.LogFieldChatID, chatID),
			slog.String("error", err.Error()))
	}
}
