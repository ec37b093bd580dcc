package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"ytbot/internal/core/domain"
	"ytbot/internal/flow"
)

const startText = "🎬 YouTube Downloader Bot\n\n" +
	"• Videos & playlists\n" +
	"• MP4 / MP3 / Best\n" +
	"• Save to server or send to Telegram\n" +
	"• /cancel anytime\n\n" +
	"Just send a YouTube link."

const msgNotAllowed = "⛔ You are not allowed to use this bot"

// NewAPI creates the bot client, optionally against a self-hosted bot API
// server (needed for large file uploads).
func NewAPI(token, endpoint string) (*tgbotapi.BotAPI, error) {
	var api *tgbotapi.BotAPI
	var err error
	if endpoint != "" {
		api, err = tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint+"/bot%s/%s")
	} else {
		api, err = tgbotapi.NewBotAPI(token)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API client: %w", err)
	}
	return api, nil
}

// Bot runs the update loop and routes incoming events into the flow. It does
// no coordination of its own; every decision lives behind the flow.
type Bot struct {
	api     *tgbotapi.BotAPI
	flow    *flow.Flow
	allowed map[int64]struct{}
	logger  *zap.Logger
}

func NewBot(api *tgbotapi.BotAPI, fl *flow.Flow, allowedUserIDs []int64, logger *zap.Logger) *Bot {
	var allowed map[int64]struct{}
	if len(allowedUserIDs) > 0 {
		allowed = make(map[int64]struct{}, len(allowedUserIDs))
		for _, id := range allowedUserIDs {
			allowed[id] = struct{}{}
		}
	}
	return &Bot{api: api, flow: fl, allowed: allowed, logger: logger}
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot listening for updates", zap.String("username", b.api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	if !b.isAllowed(userID) {
		b.logger.Info("ignoring message from disallowed user", zap.Int64("user_id", userID))
		_ = b.sendNotAllowed(chatID)
		return
	}

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			_, _ = b.api.Send(tgbotapi.NewMessage(chatID, startText))
		case "cancel":
			b.flow.Cancel(ctx, userID, chatID)
		case "video":
			b.flow.HandleSendMode(ctx, userID, chatID, domain.SendModeVideo)
		case "doc":
			b.flow.HandleSendMode(ctx, userID, chatID, domain.SendModeDocument)
		default:
			_, _ = b.api.Send(tgbotapi.NewMessage(chatID, "Unknown command. Try /start"))
		}
		return
	}

	if message.Text != "" {
		b.flow.HandleText(ctx, userID, chatID, message.Text)
	}
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Acknowledge first so the client stops its spinner even if handling fails.
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Debug("callback ack failed", zap.Error(err))
	}

	if callback.From == nil || callback.Message == nil {
		return
	}
	userID := callback.From.ID
	if !b.isAllowed(userID) {
		b.logger.Info("ignoring callback from disallowed user", zap.Int64("user_id", userID))
		return
	}

	b.flow.HandleCallback(ctx, userID, callback.Message.Chat.ID, callback.Message.MessageID, callback.Data)
}

func (b *Bot) isAllowed(userID int64) bool {
	if b.allowed == nil {
		return true
	}
	_, ok := b.allowed[userID]
	return ok
}

func (b *Bot) sendNotAllowed(chatID int64) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, msgNotAllowed))
	return err
}
