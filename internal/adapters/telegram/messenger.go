package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ytbot/internal/core/ports"
)

// Messenger implements ports.Messenger on top of the Telegram Bot API.
type Messenger struct {
	api *tgbotapi.BotAPI
}

func NewMessenger(api *tgbotapi.BotAPI) *Messenger {
	return &Messenger{api: api}
}

func (m *Messenger) SendText(_ context.Context, chatID int64, text string) error {
	_, err := m.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (m *Messenger) SendChoices(_ context.Context, chatID int64, prompt string, rows [][]ports.Button) error {
	msg := tgbotapi.NewMessage(chatID, prompt)
	msg.ReplyMarkup = keyboard(rows)
	_, err := m.api.Send(msg)
	return err
}

func (m *Messenger) EditText(_ context.Context, chatID int64, messageID int, text string) error {
	_, err := m.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text))
	return err
}

func (m *Messenger) EditChoices(_ context.Context, chatID int64, messageID int, prompt string, rows [][]ports.Button) error {
	_, err := m.api.Send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, prompt, keyboard(rows)))
	return err
}

func (m *Messenger) SendVideo(_ context.Context, chatID int64, path string) error {
	video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
	video.SupportsStreaming = true
	_, err := m.api.Send(video)
	return err
}

func (m *Messenger) SendDocument(_ context.Context, chatID int64, path string) error {
	_, err := m.api.Send(tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path)))
	return err
}

func keyboard(rows [][]ports.Button) tgbotapi.InlineKeyboardMarkup {
	var kb [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Tag))
		}
		kb = append(kb, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kb...)
}
