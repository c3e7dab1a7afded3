// Package telegram adapts the conversation engine to the Telegram Bot API:
// outbound reply delivery with failure classification, and inbound webhook
// normalization.
package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"foodshare/entity"
	"foodshare/internal/lib/sl"
	"foodshare/internal/queue"
)

// TelegramAPI defines the bot methods the messenger needs. Keeps the
// concrete bot type out and makes the messenger testable.
type TelegramAPI interface {
	SendMessage(chatId int64, text string, opts *tgbotapi.SendMessageOpts) (*tgbotapi.Message, error)
	EditMessageText(text string, opts *tgbotapi.EditMessageTextOpts) (*tgbotapi.Message, bool, error)
	SendLocation(chatId int64, latitude float64, longitude float64, opts *tgbotapi.SendLocationOpts) (*tgbotapi.Message, error)
	DeleteMessage(chatId int64, messageId int64, opts *tgbotapi.DeleteMessageOpts) (bool, error)
}

// Messenger delivers queued envelopes through the two bot accounts. It
// implements queue.Sender.
type Messenger struct {
	supply TelegramAPI
	demand TelegramAPI
	log    *slog.Logger
}

func NewMessenger(supply, demand TelegramAPI, log *slog.Logger) *Messenger {
	return &Messenger{
		supply: supply,
		demand: demand,
		log:    log.With(sl.Module("telegram")),
	}
}

func (m *Messenger) api(workflow entity.Workflow) TelegramAPI {
	if workflow == entity.WorkflowSupply {
		return m.supply
	}
	return m.demand
}

// Deliver sends one envelope and classifies the outcome for the processor.
func (m *Messenger) Deliver(ctx context.Context, env queue.Envelope) queue.Result {
	api := m.api(env.Workflow)
	reply := env.Reply

	if env.DeleteMessageID != 0 {
		// Best effort: the message may already be gone.
		if _, err := api.DeleteMessage(env.ChatID, env.DeleteMessageID, nil); err != nil {
			m.log.Debug("delete of triggering message failed",
				slog.Int64("chat_id", env.ChatID),
				slog.Int64("message_id", env.DeleteMessageID),
				sl.Err(err),
			)
		}
	}

	var err error
	switch {
	case reply.Coordinates != nil:
		err = m.sendLocation(api, env)
		if err == nil && reply.Text != "" {
			err = m.sendText(api, env)
		}
	case env.EditMessageID != 0:
		err = m.editText(api, env)
		var tgErr *tgbotapi.TelegramError
		if errors.As(err, &tgErr) && strings.Contains(tgErr.Description, "message to edit not found") {
			err = m.sendText(api, env)
		}
	default:
		err = m.sendText(api, env)
	}

	result := classify(err)
	if result != queue.Delivered {
		m.log.Warn("delivery failed",
			slog.Int64("chat_id", env.ChatID),
			slog.String("workflow", string(env.Workflow)),
			sl.Err(err),
		)
	}
	return result
}

func (m *Messenger) sendText(api TelegramAPI, env queue.Envelope) error {
	_, err := api.SendMessage(env.ChatID, env.Reply.Text, &tgbotapi.SendMessageOpts{
		ReplyMarkup: replyMarkup(env.Reply),
	})
	return err
}

func (m *Messenger) editText(api TelegramAPI, env queue.Envelope) error {
	opts := &tgbotapi.EditMessageTextOpts{
		ChatId:    env.ChatID,
		MessageId: env.EditMessageID,
	}
	if markup, ok := inlineMarkup(env.Reply); ok {
		opts.ReplyMarkup = markup
	}
	_, _, err := api.EditMessageText(env.Reply.Text, opts)
	return err
}

func (m *Messenger) sendLocation(api TelegramAPI, env queue.Envelope) error {
	lat, latErr := strconv.ParseFloat(env.Reply.Coordinates.Latitude, 64)
	lon, lonErr := strconv.ParseFloat(env.Reply.Coordinates.Longitude, 64)
	if latErr != nil || lonErr != nil {
		m.log.Error("bad coordinates in envelope",
			slog.String("latitude", env.Reply.Coordinates.Latitude),
			slog.String("longitude", env.Reply.Coordinates.Longitude),
		)
		return nil
	}
	opts := &tgbotapi.SendLocationOpts{}
	// With accompanying text the keyboard travels on the text message.
	if env.Reply.Text == "" {
		if markup, ok := inlineMarkup(env.Reply); ok {
			opts.ReplyMarkup = markup
		}
	}
	_, err := api.SendLocation(env.ChatID, lat, lon, opts)
	return err
}

func replyMarkup(reply entity.Reply) tgbotapi.ReplyMarkup {
	if len(reply.Buttons) == 0 {
		return tgbotapi.ReplyKeyboardRemove{RemoveKeyboard: true}
	}
	if reply.IsTextButtons {
		keyboard := make([][]tgbotapi.KeyboardButton, len(reply.Buttons))
		for i, row := range reply.Buttons {
			keyboard[i] = make([]tgbotapi.KeyboardButton, len(row))
			for j, btn := range row {
				keyboard[i][j] = tgbotapi.KeyboardButton{
					Text:           btn.Text,
					RequestContact: btn.RequestContact,
				}
			}
		}
		return tgbotapi.ReplyKeyboardMarkup{
			Keyboard:        keyboard,
			ResizeKeyboard:  true,
			OneTimeKeyboard: true,
		}
	}
	markup, _ := inlineMarkup(reply)
	return markup
}

func inlineMarkup(reply entity.Reply) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(reply.Buttons) == 0 || reply.IsTextButtons {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	keyboard := make([][]tgbotapi.InlineKeyboardButton, len(reply.Buttons))
	for i, row := range reply.Buttons {
		keyboard[i] = make([]tgbotapi.InlineKeyboardButton, len(row))
		for j, btn := range row {
			keyboard[i][j] = tgbotapi.InlineKeyboardButton{
				Text:         btn.Text,
				CallbackData: btn.Data,
				Url:          btn.URL,
			}
		}
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: keyboard}, true
}

// classify maps an API error onto the processor's outcome set. A blocked
// bot or a deleted chat is permanent; rate limits and server hiccups are
// worth retrying; everything else is dropped loudly.
func classify(err error) queue.Result {
	if err == nil {
		return queue.Delivered
	}

	var tgErr *tgbotapi.TelegramError
	if !errors.As(err, &tgErr) {
		// Transport-level failure, the request may never have left.
		return queue.Transient
	}

	desc := strings.ToLower(tgErr.Description)
	switch {
	case strings.Contains(desc, "message is not modified"):
		return queue.Delivered
	case tgErr.Code == 401 || tgErr.Code == 403:
		return queue.Unreachable
	case strings.Contains(desc, "chat not found"),
		strings.Contains(desc, "user is deactivated"),
		strings.Contains(desc, "bot was blocked"):
		return queue.Unreachable
	case tgErr.Code == 429 || tgErr.Code >= 500:
		return queue.Transient
	}
	return queue.Failed
}
