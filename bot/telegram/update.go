package telegram

import (
	"strconv"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"foodshare/bot/engine"
	"foodshare/entity"
)

// Normalize converts a raw Telegram update into the engine's inbound form.
// Updates that carry nothing dispatchable return ok=false.
func Normalize(workflow entity.Workflow, upd *tgbotapi.Update) (engine.Inbound, bool) {
	switch {
	case upd.CallbackQuery != nil:
		return normalizeCallback(workflow, upd.CallbackQuery)
	case upd.Message != nil:
		return normalizeMessage(workflow, upd.Message)
	}
	return engine.Inbound{}, false
}

func normalizeMessage(workflow entity.Workflow, msg *tgbotapi.Message) (engine.Inbound, bool) {
	if msg.From == nil {
		return engine.Inbound{}, false
	}
	in := engine.Inbound{
		Identity: entity.Identity{
			Provider: entity.ProviderTelegram,
			Workflow: workflow,
			UserID:   strconv.FormatInt(msg.From.Id, 10),
		},
		ChatID:   msg.Chat.Id,
		Username: msg.From.Username,
	}

	switch {
	case msg.Contact != nil:
		// A shared contact card is treated as typed phone input.
		in.Event.Text = msg.Contact.PhoneNumber
	case msg.Location != nil:
		in.Event.Coordinates = &entity.Coordinates{
			Latitude:  strconv.FormatFloat(msg.Location.Latitude, 'f', 6, 64),
			Longitude: strconv.FormatFloat(msg.Location.Longitude, 'f', 6, 64),
		}
	case strings.HasPrefix(msg.Text, "/"):
		in.Event.Slash = slashName(msg.Text)
	case msg.Text != "":
		in.Event.Text = msg.Text
	default:
		return engine.Inbound{}, false
	}
	return in, true
}

func normalizeCallback(workflow entity.Workflow, cb *tgbotapi.CallbackQuery) (engine.Inbound, bool) {
	if cb.Data == "" || cb.Message == nil {
		return engine.Inbound{}, false
	}
	return engine.Inbound{
		Identity: entity.Identity{
			Provider: entity.ProviderTelegram,
			Workflow: workflow,
			UserID:   strconv.FormatInt(cb.From.Id, 10),
		},
		ChatID:   cb.Message.GetChat().Id,
		Username: cb.From.Username,
		Event:    engine.Event{Token: cb.Data},
		Origin: &engine.MessageRef{
			MessageID: cb.Message.GetMessageId(),
			HasText:   true,
		},
		CallbackID: cb.Id,
	}, true
}

// CallbackAck is the method-in-response webhook body that answers a callback
// query without a second API call, stopping the client's loading spinner.
type CallbackAck struct {
	Method          string `json:"method"`
	CallbackQueryID string `json:"callback_query_id"`
}

func NewCallbackAck(callbackID string) CallbackAck {
	return CallbackAck{Method: "answerCallbackQuery", CallbackQueryID: callbackID}
}

// slashName strips the slash and the "@botname" suffix used in groups.
func slashName(text string) string {
	name := strings.TrimPrefix(text, "/")
	if i := strings.IndexAny(name, " @"); i >= 0 {
		name = name[:i]
	}
	return name
}
