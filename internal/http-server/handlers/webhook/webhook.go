package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"foodshare/bot/engine"
	"foodshare/bot/telegram"
	"foodshare/entity"
	"foodshare/internal/lib/api/response"
	"foodshare/internal/lib/sl"
)

// Core is the conversation entry point the webhook feeds.
type Core interface {
	HandleInbound(ctx context.Context, in engine.Inbound) error
}

// Telegram accepts one bot's webhook updates. Telegram retries non-200
// responses, so handler failures are logged and acknowledged anyway.
func Telegram(log *slog.Logger, core Core, workflow entity.Workflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.webhook"),
			slog.String("workflow", string(workflow)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var upd tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			logger.Error("failed to decode update", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		in, ok := telegram.Normalize(workflow, &upd)
		if !ok {
			render.JSON(w, r, response.Ok(nil))
			return
		}

		if err := core.HandleInbound(r.Context(), in); err != nil {
			logger.Error("inbound handling failed", sl.Err(err))
		}
		if in.CallbackID != "" {
			// Answer the callback in the webhook response itself; a separate
			// answerCallbackQuery call would cost one more round trip.
			render.JSON(w, r, telegram.NewCallbackAck(in.CallbackID))
			return
		}
		render.JSON(w, r, response.Ok(nil))
	}
}
