package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"foodshare/entity"
	"foodshare/internal/config"
	"foodshare/internal/http-server/handlers/errors"
	"foodshare/internal/http-server/handlers/webhook"
	"foodshare/internal/http-server/middleware/timeout"
	"foodshare/internal/lib/api/response"
	"foodshare/internal/lib/sl"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

// New builds the router and serves until the listener fails. The webhook
// path segment acts as a shared secret; anything else is rejected before
// the update is even parsed.
func New(conf *config.Config, log *slog.Logger, core webhook.Core) error {
	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(25))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok("alive"))
	})

	router.Route("/tg", func(tg chi.Router) {
		tg.Use(webhookKey(conf.Telegram.WebhookKey, log))
		tg.Post("/supply/{key}", webhook.Telegram(log, core, entity.WorkflowSupply))
		tg.Post("/demand/{key}", webhook.Telegram(log, core, entity.WorkflowDemand))
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}

func webhookKey(key string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "key") != key {
				log.Warn("webhook call with wrong key",
					sl.Module("api.server"),
					slog.String("path", r.URL.Path),
				)
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Requested resource not found"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
