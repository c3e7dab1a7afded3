package queue

import (
	"context"
	"log/slog"

	"foodshare/entity"
	"foodshare/internal/lib/sl"
)

// InactiveMarker mutes an actor by its delivery address.
type InactiveMarker interface {
	SetInactiveByChat(ctx context.Context, provider entity.Provider, workflow entity.Workflow, chatID int64) error
}

// Processor applies the delivery policy to one envelope: deliver, classify,
// and never let a failure travel back into the request path.
type Processor struct {
	sender   Sender
	provider entity.Provider
	store    InactiveMarker
	log      *slog.Logger
}

func NewProcessor(sender Sender, provider entity.Provider, store InactiveMarker, log *slog.Logger) *Processor {
	return &Processor{
		sender:   sender,
		provider: provider,
		store:    store,
		log:      log.With(sl.Module("queue.processor")),
	}
}

// Process delivers one envelope. Errors are terminal here: an unreachable
// recipient is muted, everything else is logged and dropped.
func (p *Processor) Process(ctx context.Context, env Envelope) {
	switch p.sender.Deliver(ctx, env) {
	case Delivered:
	case Unreachable:
		p.log.Warn("recipient unreachable, muting",
			slog.Int64("chat_id", env.ChatID),
			slog.String("workflow", string(env.Workflow)),
		)
		if err := p.store.SetInactiveByChat(ctx, p.provider, env.Workflow, env.ChatID); err != nil {
			p.log.Error("marking inactive", slog.Int64("chat_id", env.ChatID), sl.Err(err))
		}
	case Transient:
		p.log.Warn("transient delivery failure, dropped",
			slog.Int64("chat_id", env.ChatID),
		)
	default:
		p.log.Error("delivery failed, dropped",
			slog.Int64("chat_id", env.ChatID),
			slog.String("workflow", string(env.Workflow)),
		)
	}
}
