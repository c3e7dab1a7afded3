// Package engine routes normalized inbound chat events through per-workflow
// state tables and persists the resulting transitions.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"foodshare/entity"
	"foodshare/internal/lib/sl"
)

// StatelessFunc handles administrative out-of-band command tokens that must
// be reachable regardless of conversational state. It reports ok=false when
// the token does not belong to the workflow's stateless namespace.
type StatelessFunc func(ctx context.Context, user *entity.User, token string) (entity.Reply, bool, error)

// SlashFunc handles platform /commands. ok=false means "not recognized".
type SlashFunc func(ctx context.Context, user *entity.User, name string) (entity.Reply, bool, error)

// Workflow is one immutable state table plus its out-of-band handlers,
// built once at startup.
type Workflow struct {
	Name      entity.Workflow
	States    map[string]State
	Stateless StatelessFunc
	Slash     SlashFunc
	// Recover builds the generic "something went wrong" reply with a button
	// back to a safe home state.
	Recover func(user *entity.User) entity.Reply
}

// Engine is the conversation engine composing the state tables, the
// continuation store and the outbound queue.
type Engine struct {
	store     Store
	out       Outbox
	workflows map[entity.Workflow]*Workflow
	log       *slog.Logger
}

func New(store Store, out Outbox, log *slog.Logger) *Engine {
	return &Engine{
		store:     store,
		out:       out,
		workflows: make(map[entity.Workflow]*Workflow),
		log:       log.With(sl.Module("engine")),
	}
}

// Register adds a workflow table. Tables are fixed after startup.
func (e *Engine) Register(w *Workflow) {
	e.workflows[w.Name] = w
	e.log.Info("registered workflow",
		slog.String("workflow", string(w.Name)),
		slog.Int("states", len(w.States)),
	)
}

// HandleInbound dispatches one inbound event end-to-end: resolve the actor,
// route to a stateless or state handler, persist any transition, and queue
// the handler's reply followed by the next state's intro in one batch.
// It never blocks on outbound delivery.
func (e *Engine) HandleInbound(ctx context.Context, in Inbound) error {
	w, ok := e.workflows[in.Identity.Workflow]
	if !ok {
		return fmt.Errorf("unknown workflow %q", in.Identity.Workflow)
	}

	user, err := e.store.GetOrCreateUser(ctx, in.Identity, in.ChatID, in.Username)
	if err != nil {
		return fmt.Errorf("resolving user %s: %w", in.Identity.Key(), err)
	}

	reply := e.dispatch(ctx, w, user, in.Event)

	batch := make([]entity.Reply, 0, 2)
	if !reply.IsZero() {
		batch = append(batch, reply)
	}

	if reply.HasNextState {
		if err := e.store.SetState(ctx, user, reply.NextState); err != nil {
			return fmt.Errorf("saving state %q for %s: %w", reply.NextState, user.Key(), err)
		}
		user.State = reply.NextState
		if next, ok := w.States[reply.NextState]; ok {
			if intro := next.Intro(ctx, user); !intro.IsZero() {
				batch = append(batch, intro)
			}
		}
	}

	if len(batch) > 0 {
		e.out.QueueReplies(ctx, w.Name, user.ChatID, in.Origin, batch...)
	}
	return nil
}

// dispatch picks the handler and shields the request path: any handler
// error or panic is logged once with full context and converted into the
// workflow's safe-state reply, so the conversation can always recover.
func (e *Engine) dispatch(ctx context.Context, w *Workflow, user *entity.User, ev Event) (reply entity.Reply) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("handler panic",
				slog.String("user", user.Key()),
				slog.String("state", user.State),
				slog.Any("panic", r),
			)
			reply = w.Recover(user)
		}
	}()

	var (
		handled bool
		err     error
	)

	switch {
	case ev.Slash != "" && w.Slash != nil:
		reply, handled, err = w.Slash(ctx, user, ev.Slash)
		if err == nil && handled {
			return reply
		}
	case ev.Token != "" && w.Stateless != nil:
		reply, handled, err = w.Stateless(ctx, user, ev.Token)
		if err == nil && handled {
			return reply
		}
	}

	if err == nil {
		state, ok := w.States[user.State]
		if !ok {
			// A state written by an older build, or a corrupted record.
			e.log.Error("state without handler",
				slog.String("user", user.Key()),
				slog.String("state", user.State),
			)
			return w.Recover(user)
		}
		reply, err = state.Handle(ctx, user, ev)
	}

	if err != nil {
		e.log.Error("handler failed",
			slog.String("user", user.Key()),
			slog.String("state", user.State),
			slog.String("text_present", fmt.Sprintf("%t", ev.Text != "")),
			slog.String("token", ev.Token),
			sl.Err(err),
		)
		return w.Recover(user)
	}
	return reply
}

// Intro renders the intro of the user's current state, used when a flow is
// (re)entered outside of normal dispatch.
func (e *Engine) Intro(ctx context.Context, user *entity.User) entity.Reply {
	w, ok := e.workflows[user.Workflow]
	if !ok {
		return entity.Reply{}
	}
	state, ok := w.States[user.State]
	if !ok {
		return entity.Reply{}
	}
	return state.Intro(ctx, user)
}
