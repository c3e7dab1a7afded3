package notify_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"foodshare/bot/engine"
	"foodshare/bot/notify"
	"foodshare/entity"
	"foodshare/internal/database/memory"
	"foodshare/internal/queue"
)

type captureQueue struct {
	envs []queue.Envelope
}

func (q *captureQueue) Put(_ context.Context, envs ...queue.Envelope) {
	q.envs = append(q.envs, envs...)
}

func (q *captureQueue) PutBroadcast(_ context.Context, envs []queue.Envelope) {
	q.envs = append(q.envs, envs...)
}

func TestQueueRepliesEditsOriginOnce(t *testing.T) {
	t.Parallel()

	cq := &captureQueue{}
	svc := notify.New(memory.NewStore(), cq, slog.New(slog.NewTextHandler(io.Discard, nil)))

	origin := &engine.MessageRef{MessageID: 55, HasText: true}
	svc.QueueReplies(context.Background(), entity.WorkflowDemand, 9, origin,
		entity.Reply{Text: "first"},
		entity.Reply{Text: "second"},
	)

	if len(cq.envs) != 2 {
		t.Fatalf("envelopes = %d, want 2", len(cq.envs))
	}
	if cq.envs[0].EditMessageID != 55 {
		t.Fatalf("first envelope edit id = %d, want 55", cq.envs[0].EditMessageID)
	}
	if cq.envs[1].EditMessageID != 0 {
		t.Fatalf("second envelope edit id = %d, want 0", cq.envs[1].EditMessageID)
	}
}

func TestQueueRepliesDeletesOriginForMapReply(t *testing.T) {
	t.Parallel()

	cq := &captureQueue{}
	svc := notify.New(memory.NewStore(), cq, slog.New(slog.NewTextHandler(io.Discard, nil)))

	origin := &engine.MessageRef{MessageID: 55, HasText: true}
	svc.QueueReplies(context.Background(), entity.WorkflowSupply, 9, origin,
		entity.Reply{
			Text:        "here",
			Coordinates: &entity.Coordinates{Latitude: "53.9", Longitude: "27.55"},
		},
		entity.Reply{Text: "next"},
	)

	if len(cq.envs) != 2 {
		t.Fatalf("envelopes = %d, want 2", len(cq.envs))
	}
	if cq.envs[0].DeleteMessageID != 55 || cq.envs[0].EditMessageID != 0 {
		t.Fatalf("map envelope = %+v, want delete of the origin", cq.envs[0])
	}
	if cq.envs[1].EditMessageID != 0 || cq.envs[1].DeleteMessageID != 0 {
		t.Fatalf("follow-up envelope = %+v, want a fresh send", cq.envs[1])
	}
}

func TestQueueRepliesSkipsEditForTextKeyboard(t *testing.T) {
	t.Parallel()

	cq := &captureQueue{}
	svc := notify.New(memory.NewStore(), cq, slog.New(slog.NewTextHandler(io.Discard, nil)))

	origin := &engine.MessageRef{MessageID: 55, HasText: true}
	svc.QueueReplies(context.Background(), entity.WorkflowSupply, 9, origin,
		entity.Reply{
			Text:          "send your phone",
			Buttons:       [][]entity.Button{{{Text: "📞 Send phone", RequestContact: true}}},
			IsTextButtons: true,
		},
	)

	if len(cq.envs) != 1 {
		t.Fatalf("envelopes = %d, want 1", len(cq.envs))
	}
	if cq.envs[0].EditMessageID != 0 || cq.envs[0].DeleteMessageID != 0 {
		t.Fatalf("envelope = %+v, want a fresh send", cq.envs[0])
	}
}
