package queue

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"foodshare/entity"
)

type recordingSender struct {
	mu        sync.Mutex
	delivered map[int64]int
	results   map[int64]Result
}

func newRecordingSender() *recordingSender {
	return &recordingSender{
		delivered: make(map[int64]int),
		results:   make(map[int64]Result),
	}
}

func (s *recordingSender) Deliver(_ context.Context, env Envelope) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered[env.ChatID]++
	if r, ok := s.results[env.ChatID]; ok {
		return r
	}
	return Delivered
}

func (s *recordingSender) count(chatID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivered[chatID]
}

type muteRecorder struct {
	mu    sync.Mutex
	muted []int64
}

func (m *muteRecorder) SetInactiveByChat(_ context.Context, _ entity.Provider, _ entity.Workflow, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = append(m.muted, chatID)
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBroadcastReachesEveryRecipientOnce(t *testing.T) {
	t.Parallel()

	sender := newRecordingSender()
	processor := NewProcessor(sender, entity.ProviderTelegram, &muteRecorder{}, discard())
	q := NewLocalQueue(processor, 4, discard())

	// More recipients than both batch tiers to force chunking.
	const recipients = SuperBatchSize*2 + 17
	envs := make([]Envelope, 0, recipients)
	for i := 0; i < recipients; i++ {
		envs = append(envs, Envelope{
			ChatID:   int64(i + 1),
			Workflow: entity.WorkflowDemand,
			Reply:    entity.Reply{Text: fmt.Sprintf("hello %d", i+1)},
		})
	}

	q.PutBroadcast(context.Background(), envs)
	q.Close()

	for i := 0; i < recipients; i++ {
		if got := sender.count(int64(i + 1)); got != 1 {
			t.Fatalf("chat %d delivered %d times, want exactly once", i+1, got)
		}
	}
}

func TestUnreachableRecipientIsMuted(t *testing.T) {
	t.Parallel()

	sender := newRecordingSender()
	sender.results[42] = Unreachable
	marker := &muteRecorder{}
	processor := NewProcessor(sender, entity.ProviderTelegram, marker, discard())
	q := NewLocalQueue(processor, 2, discard())

	q.Put(context.Background(),
		Envelope{ChatID: 41, Workflow: entity.WorkflowDemand, Reply: entity.Reply{Text: "a"}},
		Envelope{ChatID: 42, Workflow: entity.WorkflowDemand, Reply: entity.Reply{Text: "b"}},
		Envelope{ChatID: 43, Workflow: entity.WorkflowDemand, Reply: entity.Reply{Text: "c"}},
	)
	q.Close()

	marker.mu.Lock()
	defer marker.mu.Unlock()
	if len(marker.muted) != 1 || marker.muted[0] != 42 {
		t.Fatalf("muted = %v, want only chat 42", marker.muted)
	}
}

func TestTransientFailureDoesNotMute(t *testing.T) {
	t.Parallel()

	sender := newRecordingSender()
	sender.results[7] = Transient
	marker := &muteRecorder{}
	processor := NewProcessor(sender, entity.ProviderTelegram, marker, discard())

	processor.Process(context.Background(), Envelope{ChatID: 7, Workflow: entity.WorkflowSupply})

	if len(marker.muted) != 0 {
		t.Fatalf("muted = %v, want none", marker.muted)
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	t.Parallel()

	env := Envelope{
		ChatID:   9,
		Workflow: entity.WorkflowDemand,
		Reply: entity.Reply{
			Text: "food",
			Buttons: [][]entity.Button{{
				{Text: "Take it", Data: "take|telegram|1|l1"},
			}},
		},
		EditMessageID: 55,
	}
	data, err := env.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := UnmarshalEnvelope(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ChatID != env.ChatID || got.EditMessageID != 55 {
		t.Fatalf("got %+v", got)
	}
	if got.Reply.Buttons[0][0].Data != "take|telegram|1|l1" {
		t.Fatalf("button data lost: %+v", got.Reply)
	}
}

func TestChunkBounds(t *testing.T) {
	t.Parallel()

	envs := make([]Envelope, 25)
	batches := chunk(envs, BatchSize)
	if len(batches) != 3 {
		t.Fatalf("batches = %d, want 3", len(batches))
	}
	if len(batches[0]) != 10 || len(batches[2]) != 5 {
		t.Fatalf("batch sizes = %d,%d,%d", len(batches[0]), len(batches[1]), len(batches[2]))
	}
	if got := chunk(nil, BatchSize); got != nil {
		t.Fatalf("chunk(nil) = %v, want nil", got)
	}
}
