package queue

import (
	"context"
	"log/slog"
	"sync"

	"foodshare/internal/lib/sl"
)

// LocalQueue runs the fan-out pipeline in-process with worker goroutines.
// From the caller's perspective it behaves like the managed backend: the
// hand-off is asynchronous and delivery failures never surface. Used in
// local mode and in tests.
type LocalQueue struct {
	processor *Processor
	ch        chan Envelope
	wg        sync.WaitGroup
	staging   sync.WaitGroup
	stop      sync.Once
	log       *slog.Logger
}

func NewLocalQueue(processor *Processor, workers int, log *slog.Logger) *LocalQueue {
	if workers <= 0 {
		workers = 4
	}
	q := &LocalQueue{
		processor: processor,
		ch:        make(chan Envelope, 1024),
		log:       log.With(sl.Module("queue.local")),
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

func (q *LocalQueue) worker() {
	defer q.wg.Done()
	for env := range q.ch {
		q.processor.Process(context.Background(), env)
	}
}

func (q *LocalQueue) Put(ctx context.Context, envs ...Envelope) {
	for _, env := range envs {
		q.ch <- env
	}
}

// PutBroadcast stages the whole broadcast on a separate goroutine so a full
// channel cannot block the triggering request, mirroring the two-tier
// staging of the managed backend.
func (q *LocalQueue) PutBroadcast(ctx context.Context, envs []Envelope) {
	super := chunk(envs, SuperBatchSize)
	q.staging.Add(1)
	go func() {
		defer q.staging.Done()
		for _, batch := range super {
			q.Put(ctx, batch...)
		}
	}()
}

// Close drains the workers. Deliveries already enqueued are attempted;
// there is no withdraw operation.
func (q *LocalQueue) Close() {
	q.stop.Do(func() {
		q.staging.Wait()
		close(q.ch)
	})
	q.wg.Wait()
}
