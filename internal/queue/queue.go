// Package queue is the fan-out pipeline: durable, at-least-effort delivery
// of replies decoupled from the request path. Broadcasts are staged in two
// tiers so that enqueueing never blocks the triggering request and the
// transport's per-call batch ceiling stays respected.
package queue

import (
	"context"
	"encoding/json"

	"foodshare/entity"
)

const (
	// BatchSize is the transport-level per-call ceiling.
	BatchSize = 10
	// SuperBatchSize bounds the outer broadcast tier.
	SuperBatchSize = 100
)

// Envelope is one queued delivery.
type Envelope struct {
	ChatID   int64           `json:"chat_id"`
	Workflow entity.Workflow `json:"workflow"`
	Reply    entity.Reply    `json:"reply"`
	// EditMessageID, when non-zero, asks the transport to replace the
	// message that triggered the reply instead of sending a fresh one.
	EditMessageID int64 `json:"edit_message_id,omitempty"`
	// DeleteMessageID, when non-zero, asks the transport to remove the
	// triggering message before sending. Used when the reply cannot edit it,
	// so its stale keyboard does not linger.
	DeleteMessageID int64 `json:"delete_message_id,omitempty"`
}

func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func UnmarshalEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(data, &env)
	return env, err
}

// Result classifies a delivery outcome.
type Result int

const (
	Delivered Result = iota
	// Unreachable: the recipient blocked or removed the bot. The actor is
	// muted until their next inbound event.
	Unreachable
	// Transient: a retryable transport hiccup. Logged and dropped.
	Transient
	// Failed: any other transport error. Logged and dropped.
	Failed
)

// Sender is the transport adapter consumed by the delivery workers.
type Sender interface {
	Deliver(ctx context.Context, env Envelope) Result
}

// Queue accepts envelopes for asynchronous delivery. Put is for
// point-to-point replies; PutBroadcast stages a one-to-many fan-out.
// Neither blocks on delivery.
type Queue interface {
	Put(ctx context.Context, envs ...Envelope)
	PutBroadcast(ctx context.Context, envs []Envelope)
}

// chunk splits envelopes into runs of at most size.
func chunk(envs []Envelope, size int) [][]Envelope {
	var out [][]Envelope
	for i := 0; i < len(envs); i += size {
		end := i + size
		if end > len(envs) {
			end = len(envs)
		}
		out = append(out, envs[i:end])
	}
	return out
}
