package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"foodshare/internal/lib/sl"
)

// KafkaQueue publishes envelopes to the two fan-out topics. The send topic
// carries single envelopes; the super topic carries serialized super-batches
// that a consumer re-splits into transport-sized runs.
type KafkaQueue struct {
	producer   sarama.SyncProducer
	sendTopic  string
	superTopic string
	log        *slog.Logger
}

func NewKafkaQueue(brokers []string, sendTopic, superTopic string, log *slog.Logger) (*KafkaQueue, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}
	return &KafkaQueue{
		producer:   producer,
		sendTopic:  sendTopic,
		superTopic: superTopic,
		log:        log.With(sl.Module("queue.kafka")),
	}, nil
}

func (q *KafkaQueue) Close() error {
	return q.producer.Close()
}

// Put enqueues point-to-point envelopes in transport-sized publish calls.
// Publish failures are logged and dropped: delivery is at-least-effort and
// must never propagate into the conversation request path.
func (q *KafkaQueue) Put(ctx context.Context, envs ...Envelope) {
	for _, batch := range chunk(envs, BatchSize) {
		msgs := make([]*sarama.ProducerMessage, 0, len(batch))
		for _, env := range batch {
			payload, err := env.Marshal()
			if err != nil {
				q.log.Error("marshaling envelope", sl.Err(err))
				continue
			}
			msgs = append(msgs, &sarama.ProducerMessage{
				Topic: q.sendTopic,
				Key:   sarama.StringEncoder(fmt.Sprintf("%d", env.ChatID)),
				Value: sarama.ByteEncoder(payload),
			})
		}
		if err := q.producer.SendMessages(msgs); err != nil {
			q.log.Error("publishing send batch", slog.Int("size", len(msgs)), sl.Err(err))
		}
	}
}

// PutBroadcast stages the outer tier: each super-batch is one message on
// the super topic, so the caller returns as soon as the hand-off is done.
func (q *KafkaQueue) PutBroadcast(ctx context.Context, envs []Envelope) {
	for _, super := range chunk(envs, SuperBatchSize) {
		payload, err := json.Marshal(super)
		if err != nil {
			q.log.Error("marshaling super batch", sl.Err(err))
			continue
		}
		_, _, err = q.producer.SendMessage(&sarama.ProducerMessage{
			Topic: q.superTopic,
			Value: sarama.ByteEncoder(payload),
		})
		if err != nil {
			q.log.Error("publishing super batch", slog.Int("size", len(super)), sl.Err(err))
			continue
		}
		q.log.Info("super batch staged", slog.Int("size", len(super)))
	}
}

// SuperConsumer re-splits super-batches from the super topic into
// transport-sized runs on the send topic.
type SuperConsumer struct {
	queue *KafkaQueue
	log   *slog.Logger
}

func NewSuperConsumer(queue *KafkaQueue, log *slog.Logger) *SuperConsumer {
	return &SuperConsumer{queue: queue, log: log.With(sl.Module("queue.super-consumer"))}
}

func (c *SuperConsumer) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var super []Envelope
	if err := json.Unmarshal(msg.Value, &super); err != nil {
		return fmt.Errorf("unmarshaling super batch: %w", err)
	}
	c.queue.Put(ctx, super...)
	c.log.Info("super batch redistributed", slog.Int("size", len(super)))
	return nil
}

// SendConsumer delivers single envelopes from the send topic.
type SendConsumer struct {
	processor *Processor
	log       *slog.Logger
}

func NewSendConsumer(processor *Processor, log *slog.Logger) *SendConsumer {
	return &SendConsumer{processor: processor, log: log.With(sl.Module("queue.send-consumer"))}
}

func (c *SendConsumer) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	env, err := UnmarshalEnvelope(msg.Value)
	if err != nil {
		return fmt.Errorf("unmarshaling envelope: %w", err)
	}
	c.processor.Process(ctx, env)
	return nil
}

// MessageHandler consumes one Kafka record.
type MessageHandler interface {
	Handle(ctx context.Context, msg *sarama.ConsumerMessage) error
}

// Consumer runs a consumer group over one topic. Any number of consumer
// processes may run concurrently; partitions spread deliveries so a slow
// recipient does not stall the whole queue.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler MessageHandler
	log     *slog.Logger
}

func NewConsumer(brokers []string, groupID string, handler MessageHandler, log *slog.Logger) (*Consumer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_5_0_0

	group, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating consumer group: %w", err)
	}
	return &Consumer{group: group, handler: handler, log: log.With(sl.Module("queue.consumer"))}, nil
}

func (c *Consumer) Run(ctx context.Context, topics []string) error {
	for {
		if err := c.group.Consume(ctx, topics, groupHandler{handler: c.handler, log: c.log}); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

type groupHandler struct {
	handler MessageHandler
	log     *slog.Logger
}

func (h groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := h.handler.Handle(sess.Context(), message); err != nil {
			// Malformed payloads are not retried.
			h.log.Error("consuming message", sl.Err(err))
		}
		sess.MarkMessage(message, "")
	}
	return nil
}
