package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/anshif14/petzify-sub001/pkg/logger"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Header keys shared by all services publishing domain events.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// Producer publishes JSON-encoded domain events to a single topic. A nil
// Producer is valid and drops every publish, so services without brokers
// configured work unchanged.
type Producer struct {
	writer *kafka.Writer
	source string
	log    *logger.Logger

	mu     sync.RWMutex
	closed bool
}

func NewProducer(brokers []string, topic, source string, log *logger.Logger) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // hash by key for per-entity ordering
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 100 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error(fmt.Sprintf("kafka: "+msg, args...))
		}),
	}

	return &Producer{writer: writer, source: source, log: log}, nil
}

// Publish writes one event keyed by entity id. Payload is JSON-encoded.
func (p *Producer) Publish(ctx context.Context, key, eventType string, payload any) error {
	if p == nil {
		return nil
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return fmt.Errorf("producer is closed")
	}
	p.mu.RUnlock()

	if key == "" {
		return fmt.Errorf("event key cannot be empty")
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode event payload: %w", err)
	}

	now := time.Now()
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  now,
		Headers: []kafka.Header{
			{Key: HeaderEventID, Value: []byte(uuid.New().String())},
			{Key: HeaderEventType, Value: []byte(eventType)},
			{Key: HeaderSource, Value: []byte(p.source)},
			{Key: HeaderTimestamp, Value: []byte(now.Format(time.RFC3339))},
		},
	}

	start := time.Now()
	err = p.writer.WriteMessages(ctx, msg)
	if err != nil {
		p.log.Error("Failed to publish event",
			"event_type", eventType,
			"key", key,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return err
	}

	p.log.Debug("Event published",
		"event_type", eventType,
		"key", key,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
