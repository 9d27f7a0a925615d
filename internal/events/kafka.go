// Package events publishes a change feed of committed todo writes to Kafka.
// Publishing is fire-and-forget and happens after the store write succeeds,
// so it never changes what a request observes. With no brokers configured the
// whole package is a no-op.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"todo-service/internal/config"
	"todo-service/internal/models"
	"todo-service/pkg/logger"
)

var (
	writer *kafka.Writer
	wOnce  sync.Once
)

// Producer returns the global Kafka writer, or nil when KAFKA_BROKERS is unset.
func Producer(ctx context.Context) *kafka.Writer {
	wOnce.Do(func() {
		cfg := config.Get()
		if len(cfg.KafkaBrokers) == 0 {
			return
		}
		writer = &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.LeastBytes{},
			Async:        true,
			RequiredAcks: kafka.RequireOne,
		}
		logger.Info(ctx, "Kafka producer initialized", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	})
	return writer
}

// PublishChange emits a change event for a committed write. Failures are
// logged, never surfaced: the write already happened.
func PublishChange(ctx context.Context, action string, id uint32, completed bool) {
	w := Producer(ctx)
	if w == nil {
		return
	}
	payload, err := json.Marshal(models.TodoEvent{
		Action:    action,
		ID:        id,
		Completed: completed,
		At:        time.Now().UTC(),
	})
	if err != nil {
		logger.Error(ctx, "Marshal todo event failed", "error", err)
		return
	}
	err = w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(action),
		Value: payload,
	})
	if err != nil {
		logger.Warn(ctx, "Publish todo event failed", "error", err, "action", action, "id", id)
	}
}
