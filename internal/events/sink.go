package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Sink delivers a serialized envelope to a downstream consumer. The pipeline
// treats the destination as opaque: anything that accepts a CloudEvent JSON
// blob qualifies.
type Sink interface {
	Deliver(ctx context.Context, event Event) error
}

// LogSink writes each event to the structured log. It is the default sink
// for development and for deployments that ship events via log collection.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(_ context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	s.logger.Info("cloudevent published",
		"event_type", event.Type,
		"event_id", event.ID,
		"subject", event.Subject,
		"event", string(payload),
	)
	return nil
}

// RedisSink publishes events on a redis channel.
type RedisSink struct {
	client  *redis.Client
	channel string
}

func NewRedisSink(addr, password string, db int, channel string) *RedisSink {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisSink{client: client, channel: channel}
}

func (s *RedisSink) Deliver(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, s.channel, payload).Err()
}
