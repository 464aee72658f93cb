package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultPublishTimeout = time.Second

// Publisher emits one CloudEvent per successful state change. Delivery is
// fire-and-forget with respect to the HTTP response: emission runs on its own
// goroutine under a bounded timeout, and a failed delivery is logged but
// never converts a committed mutation into an error.
type Publisher struct {
	source  string
	sink    Sink
	timeout time.Duration
	logger  *slog.Logger

	wg sync.WaitGroup
}

func NewPublisher(source string, sink Sink, timeout time.Duration, logger *slog.Logger) *Publisher {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		source:  source,
		sink:    sink,
		timeout: timeout,
		logger:  logger,
	}
}

// Publish constructs the envelope synchronously, so callers observe exactly
// one event per invocation, then hands delivery to a detached goroutine.
func (p *Publisher) Publish(eventType, subject string, data any) {
	event := New(eventType, p.source, subject, data)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		if err := p.sink.Deliver(ctx, event); err != nil {
			p.logger.Error("event publish failed",
				"event_type", event.Type,
				"event_id", event.ID,
				"subject", event.Subject,
				"error", err.Error(),
			)
		}
	}()
}

// Wait blocks until all in-flight deliveries finish. Used on shutdown and in
// tests; request handlers never call it.
func (p *Publisher) Wait() {
	p.wg.Wait()
}
