package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type captureSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *captureSink) Deliver(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) captured() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestNew_EnvelopeShape(t *testing.T) {
	event := New("order.created", "orders-service", "orders/abc", map[string]any{"id": "abc"})
	if event.SpecVersion != "1.0" {
		t.Fatalf("specversion = %q", event.SpecVersion)
	}
	if event.DataContentType != "application/json" {
		t.Fatalf("datacontenttype = %q", event.DataContentType)
	}
	if _, err := uuid.Parse(event.ID); err != nil {
		t.Fatalf("id %q is not a uuid: %v", event.ID, err)
	}
	if _, err := time.Parse(time.RFC3339, event.Time); err != nil {
		t.Fatalf("time %q is not RFC 3339: %v", event.Time, err)
	}
}

func TestNew_UniqueIDs(t *testing.T) {
	a := New("order.created", "orders-service", "", nil)
	b := New("order.created", "orders-service", "", nil)
	if a.ID == b.ID {
		t.Fatalf("ids collide: %q", a.ID)
	}
}

func TestPublish_ExactlyOneEventPerCall(t *testing.T) {
	sink := &captureSink{}
	publisher := NewPublisher("orders-service", sink, time.Second, nil)

	publisher.Publish("order.created", "orders/1", map[string]any{"id": "1"})
	publisher.Wait()

	events := sink.captured()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Type != "order.created" || events[0].Source != "orders-service" {
		t.Fatalf("envelope = %+v", events[0])
	}
}

func TestPublish_SinkFailureIsSwallowed(t *testing.T) {
	sink := &captureSink{err: errors.New("broker unreachable")}
	publisher := NewPublisher("orders-service", sink, time.Second, nil)

	publisher.Publish("order.created", "orders/1", nil)
	publisher.Wait()
	// No panic, no error surfaced; the failure is log-only.
}

func TestLogSink_SerializesEnvelope(t *testing.T) {
	event := New("order.created", "orders-service", "orders/1", map[string]any{"id": "1"})
	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"specversion", "type", "source", "id", "time", "datacontenttype", "data"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("envelope missing %q: %s", key, payload)
		}
	}
}
