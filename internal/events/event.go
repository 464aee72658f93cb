// Package events constructs and emits CloudEvents v1.0 envelopes for
// state-changing operations.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	SpecVersion     = "1.0"
	DataContentType = "application/json"
)

// Event is a CloudEvents v1.0 envelope. One is built per successful state
// change and never reused.
type Event struct {
	SpecVersion     string `json:"specversion"`
	Type            string `json:"type"`
	Source          string `json:"source"`
	Subject         string `json:"subject,omitempty"`
	ID              string `json:"id"`
	Time            string `json:"time"`
	DataContentType string `json:"datacontenttype"`
	Data            any    `json:"data"`
}

// New builds an envelope with a fresh v4 id and an RFC 3339 timestamp.
func New(eventType, source, subject string, data any) Event {
	return Event{
		SpecVersion:     SpecVersion,
		Type:            eventType,
		Source:          source,
		Subject:         subject,
		ID:              uuid.NewString(),
		Time:            time.Now().UTC().Format(time.RFC3339),
		DataContentType: DataContentType,
		Data:            data,
	}
}
