package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionChanged      EventType = "session.changed"
	EventContentChanged      EventType = "content.changed"
	EventSubscriptionChanged EventType = "subscription.changed"
)

// Event announces that a state container changed and views bound to it
// should re-render.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Operation string    `json:"operation"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}
