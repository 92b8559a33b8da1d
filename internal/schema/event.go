package schema

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is a free-text audit record. Level here is a label such as
// "INFO" or "ERROR", deliberately not a ThreatLevel: events are not
// severity-ranked findings.
type Event struct {
	ID          string         `json:"id"`
	EventType   string         `json:"event_type"`
	Description string         `json:"description"`
	Level       string         `json:"level"`
	Timestamp   time.Time      `json:"timestamp"`
	UserID      string         `json:"user_id,omitempty"`
	SessionID   string         `json:"session_id,omitempty"`
	IPAddress   string         `json:"ip_address,omitempty"`
	UserAgent   string         `json:"user_agent,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// NewEvent creates an event stamped with the current time and a fresh
// identifier.
func NewEvent(eventType, description, level string) *Event {
	return &Event{
		ID:          uuid.NewString(),
		EventType:   eventType,
		Description: description,
		Level:       level,
		Timestamp:   time.Now(),
		Metadata:    make(map[string]any),
	}
}

// NewUserEvent creates an event attributed to a user.
func NewUserEvent(eventType, description, level, userID string) *Event {
	e := NewEvent(eventType, description, level)
	e.UserID = userID
	return e
}

// AddMetadata attaches a free-form key/value pair to the event.
func (e *Event) AddMetadata(key string, value any) {
	e.Metadata[key] = value
}

func (e *Event) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Level, e.EventType, e.Description)
}
