package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity
type EventType string

const (
	EventTypeRefreshed EventType = "refreshed"
)

// EntityType represents the kind of entity the event is about
type EntityType string

const (
	EntityTypeAlerts EntityType = "alerts"
)

// Event is a message pushed to connected clients.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "alerts.refreshed"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "alerts"
	Payload   interface{} `json:"payload"`   // Full payload data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
