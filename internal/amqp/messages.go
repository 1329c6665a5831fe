package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventKind names what changed in the finance state.
type EventKind string

const (
	TransactionCreated EventKind = "transaction.created"
	TransactionUpdated EventKind = "transaction.updated"
	TransactionDeleted EventKind = "transaction.deleted"
	CategoryCreated    EventKind = "category.created"
	CategoryUpdated    EventKind = "category.updated"
	CategoryDeleted    EventKind = "category.deleted"
	StateSaved         EventKind = "state.saved"
	StateCleared       EventKind = "state.cleared"
)

// Valid reports whether k is one of the known kinds.
func (k EventKind) Valid() bool {
	switch k {
	case TransactionCreated, TransactionUpdated, TransactionDeleted,
		CategoryCreated, CategoryUpdated, CategoryDeleted,
		StateSaved, StateCleared:
		return true
	}
	return false
}

// ChangeEvent announces a write. It carries only the entity id; consumers
// reload the state they need from the shared store.
type ChangeEvent struct {
	Kind      EventKind `json:"kind"`
	EntityID  string    `json:"entityId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewChangeEvent stamps a new event with the current time.
func NewChangeEvent(kind EventKind, entityID string) ChangeEvent {
	return ChangeEvent{
		Kind:      kind,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e ChangeEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ChangeEventFromJSON decodes an event and rejects unknown kinds.
func ChangeEventFromJSON(data []byte) (ChangeEvent, error) {
	var e ChangeEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return ChangeEvent{}, err
	}
	if !e.Kind.Valid() {
		return ChangeEvent{}, fmt.Errorf("unknown event kind %q", e.Kind)
	}
	return e, nil
}
