package core

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxDescriptionBytes is the maximum serialized size of an Event's
// Description field.
const MaxDescriptionBytes = 2048

// MaxDataBytes is the maximum serialized size of an Event's Data field.
const MaxDataBytes = 102400

// Event is a single prioritized observation attached to a TaskResult.
type Event struct {
	ID          string         `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	Reporter    string         `json:"reporter"`
	Category    EventCategory  `json:"category"`
	Description string         `json:"description"`
	Data        map[string]any `json:"data,omitempty"`
	Priority    EventPriority  `json:"priority"`
	SystemID    *string        `json:"system_id,omitempty"`
}

// NewEvent constructs an Event, assigning a fresh ID and validating the
// size caps on Description and Data. The timestamp is always
// time.Now().UTC(); use WithTimestamp to set a different one.
func NewEvent(reporter string, category EventCategory, description string, priority EventPriority, data map[string]any) (Event, error) {
	if len(description) > MaxDescriptionBytes {
		return Event{}, fmt.Errorf("event description exceeds %d bytes (got %d)", MaxDescriptionBytes, len(description))
	}
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return Event{}, fmt.Errorf("event data is not JSON-serializable: %w", err)
		}
		if len(encoded) > MaxDataBytes {
			return Event{}, fmt.Errorf("event data exceeds %d bytes (got %d)", MaxDataBytes, len(encoded))
		}
	}
	return Event{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Reporter:    reporter,
		Category:    category,
		Description: description,
		Data:        data,
		Priority:    priority,
	}, nil
}

// WithTimestamp returns a copy of the event with an explicit UTC timestamp.
// Non-UTC timestamps are converted; this never mutates the receiver.
func (e Event) WithTimestamp(t time.Time) Event {
	e.Timestamp = t.UTC()
	return e
}

// WithSystemID returns a copy of the event tagged with the given system ID.
func (e Event) WithSystemID(id string) Event {
	e.SystemID = &id
	return e
}
