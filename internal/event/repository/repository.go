package repository

import (
	"errors"
	"time"

	eventdomain "calmirror-backend/internal/event/domain"
)

// ErrDuplicateEvent signals a uniqueness violation on insert. Callers treat
// it as a benign dedup signal, not a failure.
var ErrDuplicateEvent = errors.New("duplicate event")

// EventRepository is the persistence boundary for mirrored calendar events.
type EventRepository interface {
	// UpsertBatch writes provider events keyed by google_event_id as one
	// atomic unit: either all rows land or none do.
	UpsertBatch(events []*eventdomain.Event) error
	// ListInRange returns the user's events whose span falls inside
	// [start, end], ordered by start ascending.
	ListInRange(userID string, start, end time.Time) ([]*eventdomain.Event, error)
	// FindExact looks up an event by the (user, title, start, end) tuple.
	FindExact(userID, title string, start, end time.Time) (*eventdomain.Event, error)
	// Create inserts a single event, returning ErrDuplicateEvent when a
	// uniqueness constraint is violated.
	Create(event *eventdomain.Event) error
}
