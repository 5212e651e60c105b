package domain

import "time"

// Event is one mirrored calendar entry. Rows come from two sources: the
// sync engine (copied from the provider) and manual creation (pushed to
// the provider first, then stored with the assigned ID).
//
// Two uniqueness rules hold: at most one row per provider event ID, and at
// most one row per (user, title, start, end) tuple. The second one is the
// guard against duplicate manual creation.
type Event struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"not null;index;uniqueIndex:idx_events_user_title_span"`
	GoogleEventID *string   `json:"google_event_id,omitempty" gorm:"uniqueIndex"`
	Title         string    `json:"title" gorm:"not null;uniqueIndex:idx_events_user_title_span"`
	Start         time.Time `json:"start" gorm:"column:start_at;not null;uniqueIndex:idx_events_user_title_span"`
	End           time.Time `json:"end" gorm:"column:end_at;not null;uniqueIndex:idx_events_user_title_span"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
