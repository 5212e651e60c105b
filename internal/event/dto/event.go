package dto

import (
	eventdomain "calmirror-backend/internal/event/domain"
)

// CreateEventRequest is the body of POST /api/events. Times are wall-clock
// "HH:MM" on the given date; overnight-spanning events are not supported.
type CreateEventRequest struct {
	Title     string `json:"title" binding:"required"`
	Date      string `json:"date" binding:"required"`      // YYYY-MM-DD
	StartTime string `json:"startTime" binding:"required"` // HH:MM
	EndTime   string `json:"endTime" binding:"required"`   // HH:MM
}

// Group is one presentation bucket: a calendar day (YYYY-MM-DD) or an ISO
// week (YYYY-Www) with its events in ascending start order.
type Group struct {
	Group string               `json:"group"`
	Items []*eventdomain.Event `json:"items"`
}

// GroupedEvents is the response of GET /api/events.
type GroupedEvents struct {
	Range    int     `json:"range"`
	Grouping string  `json:"grouping"` // "day" or "week"
	Groups   []Group `json:"groups"`
}

// RefreshResponse reports how many events the provider returned; skipped
// malformed events make this differ from the number of rows written.
type RefreshResponse struct {
	OK       bool `json:"ok"`
	Imported int  `json:"imported"`
}

// CreateEventResponse wraps a created or deduplicated event.
type CreateEventResponse struct {
	OK      bool               `json:"ok"`
	Event   *eventdomain.Event `json:"event"`
	Deduped bool               `json:"deduped,omitempty"`
}
