package usecase

import (
	"context"
	"time"

	eventdomain "calmirror-backend/internal/event/domain"
	eventdto "calmirror-backend/internal/event/dto"
	"calmirror-backend/pkg/googlecal"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
)

// EventUsecase covers sync, grouping and dedup-on-create.
type EventUsecase interface {
	// FetchAndStoreEvents mirrors provider events for the window (default:
	// six months either side of now) into local storage and returns the
	// number of events the provider sent.
	FetchAndStoreEvents(ctx context.Context, userID string, window *googlecal.SyncWindow) (int, error)
	// ListEvents buckets the user's stored events for a 1/7/30-day range
	// into day or ISO-week groups. Any other selector falls back to 7.
	ListEvents(userID string, rangeDays int) (*eventdto.GroupedEvents, error)
	// CreateEvent pushes a new event to the provider and mirrors it
	// locally, or returns the already-existing identical event with
	// deduped == true.
	CreateEvent(ctx context.Context, userID string, req *eventdto.CreateEventRequest) (*eventdomain.Event, bool, error)
}

// CalendarClient is an authorized per-user handle on the provider.
// *googlecal.Client satisfies it; tests substitute fakes.
type CalendarClient interface {
	ListEvents(ctx context.Context, window googlecal.SyncWindow) ([]*calendar.Event, error)
	InsertEvent(ctx context.Context, summary string, start, end time.Time) (*calendar.Event, error)
	// PendingTokenUpdate drains the token rotated by the last call, if any.
	PendingTokenUpdate() *oauth2.Token
}

// CalendarProvider builds authorized clients from cached credentials.
type CalendarProvider interface {
	Authorize(ctx context.Context, accessToken, refreshToken string, expiry time.Time) (CalendarClient, error)
}

// googleCalendarProvider adapts *googlecal.Service to CalendarProvider.
type googleCalendarProvider struct {
	svc *googlecal.Service
}

func NewGoogleCalendarProvider(svc *googlecal.Service) CalendarProvider {
	return &googleCalendarProvider{svc: svc}
}

func (p *googleCalendarProvider) Authorize(ctx context.Context, accessToken, refreshToken string, expiry time.Time) (CalendarClient, error) {
	return p.svc.Authorize(ctx, accessToken, refreshToken, expiry)
}
