package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	authdto "calmirror-backend/internal/auth/dto"
	authrepo "calmirror-backend/internal/auth/repository"
	eventdomain "calmirror-backend/internal/event/domain"
	eventdto "calmirror-backend/internal/event/dto"
	eventrepo "calmirror-backend/internal/event/repository"
	"calmirror-backend/pkg/googlecal"

	"google.golang.org/api/calendar/v3"
)

var (
	// ErrUserNotFound means the user ID has no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoRefreshToken means the user never completed consent or revoked
	// it; no provider call can be made on their behalf.
	ErrNoRefreshToken = errors.New("user missing refresh token")
	// ErrInvalidInput covers missing or unparsable create-event fields.
	ErrInvalidInput = errors.New("invalid event input")
)

const untitledEvent = "(No title)"

type eventUsecase struct {
	eventRepo eventrepo.EventRepository
	userRepo  authrepo.UserRepository
	provider  CalendarProvider
}

func NewEventUsecase(eventRepo eventrepo.EventRepository, userRepo authrepo.UserRepository, provider CalendarProvider) EventUsecase {
	return &eventUsecase{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		provider:  provider,
	}
}

// DefaultSyncWindow is six months either side of now.
func DefaultSyncWindow(now time.Time) googlecal.SyncWindow {
	return googlecal.SyncWindow{
		TimeMin: now.AddDate(0, -6, 0),
		TimeMax: now.AddDate(0, 6, 0),
	}
}

// authorizedClient resolves a provider client pre-loaded with the user's
// cached tokens.
func (u *eventUsecase) authorizedClient(ctx context.Context, userID string) (CalendarClient, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	var expiry time.Time
	if user.TokenExpiry != nil {
		expiry = *user.TokenExpiry
	}
	return u.provider.Authorize(ctx, user.AccessToken, user.RefreshToken, expiry)
}

// persistTokenUpdate drains the client's pending token rotation and stores
// it as a partial update. Failures are logged and swallowed: a lost cache
// write just means the next call refreshes again.
func (u *eventUsecase) persistTokenUpdate(client CalendarClient, userID string) {
	token := client.PendingTokenUpdate()
	if token == nil {
		return
	}

	update := &authdto.TokenUpdate{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		update.TokenExpiry = &expiry
	}

	if err := u.userRepo.UpdateTokens(userID, update); err != nil {
		log.Printf("[WARN] failed to persist refreshed tokens for user %s: %v", userID, err)
	}
}

func (u *eventUsecase) FetchAndStoreEvents(ctx context.Context, userID string, window *googlecal.SyncWindow) (int, error) {
	client, err := u.authorizedClient(ctx, userID)
	if err != nil {
		return 0, err
	}

	if window == nil {
		w := DefaultSyncWindow(time.Now().UTC())
		window = &w
	}

	googleEvents, err := client.ListEvents(ctx, *window)
	u.persistTokenUpdate(client, userID)
	if err != nil {
		return 0, err
	}

	rows := make([]*eventdomain.Event, 0, len(googleEvents))
	for _, e := range googleEvents {
		if e.Id == "" {
			continue
		}
		start, ok := eventInstant(e.Start)
		if !ok {
			log.Printf("[WARN] sync: skipping event %s: no usable start", e.Id)
			continue
		}
		end, ok := eventInstant(e.End)
		if !ok {
			log.Printf("[WARN] sync: skipping event %s: no usable end", e.Id)
			continue
		}

		title := e.Summary
		if title == "" {
			title = untitledEvent
		}

		id := e.Id
		rows = append(rows, &eventdomain.Event{
			UserID:        userID,
			GoogleEventID: &id,
			Title:         title,
			Start:         start,
			End:           end,
		})
	}

	if err := u.eventRepo.UpsertBatch(rows); err != nil {
		return 0, err
	}

	return len(googleEvents), nil
}

// eventInstant resolves a provider timestamp: an exact dateTime when
// present, otherwise the all-day date coerced to UTC midnight.
func eventInstant(edt *calendar.EventDateTime) (time.Time, bool) {
	if edt == nil {
		return time.Time{}, false
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err == nil {
			return t.UTC(), true
		}
	}
	if edt.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", edt.Date, time.UTC)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (u *eventUsecase) ListEvents(userID string, rangeDays int) (*eventdto.GroupedEvents, error) {
	if rangeDays != 1 && rangeDays != 7 && rangeDays != 30 {
		rangeDays = 7
	}

	// Both bounds derive from independent values, never by mutating a
	// shared "now".
	now := time.Now().UTC()
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 0, rangeDays).Add(-time.Nanosecond)

	events, err := u.eventRepo.ListInRange(userID, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	grouping := "day"
	keyFn := dayKey
	if rangeDays == 30 {
		grouping = "week"
		keyFn = isoWeekKey
	}

	buckets := make(map[string][]*eventdomain.Event)
	for _, e := range events {
		key := keyFn(e.Start)
		buckets[key] = append(buckets[key], e)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]eventdto.Group, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, eventdto.Group{Group: key, Items: buckets[key]})
	}

	return &eventdto.GroupedEvents{
		Range:    rangeDays,
		Grouping: grouping,
		Groups:   groups,
	}, nil
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// isoWeekKey formats YYYY-Www. ISOWeek attributes year-boundary weeks to
// the year of that week's Thursday, so Mon 2025-12-29 lands in 2026-W01.
func isoWeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func (u *eventUsecase) CreateEvent(ctx context.Context, userID string, req *eventdto.CreateEventRequest) (*eventdomain.Event, bool, error) {
	if req.Title == "" || req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		return nil, false, fmt.Errorf("%w: missing fields", ErrInvalidInput)
	}

	// Merge date and time ("2025-10-20" + "14:00"); both instants share
	// the calendar day.
	start, err := time.ParseInLocation("2006-01-02T15:04", req.Date+"T"+req.StartTime, time.UTC)
	if err != nil {
		return nil, false, fmt.Errorf("%w: bad start: %v", ErrInvalidInput, err)
	}
	end, err := time.ParseInLocation("2006-01-02T15:04", req.Date+"T"+req.EndTime, time.UTC)
	if err != nil {
		return nil, false, fmt.Errorf("%w: bad end: %v", ErrInvalidInput, err)
	}

	// Idempotency guard against double submission: an identical event is
	// returned as-is with no provider call.
	existing, err := u.eventRepo.FindExact(userID, req.Title, start, end)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, true, nil
	}

	client, err := u.authorizedClient(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	googleEvent, err := client.InsertEvent(ctx, req.Title, start, end)
	u.persistTokenUpdate(client, userID)
	if err != nil {
		return nil, false, err
	}

	id := googleEvent.Id
	event := &eventdomain.Event{
		UserID:        userID,
		GoogleEventID: &id,
		Title:         req.Title,
		Start:         start,
		End:           end,
	}

	if err := u.eventRepo.Create(event); err != nil {
		// A concurrent identical insert got there first; treat the
		// constraint violation as the same dedup case.
		if errors.Is(err, eventrepo.ErrDuplicateEvent) {
			existing, findErr := u.eventRepo.FindExact(userID, req.Title, start, end)
			if findErr != nil {
				return nil, false, findErr
			}
			if existing != nil {
				return existing, true, nil
			}
		}
		return nil, false, err
	}

	return event, false, nil
}
