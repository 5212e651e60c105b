package repository

import (
	"errors"
	"time"

	eventdomain "calmirror-backend/internal/event/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// eventRepository implements EventRepository on GORM
type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{
		db: db,
	}
}

// UpsertBatch runs every upsert inside one transaction so a mid-batch
// failure leaves no partial state. Conflicts on google_event_id update the
// mutable fields (title and span) in place.
func (r *eventRepository) UpsertBatch(events []*eventdomain.Event) error {
	if len(events) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, event := range events {
			if event.ID == "" {
				event.ID = uuid.New().String()
			}
			now := time.Now()
			event.CreatedAt = now
			event.UpdatedAt = now

			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "google_event_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"title", "start_at", "end_at", "updated_at"}),
			}).Create(event).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *eventRepository) ListInRange(userID string, start, end time.Time) ([]*eventdomain.Event, error) {
	var events []*eventdomain.Event
	err := r.db.
		Where("user_id = ? AND start_at >= ? AND end_at <= ?", userID, start, end).
		Order("start_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindExact(userID, title string, start, end time.Time) (*eventdomain.Event, error) {
	var event eventdomain.Event
	err := r.db.
		Where("user_id = ? AND title = ? AND start_at = ? AND end_at = ?", userID, title, start, end).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Create(event *eventdomain.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	err := r.db.Create(event).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEvent
	}
	return err
}
