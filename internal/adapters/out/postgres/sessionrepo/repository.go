package sessionrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"deliverybot/internal/core/domain/model/session"
	"deliverybot/internal/pkg/errs"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(chatID int64, aggregate any)
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new session to the database.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ChatID(), aggregate)
	return nil
}

// Update saves an existing session to the database. All columns are written,
// so fields cleared in the aggregate (a discarded candidate, for example)
// are cleared in storage too.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&SessionDTO{}).
		Where("chat_id = ?", dto.ChatID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ChatID(), aggregate)
	return nil
}

// Get retrieves the session for a chat.
func (r *GormSessionRepository) Get(ctx context.Context, chatID int64) (*session.Session, error) {
	var dto SessionDTO
	if err := r.db.WithContext(ctx).First(&dto, "chat_id = ?", chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", chatID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the session for a chat. A chat with no session is a no-op.
func (r *GormSessionRepository) Delete(ctx context.Context, chatID int64) error {
	return r.db.WithContext(ctx).Delete(&SessionDTO{}, "chat_id = ?", chatID).Error
}

// DeleteStale removes sessions idle longer than maxIdle and reports how many
// rows were removed.
func (r *GormSessionRepository) DeleteStale(ctx context.Context, maxIdle time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxIdle)

	result := r.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&SessionDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
