package sessionrepo

import (
	"context"
	"errors"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/session"
	"callcenter/internal/core/ports"
	"callcenter/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB, tracker aggregateTracker) *GormSessionRepository {
	return &GormSessionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new session.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.CallSession) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes state, member and last error of a session whose stored
// state is still from. Nil member and last error are written as NULL.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *session.CallSession, from session.State) error {
	return r.save(ctx, aggregate, from,
		"state", "member_number", "last_error_code", "last_error_message", "updated_at")
}

// RecordFailure writes only the last error of a session whose stored state
// is still from.
func (r *GormSessionRepository) RecordFailure(ctx context.Context, aggregate *session.CallSession, from session.State) error {
	return r.save(ctx, aggregate, from, "last_error_code", "last_error_message", "updated_at")
}

// save is a compare-and-set on the state column. A concurrent writer that
// moved the session on makes the update match no row.
func (r *GormSessionRepository) save(
	ctx context.Context,
	aggregate *session.CallSession,
	from session.State,
	columns ...string,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&SessionDTO{}).
		Where("id = ? AND state = ?", dto.ID, from.String()).
		Select(columns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&SessionDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("session", aggregate.ID().String())
		}
		return ports.ErrSessionStateChanged
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a session by ID without locking it.
func (r *GormSessionRepository) Get(ctx context.Context, id kernel.UUID) (*session.CallSession, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a session by ID with SELECT ... FOR UPDATE. The
// row stays locked until the surrounding transaction ends, so it must be
// called inside a unit of work.
func (r *GormSessionRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*session.CallSession, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormSessionRepository) get(db *gorm.DB, id kernel.UUID) (*session.CallSession, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SessionDTO
	if err := db.Preload("Member").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("session", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
