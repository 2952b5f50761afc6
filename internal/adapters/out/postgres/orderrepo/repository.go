package orderrepo

import (
	"context"
	"errors"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/order"
	"callcenter/internal/core/ports"
	"callcenter/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddIfAbsent inserts the order with INSERT ... ON CONFLICT (session_id)
// DO NOTHING. When no row was written the session already has an order and
// ports.ErrOrderAlreadyExists is returned. The statement never fails on the
// conflict, so the surrounding transaction remains usable.
func (r *GormOrderRepository) AddIfAbsent(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrOrderAlreadyExists
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetBySession retrieves the order committed for a session.
func (r *GormOrderRepository) GetBySession(ctx context.Context, sessionID kernel.UUID) (*order.Order, error) {
	if err := sessionID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "session_id = ?", sessionID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", sessionID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
