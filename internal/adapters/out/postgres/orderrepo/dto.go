// Package orderrepo persists committed orders. The orders table carries a
// unique index on session_id, so a session can never hold more than one
// order regardless of how the insert was coordinated.
package orderrepo

import (
	"time"

	"callcenter/internal/core/domain/model/kernel"
	"callcenter/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents a row of the orders table.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_orders_session_id"`
	MemberNumber string    `gorm:"type:varchar(8);not null;index"`
	OrderNumber  string    `gorm:"type:varchar(8);not null"`
	Quantity     int       `gorm:"type:int;not null;check:chk_orders_quantity,quantity > 0"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:           o.ID().Bytes(),
		SessionID:    o.SessionID().Bytes(),
		MemberNumber: o.MemberNumber().String(),
		OrderNumber:  o.OrderNumber().String(),
		Quantity:     o.Quantity(),
		CreatedAt:    o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sessionID, err := kernel.UUIDFromBytes(dto.SessionID[:])
	if err != nil {
		return nil, err
	}

	memberNumber, err := kernel.NewDigitCode("member number", dto.MemberNumber)
	if err != nil {
		return nil, err
	}

	orderNumber, err := kernel.NewDigitCode("order number", dto.OrderNumber)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, sessionID, memberNumber, orderNumber, dto.Quantity, dto.CreatedAt)
}
