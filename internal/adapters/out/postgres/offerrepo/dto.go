// Package offerrepo provides data transfer objects and mapping functions for offer persistence.
// The table enforces the one-pending-offer-per-order rule with a partial unique
// index, so the invariant holds even if two dispatch cycles race past the
// application-level check.
package offerrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/offer"

	"github.com/google/uuid"
)

// OfferDTO represents the database structure for persisting offer aggregates.
// The partial unique index on order_id applies only to Pending rows (status 1):
// resolved offers for the same order may accumulate, but at most one can be
// live at a time.
type OfferDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID `gorm:"type:uuid;uniqueIndex:uniq_offers_pending_order,where:status = 1"`
	CourierID          uuid.UUID `gorm:"type:uuid;index"`
	DistanceToPickupKm float64
	Status             int       `gorm:"index:idx_offers_status_expires"`
	OfferedAt          time.Time
	ExpiresAt          time.Time `gorm:"index:idx_offers_status_expires"`
}

// TableName specifies the database table name for offer entities.
func (OfferDTO) TableName() string {
	return "offers"
}

// fromDomain converts an offer domain aggregate to its database representation.
func fromDomain(aggregate *offer.Offer) OfferDTO {
	return OfferDTO{
		ID:                 aggregate.ID().Bytes(),
		OrderID:            aggregate.OrderID().Bytes(),
		CourierID:          aggregate.CourierID().Bytes(),
		DistanceToPickupKm: aggregate.DistanceToPickupKm(),
		Status:             int(aggregate.Status()),
		OfferedAt:          aggregate.OfferedAt(),
		ExpiresAt:          aggregate.ExpiresAt(),
	}
}

// toDomain converts a database DTO to an offer domain aggregate using RestoreOffer.
func toDomain(dto OfferDTO) (*offer.Offer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	return offer.RestoreOffer(
		id,
		orderID,
		courierID,
		dto.DistanceToPickupKm,
		offer.Status(dto.Status),
		dto.OfferedAt,
		dto.ExpiresAt,
	)
}
