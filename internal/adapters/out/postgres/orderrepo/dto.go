// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and courier assignment.
type OrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OriginAddress      string
	DestinationAddress string
	Origin             GeoPointDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination        GeoPointDTO `gorm:"embedded;embeddedPrefix:destination_"`
	DistanceKm         float64
	DeliveryFee        decimal.Decimal `gorm:"type:numeric(12,2)"`
	PlatformFee        decimal.Decimal `gorm:"type:numeric(12,2)"`
	Price              decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status             int             `gorm:"index"`
	CourierID          *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt          time.Time
	AcceptedAt         *time.Time
	CompletedAt        *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO represents embedded geographic coordinates within a table row.
type GeoPointDTO struct {
	Lat float64 `gorm:"type:double precision"`
	Lon float64 `gorm:"type:double precision"`
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional courier assignment and timestamps.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		OriginAddress:      aggregate.OriginAddress(),
		DestinationAddress: aggregate.DestinationAddress(),
		Origin: GeoPointDTO{
			Lat: aggregate.Origin().Latitude(),
			Lon: aggregate.Origin().Longitude(),
		},
		Destination: GeoPointDTO{
			Lat: aggregate.Destination().Latitude(),
			Lon: aggregate.Destination().Longitude(),
		},
		DistanceKm:  aggregate.DistanceKm(),
		DeliveryFee: aggregate.DeliveryFee(),
		PlatformFee: aggregate.PlatformFee(),
		Price:       aggregate.Price(),
		Status:      int(aggregate.Status()),
		CourierID:   courierID,
		CreatedAt:   aggregate.CreatedAt(),
		AcceptedAt:  aggregate.AcceptedAt(),
		CompletedAt: aggregate.CompletedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, assignment, and
// timestamps using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	origin, err := kernel.NewGeoPoint(dto.Origin.Lat, dto.Origin.Lon)
	if err != nil {
		return nil, err
	}
	destination, err := kernel.NewGeoPoint(dto.Destination.Lat, dto.Destination.Lon)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.OriginAddress,
		dto.DestinationAddress,
		origin,
		destination,
		dto.DistanceKm,
		order.Pricing{
			DeliveryFee: dto.DeliveryFee,
			PlatformFee: dto.PlatformFee,
			Price:       dto.Price,
		},
		order.Status(dto.Status),
		courierID,
		dto.CreatedAt,
		dto.AcceptedAt,
		dto.CompletedAt,
	)
}
