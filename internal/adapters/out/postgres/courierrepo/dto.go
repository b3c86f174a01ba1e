// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// Location columns are nullable: a courier that never reported a position has
// no coordinates and is excluded from dispatch.
type CourierDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string
	Online          bool     `gorm:"index"`
	Lat             *float64 `gorm:"type:double precision"`
	Lon             *float64 `gorm:"type:double precision"`
	LastLocationAt  *time.Time
	PriorityScore   int
	RejectionsToday int
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		Online:          aggregate.IsOnline(),
		LastLocationAt:  aggregate.LastLocationAt(),
		PriorityScore:   aggregate.PriorityScore(),
		RejectionsToday: aggregate.RejectionsToday(),
	}

	if loc := aggregate.Location(); loc != nil {
		lat := loc.Latitude()
		lon := loc.Longitude()
		dto.Lat = &lat
		dto.Lon = &lon
	}

	return dto
}

// toDomain converts a database DTO to a courier domain aggregate using RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lon != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lon)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		dto.Online,
		location,
		dto.LastLocationAt,
		dto.PriorityScore,
		dto.RejectionsToday,
	)
}
