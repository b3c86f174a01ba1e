package offerrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/offer"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOfferRepository implements OfferRepository using GORM.
type GormOfferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOfferRepository creates a new GORM offer repository.
func NewGormOfferRepository(db *gorm.DB, tracker aggregateTracker) *GormOfferRepository {
	return &GormOfferRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new offer to the database. When the partial unique index rejects
// a second Pending offer for the same order, the violation surfaces as
// offer.ErrAlreadyResolved: the order already has a live offer. Requires the
// gorm connection to be opened with TranslateError.
func (r *GormOfferRepository) Add(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return offer.ErrAlreadyResolved
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists an offer resolution. The write is conditional on the stored
// row still being Pending; a lost race returns offer.ErrAlreadyResolved and
// changes nothing.
func (r *GormOfferRepository) Update(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OfferDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(offer.Pending)).
		Update("status", dto.Status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return offer.ErrAlreadyResolved
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an offer by ID.
func (r *GormOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offer", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPendingByCourier retrieves the courier's Pending offers, oldest first.
// Lazily expired offers are included; callers filter on the deadline.
func (r *GormOfferRepository) GetAllPendingByCourier(
	ctx context.Context,
	courierID kernel.UUID,
) ([]*offer.Offer, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OfferDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ? AND status = ?", courierID.Bytes(), int(offer.Pending)).
		Order("offered_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// HasPendingByOrder reports whether the order currently has a Pending offer.
func (r *GormOfferRepository) HasPendingByOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OfferDTO{}).
		Where("order_id = ? AND status = ?", orderID.Bytes(), int(offer.Pending)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetOfferedCourierIDs returns the ids of every courier the order was ever
// offered to, regardless of how the offer resolved.
func (r *GormOfferRepository) GetOfferedCourierIDs(
	ctx context.Context,
	orderID kernel.UUID,
) ([]kernel.UUID, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).Model(&OfferDTO{}).
		Distinct("courier_id").
		Where("order_id = ?", orderID.Bytes()).
		Pluck("courier_id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, err := kernel.UUIDFromBytes(b[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// GetAllExpiredPending retrieves Pending offers whose deadline passed before
// now, oldest first. Input to the expiry sweep.
func (r *GormOfferRepository) GetAllExpiredPending(
	ctx context.Context,
	now time.Time,
) ([]*offer.Offer, error) {
	var dtos []OfferDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", int(offer.Pending), now).
		Order("expires_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []OfferDTO) ([]*offer.Offer, error) {
	offers := make([]*offer.Offer, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}

	return offers, nil
}
