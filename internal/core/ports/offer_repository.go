package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/offer"
)

// OfferRepository defines the persistence contract for offer aggregates.
//
// The store enforces the one-pending-offer-per-order rule with a partial
// unique index, and resolutions are written as conditional updates guarded on
// the Pending status so concurrent resolutions of the same offer cannot both
// win.
type OfferRepository interface {
	// Add persists a new offer. Inserting a second Pending offer for the same
	// order fails with offer.ErrAlreadyResolved semantics at the storage level.
	Add(ctx context.Context, aggregate *offer.Offer) error

	// Update persists an offer resolution. The write is conditional on the
	// stored status still being Pending; when another resolution won the race
	// it returns offer.ErrAlreadyResolved and changes nothing.
	Update(ctx context.Context, aggregate *offer.Offer) error

	// Get retrieves an offer by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such offer exists.
	Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error)

	// GetAllPendingByCourier retrieves the courier's Pending offers. Lazily
	// expired offers may be included; callers filter on the expiry deadline.
	GetAllPendingByCourier(ctx context.Context, courierID kernel.UUID) ([]*offer.Offer, error)

	// HasPendingByOrder reports whether the order currently has a Pending offer.
	HasPendingByOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// GetOfferedCourierIDs returns the ids of every courier that has ever been
	// offered the order, regardless of how the offer resolved. Dispatch uses
	// this to never offer the same order to the same courier twice.
	GetOfferedCourierIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error)

	// GetAllExpiredPending retrieves Pending offers whose deadline passed
	// before now. Input to the expiry sweep.
	GetAllExpiredPending(ctx context.Context, now time.Time) ([]*offer.Offer, error)
}
