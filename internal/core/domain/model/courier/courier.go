package courier

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrLocationIsUnknown is returned when an operation needs coordinates the
	// courier has never reported.
	ErrLocationIsUnknown = errors.New("courier location is unknown")
)

// Courier represents a delivery person as the dispatch core sees them.
//
// The courier's account and profile live in user management; this aggregate
// carries only what offer dispatch reads and writes: availability (online flag
// plus a last known location), the priority score that orders the candidate
// ranking, and the daily rejection counter.
//
// Business rules:
//   - priorityScore only grows, through reject and expiry penalties; lower
//     scores are dispatched first
//   - a courier with no reported location is never offered an order
//   - penalty increments are persisted as atomic relative updates, so the
//     in-memory methods here exist for domain logic and tests, not as the
//     write path for concurrent penalty application
type Courier struct {
	id   kernel.UUID
	name string

	online         bool
	location       *kernel.GeoPoint
	lastLocationAt *time.Time

	priorityScore   int
	rejectionsToday int

	isConstructed bool
}

// NewCourier registers a courier in the dispatch pool: offline, with no known
// location and a clean score.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: human-readable name (must be non-empty)
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	c := &Courier{
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier from persistent storage. Location and
// its timestamp must be both present or both absent.
func RestoreCourier(
	id kernel.UUID,
	name string,
	online bool,
	location *kernel.GeoPoint,
	lastLocationAt *time.Time,
	priorityScore, rejectionsToday int,
) (*Courier, error) {
	c := &Courier{
		online:        online,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setCounters(priorityScore, rejectionsToday),
	); err != nil {
		return nil, err
	}

	if (location == nil) != (lastLocationAt == nil) {
		return nil, errs.NewValueIsInvalidError("location and lastLocationAt must be set together")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		c.location = location
		c.lastLocationAt = lastLocationAt
	}

	return c, nil
}

// Validate ensures the Courier was created through a factory method.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}

	return nil
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's human-readable name.
func (c *Courier) Name() string {
	return c.name
}

// IsOnline reports whether the courier is accepting work.
func (c *Courier) IsOnline() bool {
	return c.online
}

// Location returns the last reported coordinates, or nil if never reported.
func (c *Courier) Location() *kernel.GeoPoint {
	return c.location
}

// LastLocationAt returns when the location was last reported, or nil.
func (c *Courier) LastLocationAt() *time.Time {
	return c.lastLocationAt
}

// PriorityScore returns the ranking penalty counter. Lower is dispatched first.
func (c *Courier) PriorityScore() int {
	return c.priorityScore
}

// RejectionsToday returns the courier's rejection counter for the current day.
func (c *Courier) RejectionsToday() int {
	return c.rejectionsToday
}

// HasLocation reports whether the courier has ever reported coordinates.
func (c *Courier) HasLocation() bool {
	return c.location != nil
}

// IsDispatchable reports whether the courier can be offered an order: online
// with a known location. Workload (no active order) is a storage-level filter.
func (c *Courier) IsDispatchable() bool {
	return c.online && c.HasLocation()
}

// GoOnline marks the courier as accepting work.
func (c *Courier) GoOnline() {
	c.online = true
}

// GoOffline withdraws the courier from the dispatch pool. Pending offers
// already issued to them keep running until resolved or expired.
func (c *Courier) GoOffline() {
	c.online = false
}

// UpdateLocation records the courier's reported coordinates.
func (c *Courier) UpdateLocation(location kernel.GeoPoint, at time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = &location
	c.lastLocationAt = &at
	return nil
}

// DistanceToKm returns the straight-line distance from the courier's last
// known location to the target, used for candidate ranking.
func (c *Courier) DistanceToKm(target kernel.GeoPoint) (float64, error) {
	if !c.HasLocation() {
		return 0, ErrLocationIsUnknown
	}

	return c.location.DistanceKm(target)
}

// ApplyPenalty raises the priority score and, when the penalty stems from an
// explicit rejection, the daily rejection counter. The score never decreases
// here; any decay is a policy owned by the surrounding system.
func (c *Courier) ApplyPenalty(scoreDelta int, countRejection bool) error {
	if scoreDelta < 0 {
		return errs.NewValueIsInvalidErrorWithCause("scoreDelta",
			fmt.Errorf("%d is negative", scoreDelta))
	}

	c.priorityScore += scoreDelta
	if countRejection {
		c.rejectionsToday++
	}
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setCounters(priorityScore, rejectionsToday int) error {
	if priorityScore < 0 {
		return errs.NewValueIsInvalidErrorWithCause("priorityScore",
			fmt.Errorf("%d is negative", priorityScore))
	}
	if rejectionsToday < 0 {
		return errs.NewValueIsInvalidErrorWithCause("rejectionsToday",
			fmt.Errorf("%d is negative", rejectionsToday))
	}

	c.priorityScore = priorityScore
	c.rejectionsToday = rejectionsToday
	return nil
}
