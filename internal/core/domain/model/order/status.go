package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Accepted ──> PickedUp ──> Delivered
//	   │ ▲
//	   ▼ │ (operator re-dispatch)
//	Exhausted
//	   │
//	   ▼
//	Cancelled  (also reachable from Pending)
//
// Pending orders are owned by the offer dispatcher. Exhausted means the
// candidate pool ran dry; the order stays unassigned until an operator either
// re-dispatches or cancels it. Pickup and delivery progress is driven by the
// surrounding system once a courier has accepted.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the order is priced and waiting for a
	// courier to accept an offer.
	Pending

	// Accepted indicates a courier accepted an offer for the order.
	Accepted

	// PickedUp indicates the assigned courier collected the package.
	PickedUp

	// Delivered indicates the package reached its destination. Final.
	Delivered

	// Exhausted indicates dispatch ran out of candidates while the order was
	// still unassigned. Operators may re-dispatch or cancel.
	Exhausted

	// Cancelled indicates an operator cancelled the order. Final.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Accepted:  "Accepted",
		PickedUp:  "PickedUp",
		Delivered: "Delivered",
		Exhausted: "Exhausted",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Accepted:  "Accepted",
		PickedUp:  "PickedUp",
		Delivered: "Delivered",
		Exhausted: "Exhausted",
		Cancelled: "Cancelled",
	}
}

// Validate checks that the Status holds one of the defined values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// Accept transitions Pending -> Accepted. An order can only be accepted while
// it is waiting for a courier; accepted, exhausted, and final orders refuse.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to accept", s.String()))
	}

	return Accepted, nil
}

// PickUp transitions Accepted -> PickedUp.
func (s Status) PickUp() (Status, error) {
	if s != Accepted {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to pick up", s.String()))
	}

	return PickedUp, nil
}

// Deliver transitions PickedUp -> Delivered.
func (s Status) Deliver() (Status, error) {
	if s != PickedUp {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to deliver", s.String()))
	}

	return Delivered, nil
}

// Exhaust transitions Pending -> Exhausted, recording that the candidate pool
// ran dry without an acceptance.
func (s Status) Exhaust() (Status, error) {
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to exhaust", s.String()))
	}

	return Exhausted, nil
}

// Redispatch transitions Exhausted -> Pending for an operator-triggered retry.
func (s Status) Redispatch() (Status, error) {
	if s != Exhausted {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to re-dispatch", s.String()))
	}

	return Pending, nil
}

// Cancel transitions Pending or Exhausted -> Cancelled. Orders already in a
// courier's hands cannot be cancelled through the dispatch core.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Exhausted {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()))
	}

	return Cancelled, nil
}

// ValidateCanHaveCourier validates consistency between status and assignment:
// unassigned statuses must not carry a courier, assigned statuses must.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	assigned := s == Accepted || s == PickedUp || s == Delivered

	if courier && !assigned {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()))
	}

	if !courier && assigned {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()))
	}

	return nil
}
