package offer

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrAlreadyResolved is returned when an offer that has left the Pending state
// (or has logically expired) is resolved again. Callers treat it as a benign
// "offer no longer available" condition: the client should poll for a new
// offer, not retry this one.
var ErrAlreadyResolved = errors.New("offer is already resolved")

// Status represents the lifecycle state of an offer.
//
// State transitions:
//
//	Pending ──> Accepted
//	   ├──────> Rejected
//	   └──────> Expired
//
// Exactly one of the three resolutions is final for any offer; there are no
// transitions out of a resolved state.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending means the offer is exclusively held by its courier until it
	// resolves or its window lapses.
	Pending

	// Accepted means the courier took the order. Final.
	Accepted

	// Rejected means the courier explicitly declined. Final.
	Rejected

	// Expired means the offer window lapsed without a response. Final.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Pending:  "Pending",
		Accepted: "Accepted",
		Rejected: "Rejected",
		Expired:  "Expired",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:  "Pending",
		Accepted: "Accepted",
		Rejected: "Rejected",
		Expired:  "Expired",
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

// IsResolved reports whether the offer has reached a final status.
func (s Status) IsResolved() bool {
	return s == Accepted || s == Rejected || s == Expired
}

// Accept transitions Pending -> Accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, ErrAlreadyResolved
	}

	return Accepted, nil
}

// Reject transitions Pending -> Rejected.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, ErrAlreadyResolved
	}

	return Rejected, nil
}

// Expire transitions Pending -> Expired.
func (s Status) Expire() (Status, error) {
	if s != Pending {
		return 0, ErrAlreadyResolved
	}

	return Expired, nil
}
