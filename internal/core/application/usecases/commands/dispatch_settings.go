package commands

import (
	"errors"
	"time"
)

// Default dispatch parameters. An explicit reject is penalized more heavily
// than a silent expiry: rejecting quickly is still the more cooperative signal,
// but stalling until the last moment must not become the cheaper option.
const (
	DefaultOfferWindow   = 60 * time.Second
	DefaultRejectPenalty = 10
	DefaultExpirePenalty = 5
)

// DispatchSettings carries the tunable dispatch parameters, injected into the
// command handlers instead of read from global configuration.
type DispatchSettings struct {
	// OfferWindow is how long a courier exclusively holds an offer.
	OfferWindow time.Duration
	// RejectPenalty is added to priorityScore on an explicit rejection.
	RejectPenalty int
	// ExpirePenalty is added to priorityScore when an offer expires unanswered.
	ExpirePenalty int
}

// DefaultDispatchSettings returns the standard parameters: a 60 second offer
// window, reject penalty 10, expiry penalty 5.
func DefaultDispatchSettings() DispatchSettings {
	return DispatchSettings{
		OfferWindow:   DefaultOfferWindow,
		RejectPenalty: DefaultRejectPenalty,
		ExpirePenalty: DefaultExpirePenalty,
	}
}

// Validate checks that the settings are usable for dispatch.
func (s DispatchSettings) Validate() error {
	if s.OfferWindow <= 0 {
		return errors.New("offer window must be positive")
	}
	if s.RejectPenalty < 0 || s.ExpirePenalty < 0 {
		return errors.New("penalties must be non-negative")
	}

	return nil
}
