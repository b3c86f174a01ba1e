package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrSweepExpiredOffersCommandIsNotConstructed = errors.New(
	"SweepExpiredOffersCommand must be created via NewSweepExpiredOffersCommand constructor",
)

// SweepExpiredOffersCommand triggers one pass over lapsed pending offers. It
// carries no parameters; the sweep always operates on "now".
type SweepExpiredOffersCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepExpiredOffersCommand creates a sweep command.
func NewSweepExpiredOffersCommand() SweepExpiredOffersCommand {
	return SweepExpiredOffersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SweepExpiredOffersCommand) Validate() error {
	return c.guard.Validate(ErrSweepExpiredOffersCommandIsNotConstructed)
}
