package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOriginAddressIsRequired      = errors.New("origin address is required")
	ErrDestinationAddressIsRequired = errors.New("destination address is required")
)

// CreateOrderCommand represents a request to create a new delivery order from
// a pair of human-readable addresses. Geocoding, routing, and pricing happen
// in the handler.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "Amir Temur Avenue 1", "Navoi Street 30")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	originAddress      string
	destinationAddress string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates that the order ID is valid and both addresses are non-empty.
func NewCreateOrderCommand(orderID kernel.UUID, originAddress, destinationAddress string) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setAddresses(originAddress, destinationAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OriginAddress returns the pickup address.
func (c CreateOrderCommand) OriginAddress() string {
	return c.originAddress
}

// DestinationAddress returns the drop-off address.
func (c CreateOrderCommand) DestinationAddress() string {
	return c.destinationAddress
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setAddresses(originAddress, destinationAddress string) error {
	if originAddress == "" {
		return ErrOriginAddressIsRequired
	}
	if destinationAddress == "" {
		return ErrDestinationAddressIsRequired
	}

	c.originAddress = originAddress
	c.destinationAddress = destinationAddress
	return nil
}
