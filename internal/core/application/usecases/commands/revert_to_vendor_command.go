package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRevertToVendorCommandIsNotConstructed = errors.New(
	"RevertToVendorCommand must be created via NewRevertToVendorCommand constructor",
)

// RevertToVendorCommand withdraws an escalation and leaves the order with its
// assigned vendor.
type RevertToVendorCommand struct {
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewRevertToVendorCommand(orderID kernel.UUID, reason string) (RevertToVendorCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return RevertToVendorCommand{}, err
	}
	r, err := requireReason("reason", reason)
	if err != nil {
		return RevertToVendorCommand{}, err
	}

	return RevertToVendorCommand{
		orderID: orderID,
		reason:  r,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RevertToVendorCommand) Validate() error {
	return c.guard.Validate(ErrRevertToVendorCommandIsNotConstructed)
}

func (c RevertToVendorCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c RevertToVendorCommand) Reason() string {
	return c.reason
}
