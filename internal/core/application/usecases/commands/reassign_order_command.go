package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReassignOrderCommandIsNotConstructed = errors.New(
	"ReassignOrderCommand must be created via NewReassignOrderCommand constructor",
)

// ReassignOrderCommand routes an escalated, awaiting order to another vendor.
type ReassignOrderCommand struct {
	orderID  kernel.UUID
	vendorID kernel.UUID
	reason   string

	guard guard.ConstructorGuard
}

func NewReassignOrderCommand(orderID, vendorID kernel.UUID, reason string) (ReassignOrderCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return ReassignOrderCommand{}, err
	}
	if err := vendorID.Validate(); err != nil {
		return ReassignOrderCommand{}, errs.NewValueIsRequiredErrorWithCause("vendor id", err)
	}
	r, err := requireReason("reason", reason)
	if err != nil {
		return ReassignOrderCommand{}, err
	}

	return ReassignOrderCommand{
		orderID:  orderID,
		vendorID: vendorID,
		reason:   r,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ReassignOrderCommand) Validate() error {
	return c.guard.Validate(ErrReassignOrderCommandIsNotConstructed)
}

func (c ReassignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ReassignOrderCommand) VendorID() kernel.UUID {
	return c.vendorID
}

func (c ReassignOrderCommand) Reason() string {
	return c.reason
}
