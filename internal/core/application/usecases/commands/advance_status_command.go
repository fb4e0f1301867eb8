package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceStatusCommandIsNotConstructed = errors.New(
	"AdvanceStatusCommand must be created via NewAdvanceStatusCommand constructor",
)

// AdvanceStatusCommand applies an operator's status selection. The selection
// must be one of the order's available selections: the next status opens a
// grace period, the previous status of an open window reverts it, and the
// current status is a no-op.
//
// Example:
//
//	cmd, err := NewAdvanceStatusCommand(orderID, "dispatched")
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // dispatched is not selectable for this order right now
//	}
type AdvanceStatusCommand struct {
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceStatusCommand accepts any recognized status spelling.
func NewAdvanceStatusCommand(orderID kernel.UUID, status string) (AdvanceStatusCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return AdvanceStatusCommand{}, err
	}
	target, err := order.ParseStatus(status)
	if err != nil {
		return AdvanceStatusCommand{}, err
	}

	return AdvanceStatusCommand{
		orderID: orderID,
		status:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStatusCommandIsNotConstructed)
}

func (c AdvanceStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceStatusCommand) Status() order.Status {
	return c.status
}
