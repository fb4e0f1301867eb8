package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrEscalateOrderCommandIsNotConstructed = errors.New(
	"EscalateOrderCommand must be created via NewEscalateOrderCommand constructor",
)

// EscalateOrderCommand records that the assigned vendor declined or failed to
// act on an order.
type EscalateOrderCommand struct {
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewEscalateOrderCommand(orderID kernel.UUID, reason string) (EscalateOrderCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return EscalateOrderCommand{}, err
	}
	r, err := requireReason("reason", reason)
	if err != nil {
		return EscalateOrderCommand{}, err
	}

	return EscalateOrderCommand{
		orderID: orderID,
		reason:  r,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c EscalateOrderCommand) Validate() error {
	return c.guard.Validate(ErrEscalateOrderCommandIsNotConstructed)
}

func (c EscalateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c EscalateOrderCommand) Reason() string {
	return c.reason
}
