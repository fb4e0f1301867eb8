package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmStatusCommandIsNotConstructed = errors.New(
	"ConfirmStatusCommand must be created via NewConfirmStatusCommand constructor",
)

// ConfirmStatusCommand finalizes the open grace period of an order.
type ConfirmStatusCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmStatusCommand(orderID kernel.UUID) (ConfirmStatusCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return ConfirmStatusCommand{}, err
	}
	return ConfirmStatusCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmStatusCommand) Validate() error {
	return c.guard.Validate(ErrConfirmStatusCommandIsNotConstructed)
}

func (c ConfirmStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}
