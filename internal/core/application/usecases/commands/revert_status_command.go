package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRevertStatusCommandIsNotConstructed = errors.New(
	"RevertStatusCommand must be created via NewRevertStatusCommand constructor",
)

// RevertStatusCommand restores the status an order held before its last
// forward transition, while the grace period is still open.
type RevertStatusCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRevertStatusCommand(orderID kernel.UUID) (RevertStatusCommand, error) {
	if err := validateOrderID(orderID); err != nil {
		return RevertStatusCommand{}, err
	}
	return RevertStatusCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c RevertStatusCommand) Validate() error {
	return c.guard.Validate(ErrRevertStatusCommandIsNotConstructed)
}

func (c RevertStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}
