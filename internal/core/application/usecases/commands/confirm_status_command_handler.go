package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

type ConfirmStatusCommandHandler struct {
	orders TransitionService
	clock  ports.Clock
}

func NewConfirmStatusCommandHandler(orders TransitionService, clock ports.Clock) ConfirmStatusCommandHandler {
	return ConfirmStatusCommandHandler{
		orders: orders,
		clock:  clock,
	}
}

// Handle closes the window without changing the status. It fails with
// order.ErrNoActiveGracePeriod when there is nothing to confirm.
func (h ConfirmStatusCommandHandler) Handle(ctx context.Context, command ConfirmStatusCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.FetchOrder(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	request, err := services.GracePeriodCoordinator{}.Confirm(o, h.clock.Now())
	if err != nil {
		return nil, err
	}

	return h.orders.CommitTransition(ctx, o.ID(), request)
}
