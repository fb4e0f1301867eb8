package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

type RevertStatusCommandHandler struct {
	orders TransitionService
	clock  ports.Clock
}

func NewRevertStatusCommandHandler(orders TransitionService, clock ports.Clock) RevertStatusCommandHandler {
	return RevertStatusCommandHandler{
		orders: orders,
		clock:  clock,
	}
}

// Handle fails with order.ErrNoActiveGracePeriod when no window is open and
// with order.ErrGracePeriodExpired once it has elapsed.
func (h RevertStatusCommandHandler) Handle(ctx context.Context, command RevertStatusCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.FetchOrder(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	request, err := services.GracePeriodCoordinator{}.Revert(o, h.clock.Now())
	if err != nil {
		return nil, err
	}

	return h.orders.CommitTransition(ctx, o.ID(), request)
}
