package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AdvanceStatusCommandHandler resolves a status selection into a forward
// transition or a revert and commits it.
type AdvanceStatusCommandHandler struct {
	orders TransitionService
	clock  ports.Clock
}

func NewAdvanceStatusCommandHandler(orders TransitionService, clock ports.Clock) AdvanceStatusCommandHandler {
	return AdvanceStatusCommandHandler{
		orders: orders,
		clock:  clock,
	}
}

// Handle returns the order as committed. When the selection is the current
// status and no window is open, the fetched snapshot is returned and nothing
// is committed.
func (h AdvanceStatusCommandHandler) Handle(ctx context.Context, command AdvanceStatusCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.FetchOrder(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	window, err := h.orders.StatusUpdateWindow(ctx)
	if err != nil {
		return nil, err
	}
	coordinator, err := services.NewGracePeriodCoordinator(window)
	if err != nil {
		return nil, err
	}

	request, changed, err := coordinator.Select(o, command.Status(), h.clock.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	return h.orders.CommitTransition(ctx, o.ID(), request)
}
