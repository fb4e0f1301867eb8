package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

type FulfillFromWarehouseCommandHandler struct {
	orders EscalationService
}

func NewFulfillFromWarehouseCommandHandler(orders EscalationService) FulfillFromWarehouseCommandHandler {
	return FulfillFromWarehouseCommandHandler{orders: orders}
}

// Handle fails with order.ErrIneligibleForEscalationAction unless the order
// is escalated and still awaiting acceptance.
func (h FulfillFromWarehouseCommandHandler) Handle(
	ctx context.Context,
	command FulfillFromWarehouseCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.FetchOrder(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	request, err := services.NewEscalationController().FulfillFromWarehouse(o, command.Note(), command.TrackingNumber())
	if err != nil {
		return nil, err
	}

	return h.orders.EscalateFulfillFromWarehouse(ctx, o.ID(), request)
}
