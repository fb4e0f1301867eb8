package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

type RevertToVendorCommandHandler struct {
	orders EscalationService
}

func NewRevertToVendorCommandHandler(orders EscalationService) RevertToVendorCommandHandler {
	return RevertToVendorCommandHandler{orders: orders}
}

func (h RevertToVendorCommandHandler) Handle(ctx context.Context, command RevertToVendorCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.FetchOrder(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	request, err := services.NewEscalationController().RevertToVendor(o, command.Reason())
	if err != nil {
		return nil, err
	}

	return h.orders.EscalateRevertToVendor(ctx, o.ID(), request)
}
