package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// ReassignOrderCommandHandler checks the target against the vendors the
// order-data service lists for the order's region before committing.
type ReassignOrderCommandHandler struct {
	orders ReassignmentService
}

func NewReassignOrderCommandHandler(orders ReassignmentService) ReassignOrderCommandHandler {
	return ReassignOrderCommandHandler{orders: orders}
}

func (h ReassignOrderCommandHandler) Handle(ctx context.Context, command ReassignOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.FetchOrder(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.CheckReassignable(); err != nil {
		return nil, err
	}

	candidates, err := h.orders.ListAlternateVendors(ctx, o.Region())
	if err != nil {
		return nil, err
	}

	controller := services.NewEscalationController()
	request, err := controller.Reassign(o, command.VendorID(), command.Reason(), candidates)
	if err != nil {
		return nil, err
	}

	return h.orders.Reassign(ctx, o.ID(), request)
}
