package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

type EscalateOrderCommandHandler struct {
	orders EscalationService
}

func NewEscalateOrderCommandHandler(orders EscalationService) EscalateOrderCommandHandler {
	return EscalateOrderCommandHandler{orders: orders}
}

func (h EscalateOrderCommandHandler) Handle(ctx context.Context, command EscalateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.FetchOrder(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	request, err := services.NewEscalationController().Escalate(o, command.Reason())
	if err != nil {
		return nil, err
	}

	return h.orders.Escalate(ctx, o.ID(), request)
}
