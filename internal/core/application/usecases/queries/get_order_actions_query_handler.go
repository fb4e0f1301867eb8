package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

type GetOrderActionsQueryHandler struct {
	orders OrderReader
	clock  ports.Clock
}

func NewGetOrderActionsQueryHandler(orders OrderReader, clock ports.Clock) GetOrderActionsQueryHandler {
	return GetOrderActionsQueryHandler{
		orders: orders,
		clock:  clock,
	}
}

func (h GetOrderActionsQueryHandler) Handle(ctx context.Context, query GetOrderActionsQuery) (OrderActions, error) {
	if err := query.Validate(); err != nil {
		return OrderActions{}, err
	}

	o, err := h.orders.FetchOrder(ctx, query.OrderID())
	if err != nil {
		return OrderActions{}, err
	}

	return NewOrderActions(o, h.clock.Now()), nil
}
