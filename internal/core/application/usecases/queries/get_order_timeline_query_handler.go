package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

type GetOrderTimelineQueryHandler struct {
	orders TimelineReader
}

func NewGetOrderTimelineQueryHandler(orders TimelineReader) GetOrderTimelineQueryHandler {
	return GetOrderTimelineQueryHandler{orders: orders}
}

// Handle fetches the order first so an unknown id yields errs.ObjectNotFoundError
// rather than an empty timeline.
func (h GetOrderTimelineQueryHandler) Handle(ctx context.Context, query GetOrderTimelineQuery) ([]order.TimelineEntry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.FetchOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	return h.orders.Timeline(ctx, o.ID())
}
