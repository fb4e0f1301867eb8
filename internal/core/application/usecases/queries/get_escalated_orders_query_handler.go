package queries

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

type GetEscalatedOrdersQueryHandler struct {
	orders EscalationQueueReader
}

func NewGetEscalatedOrdersQueryHandler(orders EscalationQueueReader) GetEscalatedOrdersQueryHandler {
	return GetEscalatedOrdersQueryHandler{orders: orders}
}

func (h GetEscalatedOrdersQueryHandler) Handle(ctx context.Context, query GetEscalatedOrdersQuery) (EscalatedOrderQueue, error) {
	if err := query.Validate(); err != nil {
		return EscalatedOrderQueue{}, err
	}

	listed, err := h.orders.ListEscalatedOrders(ctx, query.Filter(), query.Page())
	if err != nil {
		return EscalatedOrderQueue{}, err
	}

	controller := services.NewEscalationController()
	queue := EscalatedOrderQueue{
		Items:      make([]EscalatedOrderSummary, 0, len(listed.Items)),
		Total:      listed.Total,
		PageNumber: query.Page().Number(),
		PageSize:   query.Page().Size(),
	}
	for _, item := range listed.Items {
		o := item.Order
		queue.Items = append(queue.Items, EscalatedOrderSummary{
			OrderID:            o.ID(),
			Status:             o.Status(),
			PaymentStatus:      o.PaymentStatus(),
			AssignedVendorID:   o.AssignedVendorID(),
			Region:             o.Region(),
			EscalationReason:   o.EscalationReason(),
			EscalatedAt:        item.EscalatedAt,
			Version:            o.Version(),
			CanReassign:        controller.CanReassign(o),
			CanEscalateFulfill: controller.CanFulfillFromWarehouse(o),
			CanEscalateRevert:  controller.CanRevertToVendor(o),
		})
	}

	return queue, nil
}
