package queries

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

type GetAlternateVendorsQueryHandler struct {
	orders VendorLister
}

func NewGetAlternateVendorsQueryHandler(orders VendorLister) GetAlternateVendorsQueryHandler {
	return GetAlternateVendorsQueryHandler{orders: orders}
}

// Handle returns the vendors serving the order's region that can take it
// over, excluding the one it is assigned to. The list is returned even when
// the order is not currently reassignable.
func (h GetAlternateVendorsQueryHandler) Handle(
	ctx context.Context,
	query GetAlternateVendorsQuery,
) ([]AlternateVendor, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.FetchOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	candidates, err := h.orders.ListAlternateVendors(ctx, o.Region())
	if err != nil {
		return nil, err
	}

	alternates := services.NewEscalationController().AlternateVendors(o, candidates)
	vendors := make([]AlternateVendor, 0, len(alternates))
	for _, v := range alternates {
		vendors = append(vendors, AlternateVendor{
			ID:              v.ID(),
			Name:            v.Name(),
			Regions:         v.Regions(),
			EscalationCount: v.EscalationCount(),
		})
	}

	return vendors, nil
}
