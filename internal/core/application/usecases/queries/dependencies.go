// Package queries contains read-only operations. Read models are derived
// fresh from the snapshot on every call and never cached.
package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/vendoraccount"
)

type (
	OrderReader interface {
		FetchOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)
	}

	VendorLister interface {
		OrderReader
		ListAlternateVendors(ctx context.Context, region string) ([]*vendoraccount.Vendor, error)
	}

	TimelineReader interface {
		OrderReader
		Timeline(ctx context.Context, id kernel.UUID) ([]order.TimelineEntry, error)
	}

	EscalationQueueReader interface {
		ListEscalatedOrders(
			ctx context.Context,
			filter order.EscalatedOrderFilter,
			page order.Page,
		) (order.EscalatedOrders, error)
	}
)
