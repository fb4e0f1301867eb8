// Package commands contains the operator actions that change an order. Every
// handler fetches a fresh snapshot, plans the change through a domain service,
// and commits exactly one request through the order-data service. Errors are
// returned unchanged; nothing is retried here.
package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/vendoraccount"
	"fulfillment/internal/core/ports"
)

// Narrow views of ports.OrderDataService, one per family of handlers.
type (
	// OrderFetcher loads the snapshot a command is planned against.
	OrderFetcher interface {
		FetchOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)
	}

	// TransitionService commits status mutations and owns the window length.
	TransitionService interface {
		OrderFetcher
		CommitTransition(ctx context.Context, id kernel.UUID, request order.MutationRequest) (*order.Order, error)
		StatusUpdateWindow(ctx context.Context) (time.Duration, error)
	}

	// EscalationService commits changes to the escalation track.
	EscalationService interface {
		OrderFetcher
		Escalate(ctx context.Context, id kernel.UUID, request order.EscalationRequest) (*order.Order, error)
		EscalateFulfillFromWarehouse(
			ctx context.Context,
			id kernel.UUID,
			request order.WarehouseFulfillmentRequest,
		) (*order.Order, error)
		EscalateRevertToVendor(ctx context.Context, id kernel.UUID, request order.VendorRevertRequest) (*order.Order, error)
	}

	// ReassignmentService routes escalated orders to alternate vendors.
	ReassignmentService interface {
		OrderFetcher
		Reassign(ctx context.Context, id kernel.UUID, request order.ReassignRequest) (*order.Order, error)
		ListAlternateVendors(ctx context.Context, region string) ([]*vendoraccount.Vendor, error)
	}
)

var (
	_ TransitionService   = (ports.OrderDataService)(nil)
	_ EscalationService   = (ports.OrderDataService)(nil)
	_ ReassignmentService = (ports.OrderDataService)(nil)
)
