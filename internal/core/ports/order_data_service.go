// Package ports defines the contracts between the fulfillment core and the
// outside world. The core reads and writes orders only through
// OrderDataService; the repository and unit of work contracts below are the
// order-data service's own persistence boundary.
package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/vendoraccount"
)

// OrderDataService owns order records. The core plans a change against a
// snapshot and commits it here; the service applies at most one writer per
// order version and reports stale plans as errs.VersionConflictError.
type OrderDataService interface {
	// FetchOrder returns the current snapshot or errs.ObjectNotFoundError.
	FetchOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CommitTransition applies a forward, confirm or revert request. Retrying
	// with the same request id returns the order without applying it twice.
	CommitTransition(ctx context.Context, id kernel.UUID, request order.MutationRequest) (*order.Order, error)

	// Escalate moves the order into the escalated track.
	Escalate(ctx context.Context, id kernel.UUID, request order.EscalationRequest) (*order.Order, error)

	Reassign(ctx context.Context, id kernel.UUID, request order.ReassignRequest) (*order.Order, error)

	EscalateFulfillFromWarehouse(
		ctx context.Context,
		id kernel.UUID,
		request order.WarehouseFulfillmentRequest,
	) (*order.Order, error)

	EscalateRevertToVendor(ctx context.Context, id kernel.UUID, request order.VendorRevertRequest) (*order.Order, error)

	// ListAlternateVendors lists vendors able to serve region. An empty
	// region lists every vendor taking orders.
	ListAlternateVendors(ctx context.Context, region string) ([]*vendoraccount.Vendor, error)

	// ListEscalatedOrders is the operator queue of the escalation track.
	ListEscalatedOrders(
		ctx context.Context,
		filter order.EscalatedOrderFilter,
		page order.Page,
	) (order.EscalatedOrders, error)
	// StatusUpdateWindow is the grace period length the service enforces.
	StatusUpdateWindow(ctx context.Context) (time.Duration, error)

	// Timeline returns the committed changes of an order, oldest first.
	Timeline(ctx context.Context, id kernel.UUID) ([]order.TimelineEntry, error)
}

// Clock supplies the wall-clock time grace periods are evaluated against.
type Clock interface {
	Now() time.Time
}
