package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the aggregate only if the stored row is still at
	// expectedVersion. A lost race yields errs.VersionConflictError.
	Update(ctx context.Context, aggregate *order.Order, expectedVersion int64) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListWithExpiredGracePeriod returns up to limit orders whose active
	// status update window ended at or before now, oldest deadline first.
	ListWithExpiredGracePeriod(ctx context.Context, now time.Time, limit int) ([]*order.Order, error)
	// ListEscalated returns one page of escalated orders matching filter,
	// latest escalation first.
	ListEscalated(ctx context.Context, filter order.EscalatedOrderFilter, page order.Page) (order.EscalatedOrders, error)
}

// TimelineRepository stores the audit trail of committed changes. Entry ids
// double as idempotency keys for mutation requests.
type TimelineRepository interface {
	Add(ctx context.Context, entry order.TimelineEntry) error

	// Exists reports whether an entry with id was already recorded.
	Exists(ctx context.Context, id kernel.UUID) (bool, error)

	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.TimelineEntry, error)
}
