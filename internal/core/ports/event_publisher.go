package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EventPublisher announces committed order changes to downstream consumers.
// It is called after the transaction commits, so a failure never undoes the change.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.ChangedEvent) error
}
