package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderTimelineQueryIsNotConstructed = errors.New(
	"GetOrderTimelineQuery must be created via NewGetOrderTimelineQuery constructor",
)

// GetOrderTimelineQuery returns the audit trail of an order: every committed
// status change, revert and escalation action, oldest first.
type GetOrderTimelineQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderTimelineQuery(orderID kernel.UUID) (GetOrderTimelineQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTimelineQuery{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	return GetOrderTimelineQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTimelineQueryIsNotConstructed)
}

func (q GetOrderTimelineQuery) OrderID() kernel.UUID {
	return q.orderID
}
