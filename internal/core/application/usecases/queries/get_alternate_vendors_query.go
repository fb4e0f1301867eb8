package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAlternateVendorsQueryIsNotConstructed = errors.New(
	"GetAlternateVendorsQuery must be created via NewGetAlternateVendorsQuery constructor",
)

// GetAlternateVendorsQuery lists the vendors an order can be reassigned to.
type GetAlternateVendorsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAlternateVendorsQuery(orderID kernel.UUID) (GetAlternateVendorsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetAlternateVendorsQuery{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	return GetAlternateVendorsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAlternateVendorsQuery) Validate() error {
	return q.guard.Validate(ErrGetAlternateVendorsQueryIsNotConstructed)
}

func (q GetAlternateVendorsQuery) OrderID() kernel.UUID {
	return q.orderID
}

type AlternateVendor struct {
	ID      kernel.UUID
	Name    string
	Regions []string

	// EscalationCount is how many orders were escalated away from the vendor.
	EscalationCount int64
}
