package commands

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

func validateOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	return nil
}

// requireReason fails fast on blank operator input so no snapshot is fetched
// for a request that can never succeed.
func requireReason(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s must not be blank", order.ErrMissingRequiredReason, field)
	}
	return trimmed, nil
}
