package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentPreference is fixed when the order is placed. Partial orders settle
// 30% in advance and 70% after delivery; full orders settle everything up front.
type PaymentPreference string

const (
	PaymentFull    PaymentPreference = "full"
	PaymentPartial PaymentPreference = "partial"
)

func ParsePaymentPreference(raw string) (PaymentPreference, error) {
	p := PaymentPreference(raw)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p PaymentPreference) Validate() error {
	switch p {
	case PaymentFull, PaymentPartial:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"payment preference is invalid",
			fmt.Errorf("%q is not one of full, partial", string(p)),
		)
	}
}

func (p PaymentPreference) String() string {
	return string(p)
}

// PaymentStatus tracks settlement of the order amount.
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending"
	PaymentPartialPaid PaymentStatus = "partial_paid"
	PaymentFullyPaid   PaymentStatus = "fully_paid"
)

func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	p := PaymentStatus(raw)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p PaymentStatus) Validate() error {
	switch p {
	case PaymentPending, PaymentPartialPaid, PaymentFullyPaid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%q is not one of pending, partial_paid, fully_paid", string(p)),
		)
	}
}

func (p PaymentStatus) String() string {
	return string(p)
}
