package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the canonical lifecycle status of an order. Values are ordered:
// a higher value is further along the lifecycle.
type Status int

const (
	// Unknown marks a raw status the normalizer could not map. Orders in this
	// status are readable but no action is offered on them.
	Unknown Status = iota
	Awaiting
	Accepted
	Dispatched
	Delivered
	FullyPaid
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Awaiting:   "awaiting",
		Accepted:   "accepted",
		Dispatched: "dispatched",
		Delivered:  "delivered",
		FullyPaid:  "fully_paid",
	}
}

// rawStatusAliases maps every recognized producer spelling to its canonical status.
func rawStatusAliases() map[string]Status {
	return map[string]Status{
		"":                   Awaiting,
		"pending":            Awaiting,
		"awaiting":           Awaiting,
		"accepted":           Accepted,
		"processing":         Accepted,
		"dispatched":         Dispatched,
		"out_for_delivery":   Dispatched,
		"ready_for_delivery": Dispatched,
		"delivered":          Delivered,
		"fully_paid":         FullyPaid,
	}
}

// NormalizeStatus maps a raw status string onto the canonical enum. Matching is
// case-insensitive and ignores surrounding whitespace; an empty value means the
// order has not been picked up yet. Unrecognized values yield Unknown.
func NormalizeStatus(raw string) Status {
	if s, ok := rawStatusAliases()[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return Unknown
}

// ParseStatus is the strict form of NormalizeStatus used for operator input.
// A blank value is missing input here, not an order that was never picked up.
func ParseStatus(raw string) (Status, error) {
	if strings.TrimSpace(raw) == "" {
		return Unknown, errs.NewValueIsRequiredError("status")
	}
	s := NormalizeStatus(raw)
	if err := s.Validate(); err != nil {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%q is not a recognized status", raw),
		)
	}
	return s, nil
}

// Validate rejects Unknown and out of range values.
func (s Status) Validate() error {
	if s < Awaiting || s > FullyPaid {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical wire name.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsAfter reports whether s is further along the lifecycle than other.
func (s Status) IsAfter(other Status) bool {
	return s > other
}
