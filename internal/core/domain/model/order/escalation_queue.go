package order

import (
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page selects one slice of a listing. Numbers start at 1.
type Page struct {
	number int
	size   int
}

// NewPage validates a page request. Zero values select the first page and
// DefaultPageSize.
func NewPage(number, size int) (Page, error) {
	if number == 0 {
		number = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if number < 1 {
		return Page{}, errs.NewValueIsInvalidErrorWithCause("page", fmt.Errorf("%d is below 1", number))
	}
	if size < 1 || size > MaxPageSize {
		return Page{}, errs.NewValueIsInvalidErrorWithCause(
			"page size",
			fmt.Errorf("%d is outside 1..%d", size, MaxPageSize),
		)
	}
	return Page{number: number, size: size}, nil
}

func (p Page) Number() int {
	if p.number < 1 {
		return 1
	}
	return p.number
}

func (p Page) Size() int {
	if p.size < 1 {
		return DefaultPageSize
	}
	return p.size
}

func (p Page) Offset() int {
	return (p.Number() - 1) * p.Size()
}

// EscalatedOrderFilter narrows the escalation queue. An Unknown status lists
// every escalated order whose workflow is not completed.
type EscalatedOrderFilter struct {
	Status Status
}

// EscalatedOrder is one entry of the escalation queue. EscalatedAt is the time
// of the latest escalation in the order's timeline, zero if none was recorded.
type EscalatedOrder struct {
	Order       *Order
	EscalatedAt time.Time
}

// EscalatedOrders is one page of the escalation queue, most recent escalation first.
type EscalatedOrders struct {
	Items []EscalatedOrder
	Total int64
	Page  Page
}
