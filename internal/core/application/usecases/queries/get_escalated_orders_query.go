package queries

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetEscalatedOrdersQueryIsNotConstructed = errors.New(
	"GetEscalatedOrdersQuery must be created via NewGetEscalatedOrdersQuery constructor",
)

// GetEscalatedOrdersQuery lists the escalation queue operators work from.
//
// Example:
//
//	query, err := NewGetEscalatedOrdersQuery("", 1, 20)
//	if err != nil {
//	    return err
//	}
//	queue, err := handler.Handle(ctx, query)
type GetEscalatedOrdersQuery struct {
	filter order.EscalatedOrderFilter
	page   order.Page

	guard guard.ConstructorGuard
}

// NewGetEscalatedOrdersQuery accepts any recognized status spelling. A blank
// status lists every escalated order whose workflow is not completed; zero
// page values select the first page of order.DefaultPageSize entries.
func NewGetEscalatedOrdersQuery(status string, pageNumber, pageSize int) (GetEscalatedOrdersQuery, error) {
	var filter order.EscalatedOrderFilter
	if strings.TrimSpace(status) != "" {
		s, err := order.ParseStatus(status)
		if err != nil {
			return GetEscalatedOrdersQuery{}, err
		}
		filter.Status = s
	}

	page, err := order.NewPage(pageNumber, pageSize)
	if err != nil {
		return GetEscalatedOrdersQuery{}, err
	}

	return GetEscalatedOrdersQuery{filter: filter, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q GetEscalatedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetEscalatedOrdersQueryIsNotConstructed)
}

func (q GetEscalatedOrdersQuery) Filter() order.EscalatedOrderFilter {
	return q.filter
}

func (q GetEscalatedOrdersQuery) Page() order.Page {
	return q.page
}

// EscalatedOrderSummary is one row of the escalation queue with the actions
// the queue can offer without opening the order.
type EscalatedOrderSummary struct {
	OrderID          kernel.UUID
	Status           order.Status
	PaymentStatus    order.PaymentStatus
	AssignedVendorID kernel.UUID
	Region           string
	EscalationReason string
	EscalatedAt      time.Time
	Version          int64

	CanReassign        bool
	CanEscalateFulfill bool
	CanEscalateRevert  bool
}

type EscalatedOrderQueue struct {
	Items      []EscalatedOrderSummary
	Total      int64
	PageNumber int
	PageSize   int
}
