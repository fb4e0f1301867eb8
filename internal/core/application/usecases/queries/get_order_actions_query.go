package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderActionsQueryIsNotConstructed = errors.New(
	"GetOrderActionsQuery must be created via NewGetOrderActionsQuery constructor",
)

// GetOrderActionsQuery builds the operator read model of one order: what it
// is, what can be selected, and which escalation actions are open.
//
// Example:
//
//	query, _ := NewGetOrderActionsQuery(orderID)
//	actions, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, s := range actions.AvailableSelections {
//	    fmt.Println(s.Status, s.IsRevert)
//	}
type GetOrderActionsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderActionsQuery(orderID kernel.UUID) (GetOrderActionsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderActionsQuery{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	return GetOrderActionsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderActionsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderActionsQueryIsNotConstructed)
}

func (q GetOrderActionsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderActions is the read model the presentation layer renders without
// re-deriving any business rule.
type OrderActions struct {
	OrderID           kernel.UUID
	CurrentStatus     order.Status
	RawStatus         string
	PaymentPreference order.PaymentPreference
	PaymentStatus     order.PaymentStatus
	AssignedVendorID  kernel.UUID
	Region            string
	Escalated         bool
	EscalationReason  string
	Notes             []string
	TrackingNumber    string
	Version           int64

	AvailableSelections []services.Selection
	WorkflowCompleted   bool

	// IsGracePeriodActive is false once the window expired, even before the
	// order-data service finalizes it.
	IsGracePeriodActive bool
	PreviousStatus      *order.Status
	ExpiresAt           *time.Time
	TimeRemaining       time.Duration

	CanEscalate        bool
	CanReassign        bool
	CanEscalateFulfill bool
	CanEscalateRevert  bool
}

// NewOrderActions derives the read model of o at now.
func NewOrderActions(o *order.Order, now time.Time) OrderActions {
	coordinator := services.GracePeriodCoordinator{}
	controller := services.NewEscalationController()
	gp := o.GracePeriod()

	actions := OrderActions{
		OrderID:           o.ID(),
		CurrentStatus:     o.Status(),
		RawStatus:         o.RawStatus(),
		PaymentPreference: o.PaymentPreference(),
		PaymentStatus:     o.PaymentStatus(),
		AssignedVendorID:  o.AssignedVendorID(),
		Region:            o.Region(),
		Escalated:         o.IsEscalated(),
		EscalationReason:  o.EscalationReason(),
		Notes:             o.Notes(),
		TrackingNumber:    o.TrackingNumber(),
		Version:           o.Version(),

		AvailableSelections: coordinator.AvailableSelections(o, now),
		WorkflowCompleted:   o.WorkflowCompleted(),

		IsGracePeriodActive: gp.IsOpen(now),
		TimeRemaining:       coordinator.TimeRemaining(o, now),

		CanEscalate:        controller.CanEscalate(o),
		CanReassign:        controller.CanReassign(o),
		CanEscalateFulfill: controller.CanFulfillFromWarehouse(o),
		CanEscalateRevert:  controller.CanRevertToVendor(o),
	}

	if gp.IsActive() {
		previous := gp.PreviousStatus()
		expiresAt := gp.ExpiresAt()
		actions.PreviousStatus = &previous
		actions.ExpiresAt = &expiresAt
	}

	return actions
}
