package services

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Selection is one status an operator can pick for an order. IsRevert marks
// the previous status offered while a grace period is open.
type Selection struct {
	Status   order.Status
	IsRevert bool
}

// GracePeriodCoordinator wraps every status change in a reversible window.
//
// Key responsibilities:
//   - Opening a grace period on each forward transition
//   - Computing the statuses selectable for an order at a given instant
//   - Planning confirm and revert requests for an open window
//
// Business rules:
//   - No forward progression is offered while a window is active
//   - Revert is refused once the window has expired
//   - Confirm and revert without an active window fail with ErrNoActiveGracePeriod
//
// Example usage:
//
//	coordinator, _ := NewGracePeriodCoordinator(15 * time.Minute)
//	request, err := coordinator.BeginTransition(o, order.Dispatched, time.Now())
//	if errors.Is(err, order.ErrInvalidTransition) {
//	    // dispatched is not the next status of o
//	    return
//	}
//	// commit request through the order-data service
//
// Only BeginTransition and Select read the window. Confirm, Revert,
// AvailableSelections and TimeRemaining work from the order's stored grace
// period, so the zero value serves them; a zero value refuses to begin a
// transition.
type GracePeriodCoordinator struct {
	window time.Duration
}

// NewGracePeriodCoordinator creates a coordinator opening windows of the given length.
//
// Parameters:
//   - window: grace period length configured by the order-data service (must be positive)
//
// Returns:
//   - GracePeriodCoordinator: A coordinator ready to plan status changes
//   - error: ValueIsInvalidError when window is not positive
func NewGracePeriodCoordinator(window time.Duration) (GracePeriodCoordinator, error) {
	if window <= 0 {
		return GracePeriodCoordinator{}, errs.NewValueIsInvalidErrorWithCause(
			"status update window",
			fmt.Errorf("%s is not a positive duration", window),
		)
	}
	return GracePeriodCoordinator{window: window}, nil
}

func (c GracePeriodCoordinator) Window() time.Duration {
	return c.window
}

// BeginTransition plans the move of o to target and opens a grace period that
// can restore the current status until now + window.
//
// Parameters:
//   - o: The order snapshot (must be valid)
//   - target: The requested status (must be the order's next status)
//   - now: The instant the transition is planned at
//
// Returns:
//   - order.MutationRequest: A forward request carrying the new grace period
//   - error: ErrInvalidTransition when a window is active or target is not the next status,
//     ValueIsInvalidError when the coordinator was not built with a window
func (c GracePeriodCoordinator) BeginTransition(o *order.Order, target order.Status, now time.Time) (order.MutationRequest, error) {
	if err := o.Validate(); err != nil {
		return order.MutationRequest{}, err
	}
	if c.window <= 0 {
		return order.MutationRequest{}, errs.NewValueIsInvalidErrorWithCause(
			"status update window",
			fmt.Errorf("coordinator has no window, use NewGracePeriodCoordinator"),
		)
	}
	if o.GracePeriod().IsActive() {
		return order.MutationRequest{}, fmt.Errorf("%w: a status update window is open until %s",
			order.ErrInvalidTransition, o.GracePeriod().ExpiresAt().Format(time.RFC3339))
	}

	next, ok := o.NextStatus()
	if !ok || target != next {
		return order.MutationRequest{}, fmt.Errorf("%w: %s cannot move to %s",
			order.ErrInvalidTransition, o.Status(), target)
	}

	gp, err := order.OpenGracePeriod(o.Status(), o.PaymentStatus(), target, now.Add(c.window), now)
	if err != nil {
		return order.MutationRequest{}, err
	}

	return order.NewForwardMutation(o, target, gp, now), nil
}

// Select resolves an operator's pick among AvailableSelections into a request.
// Picking the previous status of an open window plans a revert. Picking the
// current status outside a window changes nothing and reports false.
func (c GracePeriodCoordinator) Select(o *order.Order, target order.Status, now time.Time) (order.MutationRequest, bool, error) {
	if err := o.Validate(); err != nil {
		return order.MutationRequest{}, false, err
	}

	gp := o.GracePeriod()
	if gp.IsActive() {
		if target != gp.PreviousStatus() {
			return order.MutationRequest{}, false, fmt.Errorf("%w: only %s can be selected while a window is open",
				order.ErrInvalidTransition, gp.PreviousStatus())
		}
		request, err := c.Revert(o, now)
		if err != nil {
			return order.MutationRequest{}, false, err
		}
		return request, true, nil
	}

	if target == o.Status() && o.Status().Validate() == nil {
		return order.MutationRequest{}, false, nil
	}

	request, err := c.BeginTransition(o, target, now)
	if err != nil {
		return order.MutationRequest{}, false, err
	}
	return request, true, nil
}

// AvailableSelections lists the statuses an operator can pick for o at now.
//
// Returns:
//   - the previous status, flagged as revert, while a window is open
//   - nothing once an active window has expired and awaits finalization
//   - the current status and, if any, the next status otherwise
//   - nothing for orders whose status could not be normalized
func (c GracePeriodCoordinator) AvailableSelections(o *order.Order, now time.Time) []Selection {
	if o.Validate() != nil || o.Status().Validate() != nil {
		return nil
	}

	gp := o.GracePeriod()
	if gp.IsActive() {
		if gp.IsExpired(now) {
			return nil
		}
		return []Selection{{Status: gp.PreviousStatus(), IsRevert: true}}
	}

	selections := []Selection{{Status: o.Status()}}
	if next, ok := o.NextStatus(); ok {
		selections = append(selections, Selection{Status: next})
	}
	return selections
}

// Confirm plans the finalization of o's active window. Confirming an expired
// window is allowed and is what the order-data service does on expiry.
func (c GracePeriodCoordinator) Confirm(o *order.Order, now time.Time) (order.MutationRequest, error) {
	if err := o.Validate(); err != nil {
		return order.MutationRequest{}, err
	}
	if !o.GracePeriod().IsActive() {
		return order.MutationRequest{}, order.ErrNoActiveGracePeriod
	}
	return order.NewConfirmMutation(o, now), nil
}

// Revert plans the restoration of the status o held before its last forward
// transition.
func (c GracePeriodCoordinator) Revert(o *order.Order, now time.Time) (order.MutationRequest, error) {
	if err := o.Validate(); err != nil {
		return order.MutationRequest{}, err
	}
	gp := o.GracePeriod()
	if !gp.IsActive() {
		return order.MutationRequest{}, order.ErrNoActiveGracePeriod
	}
	if gp.IsExpired(now) {
		return order.MutationRequest{}, fmt.Errorf("%w: window closed at %s",
			order.ErrGracePeriodExpired, gp.ExpiresAt().Format(time.RFC3339))
	}
	return order.NewRevertMutation(o, now), nil
}

// TimeRemaining is max(0, expiresAt - now) for an active window and 0 otherwise.
func (c GracePeriodCoordinator) TimeRemaining(o *order.Order, now time.Time) time.Duration {
	return o.GracePeriod().TimeRemaining(now)
}
