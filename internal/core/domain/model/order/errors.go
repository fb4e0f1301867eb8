package order

import "errors"

// Failures of the fulfillment rules. Callers match them with errors.Is; the
// returned errors wrap these sentinels with the offending values.
var (
	// ErrInvalidTransition is returned when the requested target is not among
	// the selections currently offered for the order.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNoActiveGracePeriod is returned by confirm and revert when no status
	// update window is open.
	ErrNoActiveGracePeriod = errors.New("no active grace period")

	// ErrGracePeriodExpired is returned by revert once the window has elapsed.
	ErrGracePeriodExpired = errors.New("grace period expired")

	ErrIneligibleForReassignment     = errors.New("order is not eligible for reassignment")
	ErrIneligibleForEscalationAction = errors.New("order is not eligible for this escalation action")

	// ErrMissingRequiredReason is returned when a reason or note is blank.
	ErrMissingRequiredReason = errors.New("a reason is required")

	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)
