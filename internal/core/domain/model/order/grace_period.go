package order

import (
	"fmt"
	"time"
)

// GracePeriod is the window after a forward transition during which the
// previous status can be restored. The zero value is a closed window.
//
// Invariant: an active window holds a previous status different from the
// order's current status, and its deadline was in the future when opened.
type GracePeriod struct {
	isActive              bool
	previousStatus        Status
	previousPaymentStatus PaymentStatus
	expiresAt             time.Time
}

// OpenGracePeriod starts a window that lets current be undone back to previous.
func OpenGracePeriod(
	previous Status,
	previousPayment PaymentStatus,
	current Status,
	expiresAt time.Time,
	now time.Time,
) (GracePeriod, error) {
	if previous == current {
		return GracePeriod{}, fmt.Errorf("%w: grace period cannot restore the current status %s",
			ErrInvalidTransition, current)
	}
	if !expiresAt.After(now) {
		return GracePeriod{}, fmt.Errorf("%w: grace period must expire after %s",
			ErrInvalidTransition, now.Format(time.RFC3339))
	}
	return GracePeriod{
		isActive:              true,
		previousStatus:        previous,
		previousPaymentStatus: previousPayment,
		expiresAt:             expiresAt,
	}, nil
}

// RestoreGracePeriod rebuilds a window from persistence without re-checking
// the opening invariant, which only held at creation time.
func RestoreGracePeriod(isActive bool, previous Status, previousPayment PaymentStatus, expiresAt time.Time) GracePeriod {
	return GracePeriod{
		isActive:              isActive,
		previousStatus:        previous,
		previousPaymentStatus: previousPayment,
		expiresAt:             expiresAt,
	}
}

func (g GracePeriod) IsActive() bool {
	return g.isActive
}

func (g GracePeriod) PreviousStatus() Status {
	return g.previousStatus
}

func (g GracePeriod) PreviousPaymentStatus() PaymentStatus {
	return g.previousPaymentStatus
}

func (g GracePeriod) ExpiresAt() time.Time {
	return g.expiresAt
}

// IsExpired reports whether now has reached the deadline.
func (g GracePeriod) IsExpired(now time.Time) bool {
	return !now.Before(g.expiresAt)
}

// IsOpen reports whether the window is active and not yet expired.
func (g GracePeriod) IsOpen(now time.Time) bool {
	return g.isActive && !g.IsExpired(now)
}

// TimeRemaining is max(0, expiresAt - now) for active windows and 0 otherwise.
func (g GracePeriod) TimeRemaining(now time.Time) time.Duration {
	if !g.isActive {
		return 0
	}
	if remaining := g.expiresAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

// Closed returns a copy of the window with isActive cleared. The previous
// status and deadline are kept for audit.
func (g GracePeriod) Closed() GracePeriod {
	g.isActive = false
	return g
}
