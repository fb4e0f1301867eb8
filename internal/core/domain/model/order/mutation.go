package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMutationRequestIsNotConstructed = errors.New(
	"MutationRequest must be created via NewForwardMutation, NewConfirmMutation or NewRevertMutation",
)

// MutationKind distinguishes the three status changes the order-data service
// can commit.
type MutationKind string

const (
	MutationForward MutationKind = "forward"
	MutationConfirm MutationKind = "confirm"
	MutationRevert  MutationKind = "revert"
)

func (k MutationKind) String() string {
	return string(k)
}

// MutationRequest is an immutable record of one status change. Its id is the
// idempotency key: committing the same request twice applies it once.
//
// Forward requests carry the grace period they open. Confirm requests keep the
// current status and close the window. Revert requests restore the window's
// previous status and are flagged with IsRevert for audit.
type MutationRequest struct {
	id          kernel.UUID
	orderID     kernel.UUID
	kind        MutationKind
	previous    Status
	target      Status
	gracePeriod GracePeriod
	baseVersion int64
	requestedAt time.Time

	guard guard.ConstructorGuard
}

// NewForwardMutation records the move of o to target, opening gracePeriod.
func NewForwardMutation(o *Order, target Status, gracePeriod GracePeriod, now time.Time) MutationRequest {
	return newMutation(o, MutationForward, target, gracePeriod, now)
}

// NewConfirmMutation records the finalisation of o's open window.
func NewConfirmMutation(o *Order, now time.Time) MutationRequest {
	return newMutation(o, MutationConfirm, o.status, o.gracePeriod.Closed(), now)
}

// NewRevertMutation records the undo of o's last forward transition.
func NewRevertMutation(o *Order, now time.Time) MutationRequest {
	return newMutation(o, MutationRevert, o.gracePeriod.PreviousStatus(), o.gracePeriod.Closed(), now)
}

func newMutation(o *Order, kind MutationKind, target Status, gracePeriod GracePeriod, now time.Time) MutationRequest {
	return MutationRequest{
		id:          kernel.NewUUID(),
		orderID:     o.id,
		kind:        kind,
		previous:    o.status,
		target:      target,
		gracePeriod: gracePeriod,
		baseVersion: o.version,
		requestedAt: now,
		guard:       guard.NewConstructorGuard(),
	}
}

func (m MutationRequest) Validate() error {
	return m.guard.Validate(ErrMutationRequestIsNotConstructed)
}

func (m MutationRequest) ID() kernel.UUID {
	return m.id
}

func (m MutationRequest) OrderID() kernel.UUID {
	return m.orderID
}

func (m MutationRequest) Kind() MutationKind {
	return m.kind
}

// Previous is the order's status when the request was planned.
func (m MutationRequest) Previous() Status {
	return m.previous
}

// Target is the status the order holds once the request is applied.
func (m MutationRequest) Target() Status {
	return m.target
}

func (m MutationRequest) GracePeriod() GracePeriod {
	return m.gracePeriod
}

// BaseVersion is the order version the request was planned against.
func (m MutationRequest) BaseVersion() int64 {
	return m.baseVersion
}

func (m MutationRequest) RequestedAt() time.Time {
	return m.requestedAt
}

func (m MutationRequest) IsRevert() bool {
	return m.kind == MutationRevert
}
