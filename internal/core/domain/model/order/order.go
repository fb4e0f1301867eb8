package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Order is the aggregate root of the fulfillment lifecycle. It is a snapshot
// of the record owned by the order-data service; the core reads it to plan
// changes and the order-data service applies those changes through the
// appliers below.
//
// Order follows these invariants:
//   - Must have a valid identifier and an assigned vendor
//   - Payment preference never changes after creation
//   - An active grace period never restores the current status
//   - payment status fully_paid is reached only together with the terminal status
type Order struct {
	id                kernel.UUID
	rawStatus         string
	status            Status
	paymentPreference PaymentPreference
	paymentStatus     PaymentStatus
	escalated         bool
	escalationReason  string
	assignedVendorID  kernel.UUID
	region            string
	notes             []string
	trackingNumber    string
	gracePeriod       GracePeriod

	// version is the optimistic concurrency token, incremented by every applier.
	version int64

	guard guard.ConstructorGuard
}

// NewOrder creates an order awaiting acceptance by vendorID.
func NewOrder(id, vendorID kernel.UUID, preference PaymentPreference, region string) (*Order, error) {
	o := &Order{
		rawStatus:     Awaiting.String(),
		status:        Awaiting,
		paymentStatus: PaymentPending,
		region:        strings.TrimSpace(region),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setAssignedVendorID(vendorID),
		o.setPaymentPreference(preference),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	ID                kernel.UUID
	RawStatus         string
	PaymentPreference PaymentPreference
	PaymentStatus     PaymentStatus
	Escalated         bool
	EscalationReason  string
	AssignedVendorID  kernel.UUID
	Region            string
	Notes             []string
	TrackingNumber    string
	GracePeriod       GracePeriod
	Version           int64
}

// RestoreOrder rebuilds an order from persistence. The raw status is kept as
// stored and normalized; an unrecognized value restores as Unknown so the
// order stays readable while every action on it is refused.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		rawStatus:        p.RawStatus,
		status:           NormalizeStatus(p.RawStatus),
		escalated:        p.Escalated,
		escalationReason: p.EscalationReason,
		region:           strings.TrimSpace(p.Region),
		notes:            append([]string(nil), p.Notes...),
		trackingNumber:   p.TrackingNumber,
		gracePeriod:      p.GracePeriod,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setAssignedVendorID(p.AssignedVendorID),
		o.setPaymentPreference(p.PaymentPreference),
		o.setPaymentStatus(p.PaymentStatus),
		o.setVersion(p.Version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// RawStatus is the status exactly as the producer stored it.
func (o *Order) RawStatus() string {
	return o.rawStatus
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PaymentPreference() PaymentPreference {
	return o.paymentPreference
}

func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

func (o *Order) IsEscalated() bool {
	return o.escalated
}

func (o *Order) EscalationReason() string {
	return o.escalationReason
}

func (o *Order) AssignedVendorID() kernel.UUID {
	return o.assignedVendorID
}

func (o *Order) Region() string {
	return o.region
}

// Notes returns a copy of the operator notes attached to the order.
func (o *Order) Notes() []string {
	return append([]string(nil), o.notes...)
}

func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

func (o *Order) GracePeriod() GracePeriod {
	return o.gracePeriod
}

func (o *Order) Version() int64 {
	return o.version
}

// NextStatus is the planner's answer for this order.
func (o *Order) NextStatus() (Status, bool) {
	return NextStatus(o.status, o.paymentPreference, o.paymentStatus)
}

// WorkflowCompleted reports whether the order reached its terminal status.
func (o *Order) WorkflowCompleted() bool {
	return WorkflowCompleted(o.status, o.paymentPreference)
}

// CheckEscalatable reports whether the vendor track can be escalated:
// the order is not escalated yet and its lifecycle is still running.
func (o *Order) CheckEscalatable() error {
	switch {
	case o.escalated:
		return fmt.Errorf("%w: order is already escalated", ErrIneligibleForEscalationAction)
	case o.status.Validate() != nil:
		return fmt.Errorf("%w: status %q is not recognized", ErrIneligibleForEscalationAction, o.rawStatus)
	case o.WorkflowCompleted():
		return fmt.Errorf("%w: workflow is completed", ErrIneligibleForEscalationAction)
	}
	return nil
}

// CheckReassignable reports whether the order can be routed to another
// vendor: it must be escalated and still awaiting acceptance.
func (o *Order) CheckReassignable() error {
	if !o.escalated {
		return fmt.Errorf("%w: order is not escalated", ErrIneligibleForReassignment)
	}
	if o.status != Awaiting {
		return fmt.Errorf("%w: status %s has progressed past %s", ErrIneligibleForReassignment, o.status, Awaiting)
	}
	return nil
}

// CheckWarehouseFulfillable reports whether the warehouse can take over the
// order: it must be escalated and still awaiting acceptance.
func (o *Order) CheckWarehouseFulfillable() error {
	if !o.escalated {
		return fmt.Errorf("%w: order is not escalated", ErrIneligibleForEscalationAction)
	}
	if o.status != Awaiting {
		return fmt.Errorf("%w: status %s has progressed past %s", ErrIneligibleForEscalationAction, o.status, Awaiting)
	}
	return nil
}

// CheckVendorRevertable reports whether the escalation can be withdrawn in
// favour of the current vendor: the order must be escalated and unfinished.
func (o *Order) CheckVendorRevertable() error {
	switch {
	case !o.escalated:
		return fmt.Errorf("%w: order is not escalated", ErrIneligibleForEscalationAction)
	case o.status.Validate() != nil:
		return fmt.Errorf("%w: status %q is not recognized", ErrIneligibleForEscalationAction, o.rawStatus)
	case o.WorkflowCompleted():
		return fmt.Errorf("%w: workflow is completed", ErrIneligibleForEscalationAction)
	}
	return nil
}

// Apply commits a status mutation planned against this order. It re-checks
// every rule the request was planned with, so a stale or forged request is
// rejected instead of corrupting history.
func (o *Order) Apply(m MutationRequest, now time.Time) error {
	if err := errors.Join(o.Validate(), m.Validate()); err != nil {
		return err
	}
	if !m.OrderID().IsEqual(o.id) {
		return errs.NewValueIsInvalidErrorWithCause(
			"mutation request is invalid",
			fmt.Errorf("request for order %s applied to order %s", m.OrderID(), o.id),
		)
	}
	if err := o.checkVersion(m.BaseVersion()); err != nil {
		return err
	}

	switch m.Kind() {
	case MutationForward:
		if err := o.applyForward(m); err != nil {
			return err
		}
	case MutationConfirm:
		if !o.gracePeriod.IsActive() {
			return ErrNoActiveGracePeriod
		}
		o.gracePeriod = o.gracePeriod.Closed()
	case MutationRevert:
		if err := o.applyRevert(m, now); err != nil {
			return err
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"mutation request is invalid",
			fmt.Errorf("%q is not a mutation kind", m.Kind()),
		)
	}

	o.version++
	return nil
}

func (o *Order) applyForward(m MutationRequest) error {
	if o.gracePeriod.IsActive() {
		return fmt.Errorf("%w: a status update window is still open", ErrInvalidTransition)
	}
	next, ok := o.NextStatus()
	if !ok || m.Previous() != o.status || m.Target() != next {
		return fmt.Errorf("%w: %s cannot move to %s", ErrInvalidTransition, o.status, m.Target())
	}
	gp := m.GracePeriod()
	if !gp.IsActive() || gp.PreviousStatus() != o.status {
		return fmt.Errorf("%w: forward transition must open a grace period from %s", ErrInvalidTransition, o.status)
	}

	o.paymentStatus = paymentStatusOnReaching(m.Target(), o.paymentPreference, o.paymentStatus)
	o.setStatus(m.Target())
	o.gracePeriod = gp
	return nil
}

func (o *Order) applyRevert(m MutationRequest, now time.Time) error {
	if !o.gracePeriod.IsActive() {
		return ErrNoActiveGracePeriod
	}
	if o.gracePeriod.IsExpired(now) {
		return fmt.Errorf("%w: window closed at %s", ErrGracePeriodExpired, o.gracePeriod.ExpiresAt().Format(time.RFC3339))
	}
	if m.Target() != o.gracePeriod.PreviousStatus() {
		return fmt.Errorf("%w: revert must restore %s", ErrInvalidTransition, o.gracePeriod.PreviousStatus())
	}

	o.setStatus(o.gracePeriod.PreviousStatus())
	o.paymentStatus = o.gracePeriod.PreviousPaymentStatus()
	o.gracePeriod = o.gracePeriod.Closed()
	return nil
}

// Escalate records that the vendor declined or failed to act on the order.
func (o *Order) Escalate(r EscalationRequest) error {
	if err := errors.Join(o.Validate(), r.Validate()); err != nil {
		return err
	}
	if err := o.checkVersion(r.BaseVersion()); err != nil {
		return err
	}
	if err := o.CheckEscalatable(); err != nil {
		return err
	}

	o.escalated = true
	o.escalationReason = r.Reason()
	o.version++
	return nil
}

// FulfillFromWarehouse resolves the escalation by shipping from the central
// warehouse. Warehouse fulfillment stands in for vendor acceptance, so the
// order moves straight to accepted without opening a grace period.
func (o *Order) FulfillFromWarehouse(r WarehouseFulfillmentRequest) error {
	if err := errors.Join(o.Validate(), r.Validate()); err != nil {
		return err
	}
	if err := o.checkVersion(r.BaseVersion()); err != nil {
		return err
	}
	if err := o.CheckWarehouseFulfillable(); err != nil {
		return err
	}

	o.escalated = false
	o.escalationReason = ""
	o.setStatus(Accepted)
	o.notes = append(o.notes, "[Warehouse fulfillment] "+r.Note())
	if r.TrackingNumber() != "" {
		o.trackingNumber = r.TrackingNumber()
	}
	o.version++
	return nil
}

// RevertToVendor withdraws the escalation and leaves the order with the
// vendor it is assigned to. The status is untouched.
func (o *Order) RevertToVendor(r VendorRevertRequest) error {
	if err := errors.Join(o.Validate(), r.Validate()); err != nil {
		return err
	}
	if err := o.checkVersion(r.BaseVersion()); err != nil {
		return err
	}
	if err := o.CheckVendorRevertable(); err != nil {
		return err
	}

	o.escalated = false
	o.escalationReason = ""
	o.notes = append(o.notes, "[Reverted to vendor] "+r.Reason())
	o.version++
	return nil
}

// Reassign routes the order to another vendor. The order stays escalated and
// keeps its status: reassignment changes routing, it does not resolve anything.
func (o *Order) Reassign(r ReassignRequest) error {
	if err := errors.Join(o.Validate(), r.Validate()); err != nil {
		return err
	}
	if err := o.checkVersion(r.BaseVersion()); err != nil {
		return err
	}
	if err := o.CheckReassignable(); err != nil {
		return err
	}
	if r.VendorID().IsEqual(o.assignedVendorID) {
		return fmt.Errorf("%w: order is already assigned to vendor %s", ErrIneligibleForReassignment, r.VendorID())
	}

	o.assignedVendorID = r.VendorID()
	o.notes = append(o.notes, "[Reassigned] "+r.Reason())
	o.version++
	return nil
}

func (o *Order) checkVersion(base int64) error {
	if base != o.version {
		return errs.NewVersionConflictError("order", o.id.String(), base)
	}
	return nil
}

func (o *Order) setStatus(s Status) {
	o.status = s
	o.rawStatus = s.String()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setAssignedVendorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("assigned vendor", err)
	}
	o.assignedVendorID = id
	return nil
}

func (o *Order) setPaymentPreference(p PaymentPreference) error {
	if err := p.Validate(); err != nil {
		return err
	}
	o.paymentPreference = p
	return nil
}

func (o *Order) setPaymentStatus(p PaymentStatus) error {
	if err := p.Validate(); err != nil {
		return err
	}
	o.paymentStatus = p
	return nil
}

func (o *Order) setVersion(v int64) error {
	if v < 0 {
		return errs.NewValueIsInvalidErrorWithCause("version is invalid", fmt.Errorf("%d is negative", v))
	}
	o.version = v
	return nil
}
