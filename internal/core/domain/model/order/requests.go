package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrEscalationRequestIsNotConstructed = errors.New(
	"escalation requests must be created via their New... constructors",
)

func requireText(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: %s must not be blank", ErrMissingRequiredReason, field)
	}
	return trimmed, nil
}

// EscalationRequest moves an order into the escalated track after its vendor
// declined or failed to act.
type EscalationRequest struct {
	reason      string
	baseVersion int64
	guard       guard.ConstructorGuard
}

func NewEscalationRequest(reason string, baseVersion int64) (EscalationRequest, error) {
	r, err := requireText("reason", reason)
	if err != nil {
		return EscalationRequest{}, err
	}
	return EscalationRequest{reason: r, baseVersion: baseVersion, guard: guard.NewConstructorGuard()}, nil
}

func (r EscalationRequest) Validate() error {
	return r.guard.Validate(ErrEscalationRequestIsNotConstructed)
}

func (r EscalationRequest) Reason() string {
	return r.reason
}

func (r EscalationRequest) BaseVersion() int64 {
	return r.baseVersion
}

// ReassignRequest routes an escalated order to another vendor.
type ReassignRequest struct {
	vendorID    kernel.UUID
	reason      string
	baseVersion int64
	guard       guard.ConstructorGuard
}

func NewReassignRequest(vendorID kernel.UUID, reason string, baseVersion int64) (ReassignRequest, error) {
	if err := vendorID.Validate(); err != nil {
		return ReassignRequest{}, err
	}
	r, err := requireText("reason", reason)
	if err != nil {
		return ReassignRequest{}, err
	}
	return ReassignRequest{
		vendorID:    vendorID,
		reason:      r,
		baseVersion: baseVersion,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (r ReassignRequest) Validate() error {
	return r.guard.Validate(ErrEscalationRequestIsNotConstructed)
}

func (r ReassignRequest) VendorID() kernel.UUID {
	return r.vendorID
}

func (r ReassignRequest) Reason() string {
	return r.reason
}

func (r ReassignRequest) BaseVersion() int64 {
	return r.baseVersion
}

// WarehouseFulfillmentRequest resolves an escalation by shipping from the
// central warehouse instead of a vendor.
type WarehouseFulfillmentRequest struct {
	note           string
	trackingNumber string
	baseVersion    int64
	guard          guard.ConstructorGuard
}

func NewWarehouseFulfillmentRequest(note, trackingNumber string, baseVersion int64) (WarehouseFulfillmentRequest, error) {
	n, err := requireText("note", note)
	if err != nil {
		return WarehouseFulfillmentRequest{}, err
	}
	return WarehouseFulfillmentRequest{
		note:           n,
		trackingNumber: strings.TrimSpace(trackingNumber),
		baseVersion:    baseVersion,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (r WarehouseFulfillmentRequest) Validate() error {
	return r.guard.Validate(ErrEscalationRequestIsNotConstructed)
}

func (r WarehouseFulfillmentRequest) Note() string {
	return r.note
}

func (r WarehouseFulfillmentRequest) TrackingNumber() string {
	return r.trackingNumber
}

func (r WarehouseFulfillmentRequest) BaseVersion() int64 {
	return r.baseVersion
}

// VendorRevertRequest resolves an escalation by handing the order back to
// the vendor that already holds it.
type VendorRevertRequest struct {
	reason      string
	baseVersion int64
	guard       guard.ConstructorGuard
}

func NewVendorRevertRequest(reason string, baseVersion int64) (VendorRevertRequest, error) {
	r, err := requireText("reason", reason)
	if err != nil {
		return VendorRevertRequest{}, err
	}
	return VendorRevertRequest{reason: r, baseVersion: baseVersion, guard: guard.NewConstructorGuard()}, nil
}

func (r VendorRevertRequest) Validate() error {
	return r.guard.Validate(ErrEscalationRequestIsNotConstructed)
}

func (r VendorRevertRequest) Reason() string {
	return r.reason
}

func (r VendorRevertRequest) BaseVersion() int64 {
	return r.baseVersion
}
