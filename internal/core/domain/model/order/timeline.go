package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// ChangeKind labels a committed change in the order timeline and in the
// events published for it.
type ChangeKind string

const (
	ChangeStatusForward          ChangeKind = "status_forward"
	ChangeStatusConfirmed        ChangeKind = "status_confirmed"
	ChangeStatusReverted         ChangeKind = "status_reverted"
	ChangeEscalated              ChangeKind = "escalated"
	ChangeFulfilledFromWarehouse ChangeKind = "fulfilled_from_warehouse"
	ChangeRevertedToVendor       ChangeKind = "reverted_to_vendor"
	ChangeReassigned             ChangeKind = "reassigned"
)

// ChangeKindOf maps a mutation kind onto its timeline label.
func ChangeKindOf(kind MutationKind) ChangeKind {
	switch kind {
	case MutationConfirm:
		return ChangeStatusConfirmed
	case MutationRevert:
		return ChangeStatusReverted
	default:
		return ChangeStatusForward
	}
}

// TimelineEntry is one audited change of an order.
type TimelineEntry struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	Kind           ChangeKind
	Status         Status
	PreviousStatus Status
	IsRevert       bool
	Note           string
	OccurredAt     time.Time
}

// NewMutationTimelineEntry records m after it was applied to o. The entry
// reuses the request id so a retried commit can be detected.
func NewMutationTimelineEntry(o *Order, m MutationRequest, at time.Time) TimelineEntry {
	return TimelineEntry{
		ID:             m.ID(),
		OrderID:        o.ID(),
		Kind:           ChangeKindOf(m.Kind()),
		Status:         o.Status(),
		PreviousStatus: m.Previous(),
		IsRevert:       m.IsRevert(),
		OccurredAt:     at,
	}
}

// NewTimelineEntry records a change that is not a status mutation.
func NewTimelineEntry(o *Order, kind ChangeKind, previous Status, note string, at time.Time) TimelineEntry {
	return TimelineEntry{
		ID:             kernel.NewUUID(),
		OrderID:        o.ID(),
		Kind:           kind,
		Status:         o.Status(),
		PreviousStatus: previous,
		Note:           note,
		OccurredAt:     at,
	}
}

// ChangedEvent is published after a change to an order is committed.
type ChangedEvent struct {
	OrderID          kernel.UUID
	Kind             ChangeKind
	Status           Status
	PreviousStatus   Status
	IsRevert         bool
	Escalated        bool
	AssignedVendorID kernel.UUID
	Version          int64
	OccurredAt       time.Time
}

func NewChangedEvent(o *Order, entry TimelineEntry) ChangedEvent {
	return ChangedEvent{
		OrderID:          o.ID(),
		Kind:             entry.Kind,
		Status:           o.Status(),
		PreviousStatus:   entry.PreviousStatus,
		IsRevert:         entry.IsRevert,
		Escalated:        o.IsEscalated(),
		AssignedVendorID: o.AssignedVendorID(),
		Version:          o.Version(),
		OccurredAt:       entry.OccurredAt,
	}
}
