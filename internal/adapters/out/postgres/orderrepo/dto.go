// Package orderrepo persists order aggregates and their timeline with GORM.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO is the orders table row. The raw status is stored exactly as the
// producer wrote it; normalization happens on the way into the domain.
// CanonicalStatus and WorkflowCompleted are derived on write for queue
// queries and never read back.
type OrderDTO struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	RawStatus         string         `gorm:"type:varchar(64);not null;default:''"`
	CanonicalStatus   string         `gorm:"type:varchar(32);not null;default:'unknown';index"`
	WorkflowCompleted bool           `gorm:"not null;default:false;index"`
	PaymentPreference string         `gorm:"type:varchar(16);not null"`
	PaymentStatus     string         `gorm:"type:varchar(16);not null"`
	Escalated         bool           `gorm:"not null;default:false;index"`
	EscalationReason  string         `gorm:"type:text"`
	AssignedVendorID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Region            string         `gorm:"type:varchar(128);index"`
	Notes             pq.StringArray `gorm:"type:text[]"`
	TrackingNumber    string         `gorm:"type:varchar(128)"`
	GracePeriod       GracePeriodDTO `gorm:"embedded;embeddedPrefix:grace_"`
	Version           int64          `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// GracePeriodDTO is embedded in the orders row with the grace_ prefix.
type GracePeriodDTO struct {
	IsActive              bool       `gorm:"not null;default:false;index"`
	PreviousStatus        string     `gorm:"type:varchar(32)"`
	PreviousPaymentStatus string     `gorm:"type:varchar(16)"`
	ExpiresAt             *time.Time `gorm:"index"`
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                o.ID().Bytes(),
		RawStatus:         o.RawStatus(),
		CanonicalStatus:   o.Status().String(),
		WorkflowCompleted: o.WorkflowCompleted(),
		PaymentPreference: o.PaymentPreference().String(),
		PaymentStatus:     o.PaymentStatus().String(),
		Escalated:         o.IsEscalated(),
		EscalationReason:  o.EscalationReason(),
		AssignedVendorID:  o.AssignedVendorID().Bytes(),
		Region:            o.Region(),
		Notes:             pq.StringArray(o.Notes()),
		TrackingNumber:    o.TrackingNumber(),
		Version:           o.Version(),
	}

	gp := o.GracePeriod()
	if !gp.ExpiresAt().IsZero() {
		expiresAt := gp.ExpiresAt().UTC()
		dto.GracePeriod = GracePeriodDTO{
			IsActive:              gp.IsActive(),
			PreviousStatus:        gp.PreviousStatus().String(),
			PreviousPaymentStatus: gp.PreviousPaymentStatus().String(),
			ExpiresAt:             &expiresAt,
		}
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.AssignedVendorID[:])
	if err != nil {
		return nil, err
	}

	var gp order.GracePeriod
	if dto.GracePeriod.ExpiresAt != nil {
		gp = order.RestoreGracePeriod(
			dto.GracePeriod.IsActive,
			order.NormalizeStatus(dto.GracePeriod.PreviousStatus),
			order.PaymentStatus(dto.GracePeriod.PreviousPaymentStatus),
			dto.GracePeriod.ExpiresAt.UTC(),
		)
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                id,
		RawStatus:         dto.RawStatus,
		PaymentPreference: order.PaymentPreference(dto.PaymentPreference),
		PaymentStatus:     order.PaymentStatus(dto.PaymentStatus),
		Escalated:         dto.Escalated,
		EscalationReason:  dto.EscalationReason,
		AssignedVendorID:  vendorID,
		Region:            dto.Region,
		Notes:             dto.Notes,
		TrackingNumber:    dto.TrackingNumber,
		GracePeriod:       gp,
		Version:           dto.Version,
	})
}

// OrderMutationDTO is one order_mutations row: a committed change of an
// order. Its primary key is the mutation request id for status changes, which
// makes retried commits detectable.
type OrderMutationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind           string    `gorm:"type:varchar(32);not null"`
	Status         string    `gorm:"type:varchar(32);not null"`
	PreviousStatus string    `gorm:"type:varchar(32);not null"`
	IsRevert       bool      `gorm:"not null;default:false"`
	Note           string    `gorm:"type:text"`
	OccurredAt     time.Time `gorm:"not null;index"`
}

func (OrderMutationDTO) TableName() string {
	return "order_mutations"
}

func mutationFromDomain(e order.TimelineEntry) OrderMutationDTO {
	return OrderMutationDTO{
		ID:             e.ID.Bytes(),
		OrderID:        e.OrderID.Bytes(),
		Kind:           string(e.Kind),
		Status:         e.Status.String(),
		PreviousStatus: e.PreviousStatus.String(),
		IsRevert:       e.IsRevert,
		Note:           e.Note,
		OccurredAt:     e.OccurredAt.UTC(),
	}
}

func mutationToDomain(dto OrderMutationDTO) (order.TimelineEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.TimelineEntry{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.TimelineEntry{}, err
	}

	return order.TimelineEntry{
		ID:             id,
		OrderID:        orderID,
		Kind:           order.ChangeKind(dto.Kind),
		Status:         order.NormalizeStatus(dto.Status),
		PreviousStatus: order.NormalizeStatus(dto.PreviousStatus),
		IsRevert:       dto.IsRevert,
		Note:           dto.Note,
		OccurredAt:     dto.OccurredAt.UTC(),
	}, nil
}
