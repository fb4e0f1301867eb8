// Package vendorrepo persists the vendors orders can be routed to.
package vendorrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vendoraccount"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type VendorDTO struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name     string         `gorm:"type:varchar(255);not null"`
	Regions  pq.StringArray `gorm:"type:text[]"`
	Approved bool           `gorm:"not null;default:false"`
	Active   bool           `gorm:"not null;default:false"`

	EscalationCount int64      `gorm:"not null;default:0"`
	LastEscalatedAt *time.Time
}

func (VendorDTO) TableName() string {
	return "vendors"
}

func fromDomain(v *vendoraccount.Vendor) VendorDTO {
	dto := VendorDTO{
		ID:              v.ID().Bytes(),
		Name:            v.Name(),
		Regions:         pq.StringArray(v.Regions()),
		Approved:        v.IsApproved(),
		Active:          v.IsActive(),
		EscalationCount: v.EscalationCount(),
	}
	if at := v.LastEscalatedAt(); !at.IsZero() {
		at = at.UTC()
		dto.LastEscalatedAt = &at
	}
	return dto
}

func toDomain(dto VendorDTO) (*vendoraccount.Vendor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	var lastEscalatedAt time.Time
	if dto.LastEscalatedAt != nil {
		lastEscalatedAt = dto.LastEscalatedAt.UTC()
	}
	return vendoraccount.RestoreVendor(vendoraccount.RestoreParams{
		ID:              id,
		Name:            dto.Name,
		Regions:         dto.Regions,
		Approved:        dto.Approved,
		Active:          dto.Active,
		EscalationCount: dto.EscalationCount,
		LastEscalatedAt: lastEscalatedAt,
	})
}
