package vendorrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vendoraccount"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormVendorRepository implements ports.VendorRepository using GORM.
type GormVendorRepository struct {
	db *gorm.DB
}

func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

func (r *GormVendorRepository) Add(ctx context.Context, vendor *vendoraccount.Vendor) error {
	if err := vendor.Validate(); err != nil {
		return err
	}

	dto := fromDomain(vendor)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormVendorRepository) Get(ctx context.Context, id kernel.UUID) (*vendoraccount.Vendor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VendorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("vendor", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// RecordEscalation increments the vendor's escalation count in place, so
// concurrent escalations of different orders never lose an increment.
func (r *GormVendorRepository) RecordEscalation(ctx context.Context, id kernel.UUID, at time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&VendorDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"escalation_count":  gorm.Expr("escalation_count + 1"),
			"last_escalated_at": at.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("vendor", id.String())
	}
	return nil
}

// ListTakingOrders matches the region case-insensitively against any entry
// of the vendor's regions array.
func (r *GormVendorRepository) ListTakingOrders(ctx context.Context, region string) ([]*vendoraccount.Vendor, error) {
	query := r.db.WithContext(ctx).Where("approved = ? AND active = ?", true, true)
	if region = strings.TrimSpace(region); region != "" {
		query = query.Where("EXISTS (SELECT 1 FROM unnest(regions) AS r WHERE lower(r) = lower(?))", region)
	}

	var dtos []VendorDTO
	if err := query.Order("name, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	vendors := make([]*vendoraccount.Vendor, 0, len(dtos))
	for _, dto := range dtos {
		v, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		vendors = append(vendors, v)
	}

	return vendors, nil
}
