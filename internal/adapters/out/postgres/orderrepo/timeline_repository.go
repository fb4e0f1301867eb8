package orderrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type changeTracker interface {
	TrackChange(entry order.TimelineEntry)
}

// GormTimelineRepository implements ports.TimelineRepository on the
// order_mutations table.
type GormTimelineRepository struct {
	db      *gorm.DB
	tracker changeTracker
}

func NewGormTimelineRepository(db *gorm.DB, tracker changeTracker) *GormTimelineRepository {
	return &GormTimelineRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add records the entry. A second entry with the same id violates the
// primary key, so a concurrent retry of the same request cannot commit twice.
func (r *GormTimelineRepository) Add(ctx context.Context, entry order.TimelineEntry) error {
	if err := entry.ID.Validate(); err != nil {
		return err
	}

	dto := mutationFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackChange(entry)
	return nil
}

func (r *GormTimelineRepository) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderMutationDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormTimelineRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.TimelineEntry, error) {
	var dtos []OrderMutationDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]order.TimelineEntry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := mutationToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}
