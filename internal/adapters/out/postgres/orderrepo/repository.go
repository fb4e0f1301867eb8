package orderrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column of the aggregate, guarded by expectedVersion.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expectedVersion int64) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionConflictError("order", aggregate.ID().String(), expectedVersion)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListWithExpiredGracePeriod retrieves orders whose active window ended at or before now.
func (r *GormOrderRepository) ListWithExpiredGracePeriod(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("grace_is_active = ? AND grace_expires_at <= ?", true, now.UTC()).
		Order("grace_expires_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// escalatedOrderRow is an orders row with the time of its latest escalation.
type escalatedOrderRow struct {
	OrderDTO    `gorm:"embedded"`
	EscalatedAt *time.Time
}

// ListEscalated joins each escalated order with its latest escalated
// timeline entry. Without a status filter, completed workflows are left out.
func (r *GormOrderRepository) ListEscalated(
	ctx context.Context,
	filter order.EscalatedOrderFilter,
	page order.Page,
) (order.EscalatedOrders, error) {
	query := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("orders.escalated = ?", true)
	if filter.Status != order.Unknown {
		if err := filter.Status.Validate(); err != nil {
			return order.EscalatedOrders{}, err
		}
		query = query.Where("orders.canonical_status = ?", filter.Status.String())
	} else {
		query = query.Where("orders.workflow_completed = ?", false)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return order.EscalatedOrders{}, err
	}

	var rows []escalatedOrderRow
	err := query.
		Select("orders.*, e.escalated_at").
		Joins("LEFT JOIN (?) AS e ON e.order_id = orders.id",
			r.db.Model(&OrderMutationDTO{}).
				Select("order_id, MAX(occurred_at) AS escalated_at").
				Where("kind = ?", string(order.ChangeEscalated)).
				Group("order_id"),
		).
		Order("e.escalated_at DESC NULLS LAST, orders.id").
		Offset(page.Offset()).
		Limit(page.Size()).
		Scan(&rows).Error
	if err != nil {
		return order.EscalatedOrders{}, err
	}

	items := make([]order.EscalatedOrder, 0, len(rows))
	for _, row := range rows {
		o, err := toDomain(row.OrderDTO)
		if err != nil {
			return order.EscalatedOrders{}, err
		}
		item := order.EscalatedOrder{Order: o}
		if row.EscalatedAt != nil {
			item.EscalatedAt = row.EscalatedAt.UTC()
		}
		items = append(items, item)
	}

	return order.EscalatedOrders{Items: items, Total: total, Page: page}, nil
}
