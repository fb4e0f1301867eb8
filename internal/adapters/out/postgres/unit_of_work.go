// Package postgres is the order-data service backed by PostgreSQL through GORM.
//
// Writes go through a Unit of Work: every change an operation makes to an
// order, its timeline and its vendors is committed in one transaction, and
// the change events recorded with it are published only after that commit.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	repo := uow.OrderRepository()
//	o, err := repo.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if err := o.Apply(request, now); err != nil {
//	    return err
//	}
//	if err := repo.Update(ctx, o, request.BaseVersion()); err != nil {
//	    return err
//	}
//	if err := uow.TimelineRepository().Add(ctx, order.NewMutationTimelineEntry(o, request, now)); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance is single-goroutine; create one per operation
//   - Order rows carry a version column; Update refuses stale writers with
//     errs.VersionConflictError instead of taking row locks
package postgres

import (
	"context"
	"log/slog"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/vendorrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work with its own transaction
// state and tracked changes.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, kafka.NewNopPublisher(), slog.Default())
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory whose units of work share db and
// publish committed changes through publisher.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and the changes recorded
// within it.
//
// Orders written through OrderRepository are tracked by id; timeline entries
// written through TimelineRepository are tracked as changes. On Commit every
// change is paired with the latest tracked snapshot of its order and
// published as an order.ChangedEvent. Publishing failures are logged and do
// not fail the commit.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger

	trackedAggregates []trackedAggregate
	trackedChanges    []order.TimelineEntry
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and then publishes the recorded changes.
//
// Returns error if no active transaction exists or if the commit operation fails.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.reset()
		return err
	}

	events := uow.changedEvents()
	uow.reset()
	if len(events) == 0 || uow.publisher == nil {
		return nil
	}

	if err := uow.publisher.Publish(ctx, events...); err != nil {
		uow.logger.ErrorContext(ctx, "failed to publish order changes",
			"events", len(events),
			"error", err,
		)
	}
	return nil
}

// Rollback discards the transaction and every recorded change.
//
// Returns error if no active transaction exists or if the rollback operation fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.reset()
	return err
}

// OrderRepository provides access to order persistence within the unit of work.
// Operations run inside the current transaction if one is active, otherwise
// directly on the connection.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TimelineRepository provides access to the order timeline within the unit of work.
func (uow *GormUnitOfWork) TimelineRepository() ports.TimelineRepository {
	return orderrepo.NewGormTimelineRepository(uow.conn(), uow)
}

// VendorRepository provides access to vendor persistence within the unit of work.
func (uow *GormUnitOfWork) VendorRepository() ports.VendorRepository {
	return vendorrepo.NewGormVendorRepository(uow.conn())
}

// TrackAggregate registers an aggregate as modified within this unit of work.
// Repository implementations call it after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackChange registers a timeline entry to be published after commit.
func (uow *GormUnitOfWork) TrackChange(entry order.TimelineEntry) {
	uow.trackedChanges = append(uow.trackedChanges, entry)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) changedEvents() []order.ChangedEvent {
	events := make([]order.ChangedEvent, 0, len(uow.trackedChanges))
	for _, change := range uow.trackedChanges {
		o := uow.latestOrder(change.OrderID)
		if o == nil {
			uow.logger.Warn("order change without a tracked order", "order_id", change.OrderID.String())
			continue
		}
		events = append(events, order.NewChangedEvent(o, change))
	}
	return events
}

func (uow *GormUnitOfWork) latestOrder(id kernel.UUID) *order.Order {
	for i := len(uow.trackedAggregates) - 1; i >= 0; i-- {
		tracked := uow.trackedAggregates[i]
		if !tracked.ID.IsEqual(id) {
			continue
		}
		if o, ok := tracked.Aggregate.(*order.Order); ok {
			return o
		}
	}
	return nil
}

func (uow *GormUnitOfWork) reset() {
	uow.trackedAggregates = uow.trackedAggregates[:0]
	uow.trackedChanges = nil
}
