package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/vendoraccount"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// finalizeBatchSize bounds how many expired windows one finalizer run closes.
const finalizeBatchSize = 100

var _ ports.OrderDataService = (*OrderDataService)(nil)

// OrderDataService owns order records in PostgreSQL. Every write runs in its
// own unit of work: load, apply through the aggregate, update guarded by the
// planned version, record a timeline entry, commit.
type OrderDataService struct {
	uowFactory ports.UnitOfWorkFactory
	clock      ports.Clock
	window     time.Duration
	logger     *slog.Logger
}

func NewOrderDataService(
	uowFactory ports.UnitOfWorkFactory,
	clock ports.Clock,
	window time.Duration,
	logger *slog.Logger,
) (*OrderDataService, error) {
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if clock == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}
	if window <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status update window is invalid",
			fmt.Errorf("%s is not positive", window),
		)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OrderDataService{
		uowFactory: uowFactory,
		clock:      clock,
		window:     window,
		logger:     logger.With("component", "order_data_service"),
	}, nil
}

// CreateOrder stores a new order.
func (s *OrderDataService) CreateOrder(ctx context.Context, o *order.Order) error {
	return s.inTransaction(ctx, func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Add(ctx, o)
	})
}

// RegisterVendor stores a vendor that orders can be routed to.
func (s *OrderDataService) RegisterVendor(ctx context.Context, v *vendoraccount.Vendor) error {
	return s.inTransaction(ctx, func(uow ports.UnitOfWork) error {
		return uow.VendorRepository().Add(ctx, v)
	})
}

func (s *OrderDataService) FetchOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return s.uowFactory.Create().OrderRepository().Get(ctx, id)
}

// CommitTransition applies request unless its id is already in the timeline,
// in which case the stored order is returned untouched. A version conflict
// caused by a concurrent commit of the same request resolves the same way.
func (s *OrderDataService) CommitTransition(
	ctx context.Context,
	id kernel.UUID,
	request order.MutationRequest,
) (*order.Order, error) {
	var result *order.Order
	err := s.inTransaction(ctx, func(uow ports.UnitOfWork) error {
		repo := uow.OrderRepository()

		committed, err := uow.TimelineRepository().Exists(ctx, request.ID())
		if err != nil {
			return err
		}
		if committed {
			result, err = repo.Get(ctx, id)
			return err
		}

		o, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if err := o.Apply(request, now); err != nil {
			return err
		}
		if err := repo.Update(ctx, o, request.BaseVersion()); err != nil {
			var conflict *errs.VersionConflictError
			if !errors.As(err, &conflict) {
				return err
			}
			// A concurrent retry of the same request may have won the race.
			committed, existsErr := uow.TimelineRepository().Exists(ctx, request.ID())
			if existsErr != nil || !committed {
				return err
			}
			result, err = repo.Get(ctx, id)
			return err
		}
		if err := uow.TimelineRepository().Add(ctx, order.NewMutationTimelineEntry(o, request, now)); err != nil {
			return err
		}

		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *OrderDataService) Escalate(
	ctx context.Context,
	id kernel.UUID,
	request order.EscalationRequest,
) (*order.Order, error) {
	return s.change(ctx, id, order.ChangeEscalated, request.Reason(), func(uow ports.UnitOfWork, o *order.Order) error {
		if err := o.Escalate(request); err != nil {
			return err
		}
		return s.recordVendorEscalation(ctx, uow, o)
	}, request.BaseVersion())
}

// recordVendorEscalation counts the escalation against the vendor the order
// is escalated away from. Vendors not registered here are skipped.
func (s *OrderDataService) recordVendorEscalation(ctx context.Context, uow ports.UnitOfWork, o *order.Order) error {
	err := uow.VendorRepository().RecordEscalation(ctx, o.AssignedVendorID(), s.clock.Now())
	if errors.Is(err, errs.ErrObjectNotFound) {
		s.logger.WarnContext(ctx, "escalated order has an unregistered vendor",
			"order_id", o.ID().String(),
			"vendor_id", o.AssignedVendorID().String(),
		)
		return nil
	}
	return err
}

// Reassign checks the target vendor against the vendors table before
// routing the order to it.
func (s *OrderDataService) Reassign(
	ctx context.Context,
	id kernel.UUID,
	request order.ReassignRequest,
) (*order.Order, error) {
	return s.change(ctx, id, order.ChangeReassigned, request.Reason(), func(uow ports.UnitOfWork, o *order.Order) error {
		vendor, err := uow.VendorRepository().Get(ctx, request.VendorID())
		if err != nil {
			return err
		}
		if !vendor.CanTakeOrders() || !vendor.ServesRegion(o.Region()) {
			return fmt.Errorf("%w: vendor %s cannot take orders in region %q",
				order.ErrIneligibleForReassignment, vendor.ID(), o.Region())
		}
		return o.Reassign(request)
	}, request.BaseVersion())
}

func (s *OrderDataService) EscalateFulfillFromWarehouse(
	ctx context.Context,
	id kernel.UUID,
	request order.WarehouseFulfillmentRequest,
) (*order.Order, error) {
	return s.change(ctx, id, order.ChangeFulfilledFromWarehouse, request.Note(), func(_ ports.UnitOfWork, o *order.Order) error {
		return o.FulfillFromWarehouse(request)
	}, request.BaseVersion())
}

func (s *OrderDataService) EscalateRevertToVendor(
	ctx context.Context,
	id kernel.UUID,
	request order.VendorRevertRequest,
) (*order.Order, error) {
	return s.change(ctx, id, order.ChangeRevertedToVendor, request.Reason(), func(_ ports.UnitOfWork, o *order.Order) error {
		return o.RevertToVendor(request)
	}, request.BaseVersion())
}

func (s *OrderDataService) ListAlternateVendors(ctx context.Context, region string) ([]*vendoraccount.Vendor, error) {
	return s.uowFactory.Create().VendorRepository().ListTakingOrders(ctx, region)
}

func (s *OrderDataService) ListEscalatedOrders(
	ctx context.Context,
	filter order.EscalatedOrderFilter,
	page order.Page,
) (order.EscalatedOrders, error) {
	return s.uowFactory.Create().OrderRepository().ListEscalated(ctx, filter, page)
}

func (s *OrderDataService) StatusUpdateWindow(_ context.Context) (time.Duration, error) {
	return s.window, nil
}

// Timeline returns errs.ObjectNotFoundError for unknown orders rather than an
// empty history.
func (s *OrderDataService) Timeline(ctx context.Context, id kernel.UUID) ([]order.TimelineEntry, error) {
	uow := s.uowFactory.Create()
	if _, err := uow.OrderRepository().Get(ctx, id); err != nil {
		return nil, err
	}
	return uow.TimelineRepository().ListByOrder(ctx, id)
}

// FinalizeExpiredGracePeriods confirms every window that elapsed without a
// decision. Orders changed concurrently are skipped and picked up by the next
// run if their window is still open.
func (s *OrderDataService) FinalizeExpiredGracePeriods(ctx context.Context) (int, error) {
	now := s.clock.Now()
	expired, err := s.uowFactory.Create().OrderRepository().ListWithExpiredGracePeriod(ctx, now, finalizeBatchSize)
	if err != nil {
		return 0, err
	}

	finalized := 0
	for _, o := range expired {
		if err := ctx.Err(); err != nil {
			return finalized, err
		}

		_, err := s.CommitTransition(ctx, o.ID(), order.NewConfirmMutation(o, now))
		var conflict *errs.VersionConflictError
		switch {
		case err == nil:
			finalized++
		case errors.As(err, &conflict), errors.Is(err, order.ErrNoActiveGracePeriod):
			s.logger.InfoContext(ctx, "grace period changed before finalization", "order_id", o.ID().String())
		default:
			return finalized, err
		}
	}

	return finalized, nil
}

// change runs a non-status change: apply mutates the loaded order, the order
// is written back guarded by baseVersion and the change is added to the timeline.
func (s *OrderDataService) change(
	ctx context.Context,
	id kernel.UUID,
	kind order.ChangeKind,
	note string,
	apply func(uow ports.UnitOfWork, o *order.Order) error,
	baseVersion int64,
) (*order.Order, error) {
	var result *order.Order
	err := s.inTransaction(ctx, func(uow ports.UnitOfWork) error {
		repo := uow.OrderRepository()
		o, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}

		previous := o.Status()
		if err := apply(uow, o); err != nil {
			return err
		}
		if err := repo.Update(ctx, o, baseVersion); err != nil {
			return err
		}
		entry := order.NewTimelineEntry(o, kind, previous, note, s.clock.Now())
		if err := uow.TimelineRepository().Add(ctx, entry); err != nil {
			return err
		}

		result = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *OrderDataService) inTransaction(ctx context.Context, fn func(uow ports.UnitOfWork) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := uow.Rollback(ctx); rbErr != nil {
			s.logger.ErrorContext(ctx, "failed to roll back", "error", rbErr)
		}
	}()

	if err := fn(uow); err != nil {
		return err
	}
	committed = true
	return uow.Commit(ctx)
}
