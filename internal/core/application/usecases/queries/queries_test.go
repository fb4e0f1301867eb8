package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/vendoraccount"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderSource struct{ mock.Mock }

func (m *MockOrderSource) FetchOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderSource) ListAlternateVendors(ctx context.Context, region string) ([]*vendoraccount.Vendor, error) {
	args := m.Called(ctx, region)
	vendors, _ := args.Get(0).([]*vendoraccount.Vendor)
	return vendors, args.Error(1)
}

func (m *MockOrderSource) Timeline(ctx context.Context, id kernel.UUID) ([]order.TimelineEntry, error) {
	args := m.Called(ctx, id)
	entries, _ := args.Get(0).([]order.TimelineEntry)
	return entries, args.Error(1)
}

func (m *MockOrderSource) ListEscalatedOrders(
	ctx context.Context,
	filter order.EscalatedOrderFilter,
	page order.Page,
) (order.EscalatedOrders, error) {
	args := m.Called(ctx, filter, page)
	listed, _ := args.Get(0).(order.EscalatedOrders)
	return listed, args.Error(1)
}

var now = time.Date(2026, time.July, 20, 8, 15, 0, 0, time.UTC)

func restoreOrder(t *testing.T, p order.RestoreParams) *order.Order {
	t.Helper()
	if p.ID.IsZero() {
		p.ID = kernel.NewUUID()
	}
	if p.AssignedVendorID.IsZero() {
		p.AssignedVendorID = kernel.NewUUID()
	}
	if p.PaymentPreference == "" {
		p.PaymentPreference = order.PaymentPartial
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = order.PaymentPartialPaid
	}
	o, err := order.RestoreOrder(p)
	require.NoError(t, err)
	return o
}

func TestGetOrderActionsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should expose revert while a window is open", func(t *testing.T) {
		expiresAt := now.Add(4 * time.Minute)
		gp := order.RestoreGracePeriod(true, order.Accepted, order.PaymentPartialPaid, expiresAt)
		o := restoreOrder(t, order.RestoreParams{RawStatus: "dispatched", GracePeriod: gp})
		query, err := queries.NewGetOrderActionsQuery(o.ID())
		require.NoError(t, err)

		source := new(MockOrderSource)
		source.On("FetchOrder", ctx, o.ID()).Return(o, nil).Once()

		actions, err := queries.NewGetOrderActionsQueryHandler(source, clock.Fixed(now)).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, order.Dispatched, actions.CurrentStatus)
		assert.Equal(t, []services.Selection{{Status: order.Accepted, IsRevert: true}}, actions.AvailableSelections)
		assert.True(t, actions.IsGracePeriodActive)
		assert.Equal(t, 4*time.Minute, actions.TimeRemaining)
		require.NotNil(t, actions.PreviousStatus)
		assert.Equal(t, order.Accepted, *actions.PreviousStatus)
		require.NotNil(t, actions.ExpiresAt)
		assert.Equal(t, expiresAt, *actions.ExpiresAt)
		assert.True(t, actions.CanEscalate)
		assert.False(t, actions.CanReassign)
		source.AssertExpectations(t)
	})

	t.Run("should report an expired window as inactive", func(t *testing.T) {
		gp := order.RestoreGracePeriod(true, order.Accepted, order.PaymentPartialPaid, now.Add(-time.Minute))
		o := restoreOrder(t, order.RestoreParams{RawStatus: "dispatched", GracePeriod: gp})
		query, err := queries.NewGetOrderActionsQuery(o.ID())
		require.NoError(t, err)

		source := new(MockOrderSource)
		source.On("FetchOrder", ctx, o.ID()).Return(o, nil).Once()

		actions, err := queries.NewGetOrderActionsQueryHandler(source, clock.Fixed(now)).Handle(ctx, query)

		require.NoError(t, err)
		assert.False(t, actions.IsGracePeriodActive)
		assert.Empty(t, actions.AvailableSelections)
		assert.Zero(t, actions.TimeRemaining)
	})

	t.Run("should expose escalation actions of an escalated awaiting order", func(t *testing.T) {
		o := restoreOrder(t, order.RestoreParams{RawStatus: "pending", Escalated: true, EscalationReason: "declined"})
		query, err := queries.NewGetOrderActionsQuery(o.ID())
		require.NoError(t, err)

		source := new(MockOrderSource)
		source.On("FetchOrder", ctx, o.ID()).Return(o, nil).Once()

		actions, err := queries.NewGetOrderActionsQueryHandler(source, clock.Fixed(now)).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "pending", actions.RawStatus)
		assert.Equal(t, order.Awaiting, actions.CurrentStatus)
		assert.Equal(t,
			[]services.Selection{{Status: order.Awaiting}, {Status: order.Accepted}},
			actions.AvailableSelections,
		)
		assert.False(t, actions.IsGracePeriodActive)
		assert.Nil(t, actions.PreviousStatus)
		assert.False(t, actions.CanEscalate)
		assert.True(t, actions.CanReassign)
		assert.True(t, actions.CanEscalateFulfill)
		assert.True(t, actions.CanEscalateRevert)
	})

	t.Run("should offer nothing on an unrecognized status", func(t *testing.T) {
		o := restoreOrder(t, order.RestoreParams{RawStatus: "lost_in_transit", Escalated: true})
		query, err := queries.NewGetOrderActionsQuery(o.ID())
		require.NoError(t, err)

		source := new(MockOrderSource)
		source.On("FetchOrder", ctx, o.ID()).Return(o, nil).Once()

		actions, err := queries.NewGetOrderActionsQueryHandler(source, clock.Fixed(now)).Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, order.Unknown, actions.CurrentStatus)
		assert.Equal(t, "lost_in_transit", actions.RawStatus)
		assert.Empty(t, actions.AvailableSelections)
		assert.False(t, actions.CanReassign)
		assert.False(t, actions.CanEscalateFulfill)
		assert.False(t, actions.CanEscalateRevert)
	})

	t.Run("should pass not found through", func(t *testing.T) {
		id := kernel.NewUUID()
		query, err := queries.NewGetOrderActionsQuery(id)
		require.NoError(t, err)

		source := new(MockOrderSource)
		source.On("FetchOrder", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

		_, err = queries.NewGetOrderActionsQueryHandler(source, clock.Fixed(now)).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject an unconstructed query", func(t *testing.T) {
		_, err := queries.NewGetOrderActionsQueryHandler(new(MockOrderSource), clock.Fixed(now)).
			Handle(ctx, queries.GetOrderActionsQuery{})

		require.ErrorIs(t, err, queries.ErrGetOrderActionsQueryIsNotConstructed)
	})
}

func TestGetAlternateVendorsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, order.RestoreParams{RawStatus: "awaiting", Escalated: true, Region: "Nairobi"})
	current, err := vendoraccount.NewVendor(o.AssignedVendorID(), "Current", []string{"Nairobi"})
	require.NoError(t, err)
	other, err := vendoraccount.NewVendor(kernel.NewUUID(), "Other", []string{"Nairobi", "Mombasa"})
	require.NoError(t, err)
	query, err := queries.NewGetAlternateVendorsQuery(o.ID())
	require.NoError(t, err)

	source := new(MockOrderSource)
	mock.InOrder(
		source.On("FetchOrder", ctx, o.ID()).Return(o, nil).Once(),
		source.On("ListAlternateVendors", ctx, "Nairobi").Return([]*vendoraccount.Vendor{current, other}, nil).Once(),
	)

	vendors, err := queries.NewGetAlternateVendorsQueryHandler(source).Handle(ctx, query)

	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.True(t, other.ID().IsEqual(vendors[0].ID))
	assert.Equal(t, "Other", vendors[0].Name)
	assert.Equal(t, []string{"Nairobi", "Mombasa"}, vendors[0].Regions)
	source.AssertExpectations(t)
}

func TestGetOrderTimelineQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, order.RestoreParams{RawStatus: "accepted"})
	entries := []order.TimelineEntry{
		order.NewTimelineEntry(o, order.ChangeEscalated, order.Accepted, "declined", now),
	}
	query, err := queries.NewGetOrderTimelineQuery(o.ID())
	require.NoError(t, err)

	source := new(MockOrderSource)
	source.On("FetchOrder", ctx, o.ID()).Return(o, nil).Once()
	source.On("Timeline", ctx, o.ID()).Return(entries, nil).Once()

	got, err := queries.NewGetOrderTimelineQueryHandler(source).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, entries, got)

	_, err = queries.NewGetOrderTimelineQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetEscalatedOrdersQuery(t *testing.T) {
	t.Run("should default to unfinished orders on the first page", func(t *testing.T) {
		query, err := queries.NewGetEscalatedOrdersQuery("  ", 0, 0)

		require.NoError(t, err)
		assert.Equal(t, order.Unknown, query.Filter().Status)
		assert.Equal(t, 1, query.Page().Number())
		assert.Equal(t, order.DefaultPageSize, query.Page().Size())
	})

	t.Run("should accept status synonyms", func(t *testing.T) {
		query, err := queries.NewGetEscalatedOrdersQuery("Processing", 2, 5)

		require.NoError(t, err)
		assert.Equal(t, order.Accepted, query.Filter().Status)
		assert.Equal(t, 5, query.Page().Offset())
	})

	t.Run("should reject unrecognized status and bad pages", func(t *testing.T) {
		_, err := queries.NewGetEscalatedOrdersQuery("cancelled", 1, 20)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = queries.NewGetEscalatedOrdersQuery("", -1, 20)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = queries.NewGetEscalatedOrdersQuery("", 1, order.MaxPageSize+1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestGetEscalatedOrdersQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	escalatedAt := now.Add(-time.Hour)
	awaiting := restoreOrder(t, order.RestoreParams{RawStatus: "pending", Escalated: true, EscalationReason: "out of stock"})
	query, err := queries.NewGetEscalatedOrdersQuery("", 1, 10)
	require.NoError(t, err)

	source := new(MockOrderSource)
	source.On("ListEscalatedOrders", ctx, order.EscalatedOrderFilter{}, query.Page()).Return(order.EscalatedOrders{
		Items: []order.EscalatedOrder{{Order: awaiting, EscalatedAt: escalatedAt}},
		Total: 11,
		Page:  query.Page(),
	}, nil).Once()

	queue, err := queries.NewGetEscalatedOrdersQueryHandler(source).Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, int64(11), queue.Total)
	assert.Equal(t, 1, queue.PageNumber)
	assert.Equal(t, 10, queue.PageSize)
	require.Len(t, queue.Items, 1)
	item := queue.Items[0]
	assert.True(t, awaiting.ID().IsEqual(item.OrderID))
	assert.Equal(t, order.Awaiting, item.Status)
	assert.Equal(t, "out of stock", item.EscalationReason)
	assert.Equal(t, escalatedAt, item.EscalatedAt)
	assert.True(t, item.CanReassign)
	assert.True(t, item.CanEscalateFulfill)
	assert.True(t, item.CanEscalateRevert)
	source.AssertExpectations(t)

	_, err = queries.NewGetEscalatedOrdersQueryHandler(source).Handle(ctx, queries.GetEscalatedOrdersQuery{})
	require.ErrorIs(t, err, queries.ErrGetEscalatedOrdersQueryIsNotConstructed)
}
