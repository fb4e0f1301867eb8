package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/vendoraccount"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var _ ports.OrderDataService = (*MockOrderDataService)(nil)

type MockOrderDataService struct{ mock.Mock }

func (m *MockOrderDataService) FetchOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderDataService) CommitTransition(
	ctx context.Context,
	id kernel.UUID,
	request order.MutationRequest,
) (*order.Order, error) {
	args := m.Called(ctx, id, request)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderDataService) Escalate(
	ctx context.Context,
	id kernel.UUID,
	request order.EscalationRequest,
) (*order.Order, error) {
	args := m.Called(ctx, id, request)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderDataService) Reassign(
	ctx context.Context,
	id kernel.UUID,
	request order.ReassignRequest,
) (*order.Order, error) {
	args := m.Called(ctx, id, request)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderDataService) EscalateFulfillFromWarehouse(
	ctx context.Context,
	id kernel.UUID,
	request order.WarehouseFulfillmentRequest,
) (*order.Order, error) {
	args := m.Called(ctx, id, request)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderDataService) EscalateRevertToVendor(
	ctx context.Context,
	id kernel.UUID,
	request order.VendorRevertRequest,
) (*order.Order, error) {
	args := m.Called(ctx, id, request)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderDataService) ListAlternateVendors(ctx context.Context, region string) ([]*vendoraccount.Vendor, error) {
	args := m.Called(ctx, region)
	vendors, _ := args.Get(0).([]*vendoraccount.Vendor)
	return vendors, args.Error(1)
}

func (m *MockOrderDataService) StatusUpdateWindow(ctx context.Context) (time.Duration, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Duration), args.Error(1)
}

func (m *MockOrderDataService) Timeline(ctx context.Context, id kernel.UUID) ([]order.TimelineEntry, error) {
	args := m.Called(ctx, id)
	entries, _ := args.Get(0).([]order.TimelineEntry)
	return entries, args.Error(1)
}

func (m *MockOrderDataService) ListEscalatedOrders(
	ctx context.Context,
	filter order.EscalatedOrderFilter,
	page order.Page,
) (order.EscalatedOrders, error) {
	args := m.Called(ctx, filter, page)
	listed, _ := args.Get(0).(order.EscalatedOrders)
	return listed, args.Error(1)
}

func orderOrNil(v any) *order.Order {
	o, _ := v.(*order.Order)
	return o
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var now = time.Date(2026, time.June, 1, 14, 0, 0, 0, time.UTC)

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
