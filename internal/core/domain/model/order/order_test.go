package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const window = 10 * time.Minute

func restore(t *testing.T, p order.RestoreParams) *order.Order {
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

func advance(t *testing.T, o *order.Order, at time.Time) order.MutationRequest {
	t.Helper()
	next, ok := o.NextStatus()
	require.True(t, ok)
	gp, err := order.OpenGracePeriod(o.Status(), o.PaymentStatus(), next, at.Add(window), at)
	require.NoError(t, err)
	m := order.NewForwardMutation(o, next, gp, at)
	require.NoError(t, o.Apply(m, at))
	return m
}

func TestNewOrder(t *testing.T) {
	t.Run("should create awaiting order", func(t *testing.T) {
		vendorID := kernel.NewUUID()

		o, err := order.NewOrder(kernel.NewUUID(), vendorID, order.PaymentFull, " north ")

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Awaiting, o.Status())
		assert.Equal(t, "awaiting", o.RawStatus())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Equal(t, "north", o.Region())
		assert.True(t, vendorID.IsEqual(o.AssignedVendorID()))
		assert.False(t, o.IsEscalated())
		assert.Zero(t, o.Version())
	})

	t.Run("should collect every invalid argument", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, "cod", "")

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should normalize producer spellings", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "out_for_delivery"})

		assert.Equal(t, order.Dispatched, o.Status())
		assert.Equal(t, "out_for_delivery", o.RawStatus())
	})

	t.Run("should keep unrecognized orders readable but inert", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "cancelled", Escalated: true})

		assert.Equal(t, order.Unknown, o.Status())
		_, ok := o.NextStatus()
		assert.False(t, ok)
		assert.ErrorIs(t, o.CheckEscalatable(), order.ErrIneligibleForEscalationAction)
		assert.ErrorIs(t, o.CheckVendorRevertable(), order.ErrIneligibleForEscalationAction)
		assert.ErrorIs(t, o.CheckReassignable(), order.ErrIneligibleForReassignment)
		assert.ErrorIs(t, o.CheckWarehouseFulfillable(), order.ErrIneligibleForEscalationAction)
	})

	t.Run("should reject a negative version", func(t *testing.T) {
		_, err := order.RestoreOrder(order.RestoreParams{
			ID:                kernel.NewUUID(),
			AssignedVendorID:  kernel.NewUUID(),
			PaymentPreference: order.PaymentFull,
			PaymentStatus:     order.PaymentFullyPaid,
			Version:           -1,
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should copy notes", func(t *testing.T) {
		notes := []string{"first"}
		o := restore(t, order.RestoreParams{RawStatus: "accepted", Notes: notes})

		notes[0] = "changed"
		got := o.Notes()
		got = append(got, "extra")

		assert.Equal(t, []string{"first"}, o.Notes())
		assert.Len(t, got, 2)
	})
}

func TestOrder_ApplyForward(t *testing.T) {
	t.Run("should move to next status and open a grace period", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "accepted"})

		m := advance(t, o, now)

		assert.Equal(t, order.Dispatched, o.Status())
		assert.Equal(t, "dispatched", o.RawStatus())
		assert.Equal(t, order.Accepted, m.Previous())
		assert.True(t, o.GracePeriod().IsOpen(now))
		assert.Equal(t, order.Accepted, o.GracePeriod().PreviousStatus())
		assert.Equal(t, int64(1), o.Version())
	})

	t.Run("should settle full orders on delivery", func(t *testing.T) {
		o := restore(t, order.RestoreParams{
			RawStatus:         "dispatched",
			PaymentPreference: order.PaymentFull,
			PaymentStatus:     order.PaymentPending,
		})

		advance(t, o, now)

		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.PaymentFullyPaid, o.PaymentStatus())
		assert.True(t, o.WorkflowCompleted())
	})

	t.Run("should keep partial balance open on delivery", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "dispatched"})

		advance(t, o, now)

		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, order.PaymentPartialPaid, o.PaymentStatus())
		assert.False(t, o.WorkflowCompleted())
	})

	t.Run("should reject skipping a status", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "accepted"})
		gp, err := order.OpenGracePeriod(order.Accepted, o.PaymentStatus(), order.Delivered, now.Add(window), now)
		require.NoError(t, err)

		err = o.Apply(order.NewForwardMutation(o, order.Delivered, gp, now), now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Accepted, o.Status())
		assert.Zero(t, o.Version())
	})

	t.Run("should reject a forward move while a window is open", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "accepted"})
		advance(t, o, now)
		gp, err := order.OpenGracePeriod(order.Dispatched, o.PaymentStatus(), order.Delivered, now.Add(2*window), now)
		require.NoError(t, err)

		err = o.Apply(order.NewForwardMutation(o, order.Delivered, gp, now), now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Dispatched, o.Status())
	})

	t.Run("should reject a forward move without grace period", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "accepted"})

		err := o.Apply(order.NewForwardMutation(o, order.Dispatched, order.GracePeriod{}, now), now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should reject a stale request", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "accepted", Version: 4})
		gp, err := order.OpenGracePeriod(order.Accepted, o.PaymentStatus(), order.Dispatched, now.Add(window), now)
		require.NoError(t, err)
		m := order.NewForwardMutation(o, order.Dispatched, gp, now)
		other := restore(t, order.RestoreParams{ID: o.ID(), RawStatus: "accepted", Version: 5})

		err = other.Apply(m, now)

		require.ErrorIs(t, err, errs.ErrVersionConflict)
		var conflict *errs.VersionConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, int64(4), conflict.Expected)
	})

	t.Run("should reject a request for another order", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "accepted"})
		other := restore(t, order.RestoreParams{RawStatus: "accepted"})
		gp, err := order.OpenGracePeriod(order.Accepted, o.PaymentStatus(), order.Dispatched, now.Add(window), now)
		require.NoError(t, err)

		err = other.Apply(order.NewForwardMutation(o, order.Dispatched, gp, now), now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a zero value request", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "accepted"})

		err := o.Apply(order.MutationRequest{}, now)

		require.ErrorIs(t, err, order.ErrMutationRequestIsNotConstructed)
	})
}

func TestOrder_ApplyConfirm(t *testing.T) {
	t.Run("should close the window and keep the status", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "awaiting"})
		advance(t, o, now)

		m := order.NewConfirmMutation(o, now.Add(time.Minute))
		require.NoError(t, o.Apply(m, now.Add(time.Minute)))

		assert.Equal(t, order.Accepted, o.Status())
		assert.Equal(t, order.Accepted, m.Target())
		assert.False(t, o.GracePeriod().IsActive())
		assert.Equal(t, int64(2), o.Version())
	})

	t.Run("should be allowed after expiry", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "awaiting"})
		advance(t, o, now)
		later := now.Add(2 * window)

		require.NoError(t, o.Apply(order.NewConfirmMutation(o, later), later))
		assert.False(t, o.GracePeriod().IsActive())
	})

	t.Run("should fail without an active window", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "accepted"})

		err := o.Apply(order.NewConfirmMutation(o, now), now)

		require.ErrorIs(t, err, order.ErrNoActiveGracePeriod)
	})
}

func TestOrder_ApplyRevert(t *testing.T) {
	t.Run("should restore previous status and payment", func(t *testing.T) {
		o := restore(t, order.RestoreParams{
			RawStatus:         "dispatched",
			PaymentPreference: order.PaymentFull,
			PaymentStatus:     order.PaymentPending,
		})
		advance(t, o, now)
		require.Equal(t, order.PaymentFullyPaid, o.PaymentStatus())

		m := order.NewRevertMutation(o, now.Add(time.Minute))
		require.NoError(t, o.Apply(m, now.Add(time.Minute)))

		assert.True(t, m.IsRevert())
		assert.Equal(t, order.Dispatched, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.False(t, o.GracePeriod().IsActive())
	})

	t.Run("should fail once the window elapsed", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "accepted"})
		advance(t, o, now)
		later := now.Add(window)

		err := o.Apply(order.NewRevertMutation(o, later), later)

		require.ErrorIs(t, err, order.ErrGracePeriodExpired)
		assert.Equal(t, order.Dispatched, o.Status())
		assert.True(t, o.GracePeriod().IsActive())
	})

	t.Run("should fail without an active window", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "accepted"})

		err := o.Apply(order.NewRevertMutation(o, now), now)

		require.ErrorIs(t, err, order.ErrNoActiveGracePeriod)
	})
}

func TestOrder_Escalate(t *testing.T) {
	t.Run("should mark the order escalated", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "awaiting"})
		r, err := order.NewEscalationRequest("vendor unreachable", o.Version())
		require.NoError(t, err)

		require.NoError(t, o.Escalate(r))

		assert.True(t, o.IsEscalated())
		assert.Equal(t, "vendor unreachable", o.EscalationReason())
		assert.Equal(t, order.Awaiting, o.Status())
		assert.Equal(t, int64(1), o.Version())
	})

	t.Run("should refuse twice", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "awaiting", Escalated: true})
		r, err := order.NewEscalationRequest("again", o.Version())
		require.NoError(t, err)

		require.ErrorIs(t, o.Escalate(r), order.ErrIneligibleForEscalationAction)
	})

	t.Run("should refuse a completed order", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "fully_paid", PaymentStatus: order.PaymentFullyPaid})
		r, err := order.NewEscalationRequest("late complaint", o.Version())
		require.NoError(t, err)

		require.ErrorIs(t, o.Escalate(r), order.ErrIneligibleForEscalationAction)
	})

	t.Run("should require a reason", func(t *testing.T) {
		_, err := order.NewEscalationRequest("   ", 0)

		require.ErrorIs(t, err, order.ErrMissingRequiredReason)
	})
}

func TestOrder_FulfillFromWarehouse(t *testing.T) {
	t.Run("should accept the order from the warehouse", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "pending", Escalated: true, EscalationReason: "no stock"})
		r, err := order.NewWarehouseFulfillmentRequest("shipped from central", "TRK-42", o.Version())
		require.NoError(t, err)

		require.NoError(t, o.FulfillFromWarehouse(r))

		assert.Equal(t, order.Accepted, o.Status())
		assert.False(t, o.IsEscalated())
		assert.Empty(t, o.EscalationReason())
		assert.Equal(t, "TRK-42", o.TrackingNumber())
		assert.Equal(t, []string{"[Warehouse fulfillment] shipped from central"}, o.Notes())
		assert.False(t, o.GracePeriod().IsActive())
	})

	t.Run("should refuse an order past awaiting", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "accepted", Escalated: true})
		r, err := order.NewWarehouseFulfillmentRequest("note", "", o.Version())
		require.NoError(t, err)

		require.ErrorIs(t, o.FulfillFromWarehouse(r), order.ErrIneligibleForEscalationAction)
		assert.Equal(t, order.Accepted, o.Status())
		assert.Empty(t, o.Notes())
	})

	t.Run("should refuse an order that is not escalated", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "awaiting"})
		r, err := order.NewWarehouseFulfillmentRequest("note", "", o.Version())
		require.NoError(t, err)

		require.ErrorIs(t, o.FulfillFromWarehouse(r), order.ErrIneligibleForEscalationAction)
	})

	t.Run("should require a note", func(t *testing.T) {
		_, err := order.NewWarehouseFulfillmentRequest("", "TRK-1", 0)

		require.ErrorIs(t, err, order.ErrMissingRequiredReason)
	})
}

func TestOrder_RevertToVendor(t *testing.T) {
	t.Run("should clear the escalation and keep the status", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "dispatched", Escalated: true, EscalationReason: "late"})
		r, err := order.NewVendorRevertRequest("vendor responded", o.Version())
		require.NoError(t, err)

		require.NoError(t, o.RevertToVendor(r))

		assert.False(t, o.IsEscalated())
		assert.Equal(t, order.Dispatched, o.Status())
		assert.Equal(t, []string{"[Reverted to vendor] vendor responded"}, o.Notes())
	})

	t.Run("should refuse an order that is not escalated", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "dispatched"})
		r, err := order.NewVendorRevertRequest("reason", o.Version())
		require.NoError(t, err)

		require.ErrorIs(t, o.RevertToVendor(r), order.ErrIneligibleForEscalationAction)
	})
}

func TestOrder_Reassign(t *testing.T) {
	t.Run("should route the order to another vendor", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "awaiting", Escalated: true})
		target := kernel.NewUUID()
		r, err := order.NewReassignRequest(target, "closer to customer", o.Version())
		require.NoError(t, err)

		require.NoError(t, o.Reassign(r))

		assert.True(t, target.IsEqual(o.AssignedVendorID()))
		assert.True(t, o.IsEscalated())
		assert.Equal(t, order.Awaiting, o.Status())
		assert.Equal(t, []string{"[Reassigned] closer to customer"}, o.Notes())
	})

	t.Run("should refuse the current vendor", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "awaiting", Escalated: true})
		r, err := order.NewReassignRequest(o.AssignedVendorID(), "same", o.Version())
		require.NoError(t, err)

		require.ErrorIs(t, o.Reassign(r), order.ErrIneligibleForReassignment)
	})

	t.Run("should refuse an order past awaiting", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "accepted", Escalated: true})
		r, err := order.NewReassignRequest(kernel.NewUUID(), "reason", o.Version())
		require.NoError(t, err)

		require.ErrorIs(t, o.Reassign(r), order.ErrIneligibleForReassignment)
	})

	t.Run("should refuse a stale request", func(t *testing.T) {
		o := restore(t, order.RestoreParams{RawStatus: "awaiting", Escalated: true, Version: 2})
		r, err := order.NewReassignRequest(kernel.NewUUID(), "reason", 1)
		require.NoError(t, err)

		require.ErrorIs(t, o.Reassign(r), errs.ErrVersionConflict)
	})
}

func TestNewMutationTimelineEntry(t *testing.T) {
	o := restore(t, order.RestoreParams{RawStatus: "accepted"})
	m := advance(t, o, now)

	entry := order.NewMutationTimelineEntry(o, m, now)
	event := order.NewChangedEvent(o, entry)

	assert.True(t, m.ID().IsEqual(entry.ID))
	assert.Equal(t, order.ChangeStatusForward, entry.Kind)
	assert.Equal(t, order.Dispatched, entry.Status)
	assert.Equal(t, order.Accepted, entry.PreviousStatus)
	assert.False(t, entry.IsRevert)
	assert.Equal(t, o.Version(), event.Version)
	assert.Equal(t, order.Dispatched, event.Status)
}
