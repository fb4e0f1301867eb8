package order_test

import (
	"fmt"
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Ordering(t *testing.T) {
	lifecycle := []order.Status{order.Awaiting, order.Accepted, order.Dispatched, order.Delivered, order.FullyPaid}

	for i := 1; i < len(lifecycle); i++ {
		assert.True(t, lifecycle[i].IsAfter(lifecycle[i-1]), "%s should come after %s", lifecycle[i], lifecycle[i-1])
	}
	assert.Equal(t, 0, int(order.Unknown))
}

func TestNormalizeStatus(t *testing.T) {
	testCases := []struct {
		raw      string
		expected order.Status
	}{
		{"fully_paid", order.FullyPaid},
		{"accepted", order.Accepted},
		{"processing", order.Accepted},
		{"dispatched", order.Dispatched},
		{"out_for_delivery", order.Dispatched},
		{"ready_for_delivery", order.Dispatched},
		{"delivered", order.Delivered},
		{"pending", order.Awaiting},
		{"awaiting", order.Awaiting},
		{"", order.Awaiting},
		{"PROCESSING", order.Accepted},
		{"  Out_For_Delivery ", order.Dispatched},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("should map %q to %s", tc.raw, tc.expected), func(t *testing.T) {
			got := order.NormalizeStatus(tc.raw)

			assert.Equal(t, tc.expected, got)
			require.NoError(t, got.Validate())
		})
	}

	t.Run("should map unrecognized values to Unknown", func(t *testing.T) {
		for _, raw := range []string{"cancelled", "rejected", "partially_accepted", "shipped"} {
			assert.Equal(t, order.Unknown, order.NormalizeStatus(raw), raw)
		}
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should accept synonyms", func(t *testing.T) {
		s, err := order.ParseStatus("ready_for_delivery")

		require.NoError(t, err)
		assert.Equal(t, order.Dispatched, s)
	})

	for _, raw := range []string{"", "   ", "\t"} {
		t.Run(fmt.Sprintf("should require a value for %q", raw), func(t *testing.T) {
			s, err := order.ParseStatus(raw)

			require.Error(t, err)
			assert.Equal(t, order.Unknown, s)
			assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		})
	}

	t.Run("should reject unrecognized values", func(t *testing.T) {
		s, err := order.ParseStatus("cancelled")

		require.Error(t, err)
		assert.Equal(t, order.Unknown, s)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), `"cancelled" is not a recognized status`)
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.Unknown, order.Status(-1), order.Status(6), order.Status(100)} {
		t.Run(fmt.Sprintf("should reject status value %d", int(s)), func(t *testing.T) {
			err := s.Validate()

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(s)))
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "awaiting", order.Awaiting.String())
	assert.Equal(t, "accepted", order.Accepted.String())
	assert.Equal(t, "dispatched", order.Dispatched.String())
	assert.Equal(t, "delivered", order.Delivered.String())
	assert.Equal(t, "fully_paid", order.FullyPaid.String())
	assert.Equal(t, "unknown", order.Unknown.String())
	assert.Equal(t, "unknown", order.Status(42).String())
}

func TestPaymentEnums(t *testing.T) {
	t.Run("should parse payment preferences", func(t *testing.T) {
		p, err := order.ParsePaymentPreference("partial")
		require.NoError(t, err)
		assert.Equal(t, order.PaymentPartial, p)

		_, err = order.ParsePaymentPreference("cod")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should parse payment statuses", func(t *testing.T) {
		p, err := order.ParsePaymentStatus("partial_paid")
		require.NoError(t, err)
		assert.Equal(t, order.PaymentPartialPaid, p)

		_, err = order.ParsePaymentStatus("failed")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
