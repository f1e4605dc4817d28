package kernel_test

import (
	"fmt"
	"testing"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderID(t *testing.T) {
	t.Run("should create order id from positive value", func(t *testing.T) {
		id, err := kernel.NewOrderID(42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), id.Value())
		assert.Equal(t, "42", id.String())
		require.NoError(t, id.Validate())
	})

	t.Run("should reject non-positive values", func(t *testing.T) {
		for _, value := range []int64{0, -1, -42} {
			t.Run(fmt.Sprintf("value %d", value), func(t *testing.T) {
				_, err := kernel.NewOrderID(value)

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), "order id is invalid")
			})
		}
	})
}

func TestOrderIDFromString(t *testing.T) {
	t.Run("should parse decimal string", func(t *testing.T) {
		id, err := kernel.OrderIDFromString("1007")

		require.NoError(t, err)
		assert.Equal(t, int64(1007), id.Value())
	})

	t.Run("should reject malformed strings", func(t *testing.T) {
		for _, s := range []string{"", "abc", "12.5", "-3"} {
			t.Run(fmt.Sprintf("input %q", s), func(t *testing.T) {
				_, err := kernel.OrderIDFromString(s)

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			})
		}
	})
}

func TestOrderID_IsEqual(t *testing.T) {
	a, err := kernel.NewOrderID(1)
	require.NoError(t, err)
	b, err := kernel.NewOrderID(1)
	require.NoError(t, err)
	c, err := kernel.NewOrderID(2)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestOrderID_Validate(t *testing.T) {
	t.Run("zero value is rejected", func(t *testing.T) {
		var id kernel.OrderID

		err := id.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrOrderIDIsNotConstructed, err)
	})
}
