package commands_test

import (
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOrderID(t *testing.T, value int64) kernel.OrderID {
	t.Helper()
	id, err := kernel.NewOrderID(value)
	require.NoError(t, err)
	return id
}

func TestNewAdmitOrderCommand(t *testing.T) {
	t.Run("should create command with valid order id", func(t *testing.T) {
		id := mustOrderID(t, 42)

		cmd, err := commands.NewAdmitOrderCommand(id, "Alice")

		require.NoError(t, err)
		assert.Equal(t, id, cmd.OrderID())
		assert.Equal(t, "Alice", cmd.CustomerName())
		require.NoError(t, cmd.Validate())
	})

	t.Run("should tolerate empty customer name", func(t *testing.T) {
		cmd, err := commands.NewAdmitOrderCommand(mustOrderID(t, 42), "")

		require.NoError(t, err)
		assert.Empty(t, cmd.CustomerName())
	})

	t.Run("should reject invalid order id", func(t *testing.T) {
		var invalid kernel.OrderID

		_, err := commands.NewAdmitOrderCommand(invalid, "Alice")

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		cmd := commands.AdmitOrderCommand{}

		err := cmd.Validate()

		require.Error(t, err)
		assert.Equal(t, commands.ErrAdmitOrderCommandIsNotConstructed, err)
	})
}
