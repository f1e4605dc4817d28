package queries_test

import (
	"testing"

	"production/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetProductionQueueQuery_Valid(t *testing.T) {
	query := queries.NewGetProductionQueueQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetProductionQueueQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetProductionQueueQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetProductionQueueQueryIsNotConstructed)
}
