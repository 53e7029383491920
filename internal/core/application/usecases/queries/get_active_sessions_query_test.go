package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverybot/internal/core/application/usecases/queries"
)

func TestNewGetActiveSessionsQuery_Valid(t *testing.T) {
	query := queries.NewGetActiveSessionsQuery()
	err := query.Validate()
	require.NoError(t, err)
}

func TestGetActiveSessionsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetActiveSessionsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetActiveSessionsQueryIsNotConstructed)
}
