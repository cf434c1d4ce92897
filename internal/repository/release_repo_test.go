package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReleaseOpenUpsertsPerCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReleaseRepository(db)

	first := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, repo.Open(context.Background(), "software", 1, first))

	second := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Open(context.Background(), "software", 2, second))

	states, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 1)
	require.True(t, states[0].Open)
	require.NotNil(t, states[0].ReleasedBy)
	require.Equal(t, uint(2), *states[0].ReleasedBy)
	require.WithinDuration(t, second, *states[0].ReleasedAt, time.Second)
}

func TestReleaseCloseAllKeepsRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReleaseRepository(db)

	at := time.Now()
	require.NoError(t, repo.Open(context.Background(), "software", 1, at))
	require.NoError(t, repo.Open(context.Background(), "hardware", 1, at))

	require.NoError(t, repo.CloseAll(context.Background()))

	states, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 2)
	for _, state := range states {
		require.False(t, state.Open)
	}
}
