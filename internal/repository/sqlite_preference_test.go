package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRepo_GetMissing(t *testing.T) {
	repo := NewSQLitePreferenceRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), domain.GateOnboardingDismissed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPreferenceRepo_SetAndOverwrite(t *testing.T) {
	repo := NewSQLitePreferenceRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	first := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return first }

	require.NoError(t, repo.Set(ctx, domain.GateOnboardingDismissed, "1"))
	got, err := repo.Get(ctx, domain.GateOnboardingDismissed)
	require.NoError(t, err)
	assert.True(t, got.Bool())
	assert.Equal(t, first, got.UpdatedAt)

	later := first.Add(time.Hour)
	repo.now = func() time.Time { return later }
	require.NoError(t, repo.Set(ctx, domain.GateOnboardingDismissed, "0"))
	got, err = repo.Get(ctx, domain.GateOnboardingDismissed)
	require.NoError(t, err)
	assert.False(t, got.Bool())
	assert.Equal(t, later, got.UpdatedAt)
}

func TestPreferenceRepo_DeleteAndList(t *testing.T) {
	repo := NewSQLitePreferenceRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "b", "2"))
	require.NoError(t, repo.Set(ctx, "a", "1"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Key)
	assert.Equal(t, "b", list[1].Key)

	require.NoError(t, repo.Delete(ctx, "a"))
	require.NoError(t, repo.Delete(ctx, "a"))
	_, err = repo.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}
