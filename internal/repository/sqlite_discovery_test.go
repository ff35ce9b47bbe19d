package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/leadflow/internal/analysis"
	"github.com/alexanderramin/leadflow/internal/db"
	"github.com/alexanderramin/leadflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoveryRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteDiscoveryRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	rec := testutil.NewTestDiscovery(testutil.WithSubmitted("queued"))

	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ConversationID, got.ConversationID)
	assert.Equal(t, "Dana", got.Name)
	assert.Equal(t, "dana@example.com", got.Email)
	assert.Equal(t, analysis.ComplexityComplex, got.Complexity)
	assert.Equal(t, 9, got.LeadScore)
	assert.True(t, got.Submitted)
	assert.Equal(t, "queued", got.SubmissionMessage)
	assert.Equal(t, rec.CompletedAt, got.CompletedAt)
	assert.Equal(t, rec.StartedAt.UTC(), got.StartedAt)
	assert.Equal(t, 300, got.DurationSec)

	require.NotNil(t, got.Data)
	assert.Equal(t, rec.Data.Responses, got.Data.Responses)
	assert.Equal(t, rec.Data.Phases, got.Data.Phases)
	assert.Equal(t, rec.Data.RiskFlags, got.Data.RiskFlags)
	assert.Equal(t, rec.Data.EstimatedEffort, got.Data.EstimatedEffort)
}

func TestDiscoveryRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteDiscoveryRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiscoveryRepo_ListRecentNewestFirst(t *testing.T) {
	repo := NewSQLiteDiscoveryRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		rec := testutil.NewTestDiscovery(testutil.WithCompletedAt(base.Add(time.Duration(i) * time.Hour)))
		require.NoError(t, repo.Create(ctx, rec))
		ids = append(ids, rec.ID)
	}

	all, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].ID)
	assert.Equal(t, ids[0], all[2].ID)

	two, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestDiscoveryRepo_Delete(t *testing.T) {
	repo := NewSQLiteDiscoveryRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	rec := testutil.NewTestDiscovery()
	require.NoError(t, repo.Create(ctx, rec))

	require.NoError(t, repo.Delete(ctx, rec.ID))
	assert.ErrorIs(t, repo.Delete(ctx, rec.ID), ErrNotFound)
	_, err := repo.GetByID(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiscoveryRepo_WithinTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()
	rec := testutil.NewTestDiscovery()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteDiscoveryRepo(tx).Create(ctx, rec); err != nil {
			return err
		}
		return NewSQLitePreferenceRepo(tx).Set(ctx, "last", rec.ID)
	})
	require.NoError(t, err)

	pref, err := NewSQLitePreferenceRepo(database).Get(ctx, "last")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, pref.Value)
}
