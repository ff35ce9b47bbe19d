package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/leadflow/internal/analysis"
	"github.com/alexanderramin/leadflow/internal/bot"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/repository"
	"github.com/alexanderramin/leadflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingUseCaseObserver struct {
	events []UseCaseEvent
}

func (o *recordingUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}

func newDiscoveryService(t *testing.T, obs UseCaseObserver) (DiscoveryService, repository.PreferenceRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	prefs := repository.NewSQLitePreferenceRepo(database)
	svc := NewDiscoveryService(
		repository.NewSQLiteDiscoveryRepo(database),
		prefs,
		testutil.NewTestUoW(database),
		obs,
	)
	return svc, prefs
}

func sampleCompletion() bot.Completion {
	data := analysis.Build(testutil.SampleResponses())
	return bot.Completion{
		ConversationID: "conv-1",
		Data:           data,
		LeadScore:      analysis.LeadScore(data.Complexity),
		StartedAt:      time.Now().Add(-2 * time.Minute),
		Duration:       2 * time.Minute,
	}
}

func TestDiscoveryService_RecordAndLatest(t *testing.T) {
	obs := &recordingUseCaseObserver{}
	svc, _ := newDiscoveryService(t, obs)
	ctx := context.Background()

	rec, err := svc.Record(ctx, sampleCompletion())
	require.NoError(t, err)
	assert.Equal(t, "Dana", rec.Name)
	assert.Equal(t, "dana@example.com", rec.Email)
	assert.Equal(t, 9, rec.LeadScore)
	assert.Equal(t, 120, rec.DurationSec)
	assert.False(t, rec.Submitted)

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, latest.ID)

	list, err := svc.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ConversationID, got.ConversationID)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "record-discovery", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, "complex", obs.events[0].Fields["complexity"])
}

func TestDiscoveryService_RecordWithoutDataFails(t *testing.T) {
	obs := &recordingUseCaseObserver{}
	svc, _ := newDiscoveryService(t, obs)

	_, err := svc.Record(context.Background(), bot.Completion{ConversationID: "c"})

	require.Error(t, err)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}

func TestDiscoveryService_LatestWhenEmpty(t *testing.T) {
	svc, _ := newDiscoveryService(t, nil)

	_, err := svc.Latest(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGateService_DismissAndReset(t *testing.T) {
	database := testutil.NewTestDB(t)
	obs := &recordingUseCaseObserver{}
	gates := NewGateService(repository.NewSQLitePreferenceRepo(database), obs)
	ctx := context.Background()

	show, err := gates.ShouldShow(ctx, domain.GateOnboardingDismissed)
	require.NoError(t, err)
	assert.True(t, show)

	require.NoError(t, gates.Dismiss(ctx, domain.GateOnboardingDismissed))
	show, err = gates.ShouldShow(ctx, domain.GateOnboardingDismissed)
	require.NoError(t, err)
	assert.False(t, show)

	n, err := gates.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	show, err = gates.ShouldShow(ctx, domain.GateOnboardingDismissed)
	require.NoError(t, err)
	assert.True(t, show)

	n, err = gates.Reset(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, obs.events, 2)
}

func TestLogUseCaseObserver_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "record-discovery",
		Success:  true,
		Duration: 15 * time.Millisecond,
		Fields:   map[string]any{"submitted": true, "complexity": "simple"},
	})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "reset-gates", Err: errors.New("locked")})

	out := buf.String()
	assert.Contains(t, out, "use_case=record-discovery")
	assert.Contains(t, out, "duration_ms=15")
	assert.Contains(t, out, "complexity=simple")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=locked")
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
