package bot

import (
	"context"
	"testing"

	"github.com/alexanderramin/leadflow/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyStrategy counts Cleanup calls.
type spyStrategy struct {
	*QAStrategy
	cleanups int
}

func (s *spyStrategy) Cleanup() {
	s.cleanups++
	s.QAStrategy.Cleanup()
}

func spyFactory() (*Factory, *[]*spyStrategy) {
	f := NewFactory(Options{Scheduler: ImmediateScheduler{}})
	var built []*spyStrategy
	f.construct = func(mode Mode, id string) (Strategy, error) {
		if _, err := ParseMode(string(mode)); err != nil {
			return nil, err
		}
		s := &spyStrategy{QAStrategy: NewQAStrategy(id, nil, nil, nil)}
		built = append(built, s)
		return s, nil
	}
	return f, &built
}

func TestKey(t *testing.T) {
	assert.Equal(t, "qa-abc", Key(ModeQA, "abc"))
	assert.Equal(t, "project-abc", Key(ModeProject, "abc"))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Project ")
	require.NoError(t, err)
	assert.Equal(t, ModeProject, m)

	_, err = ParseMode("sales")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestFactory_CreateTwiceRetiresFirst(t *testing.T) {
	f, built := spyFactory()

	first, err := f.CreateStrategy(ModeQA, "c1")
	require.NoError(t, err)
	second, err := f.CreateStrategy(ModeQA, "c1")
	require.NoError(t, err)

	require.Len(t, *built, 2)
	assert.Equal(t, 1, (*built)[0].cleanups)
	assert.Zero(t, (*built)[1].cleanups)
	assert.Equal(t, 1, f.Len())

	got, ok := f.Get(ModeQA, "c1")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.NotSame(t, first, got)
}

func TestFactory_KeysAreIndependent(t *testing.T) {
	f, built := spyFactory()

	_, err := f.CreateStrategy(ModeQA, "c1")
	require.NoError(t, err)
	_, err = f.CreateStrategy(ModeQA, "c2")
	require.NoError(t, err)
	_, err = f.CreateStrategy(ModeProject, "c1")
	require.NoError(t, err)

	assert.Equal(t, 3, f.Len())
	for _, s := range *built {
		assert.Zero(t, s.cleanups)
	}
}

func TestFactory_UnknownModeLeavesRegistryUntouched(t *testing.T) {
	f := NewFactory(Options{})
	_, err := f.CreateStrategy(ModeQA, "c1")
	require.NoError(t, err)

	_, err = f.CreateStrategy(Mode("sales"), "c1")
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.Equal(t, 1, f.Len())

	_, err = f.SwitchStrategy(ModeQA, Mode("sales"), "c1")
	assert.ErrorIs(t, err, ErrUnknownMode)
	_, ok := f.Get(ModeQA, "c1")
	assert.True(t, ok)
}

func TestFactory_SwitchStrategy(t *testing.T) {
	f, built := spyFactory()
	_, err := f.CreateStrategy(ModeQA, "c1")
	require.NoError(t, err)

	_, err = f.SwitchStrategy(ModeQA, ModeProject, "c1")
	require.NoError(t, err)

	assert.Equal(t, 1, (*built)[0].cleanups)
	assert.Equal(t, 1, f.Len())
	_, ok := f.Get(ModeQA, "c1")
	assert.False(t, ok)
	_, ok = f.Get(ModeProject, "c1")
	assert.True(t, ok)
}

func TestFactory_CleanupAllStrategies(t *testing.T) {
	f, built := spyFactory()
	for _, id := range []string{"a", "b", "c"} {
		_, err := f.CreateStrategy(ModeQA, id)
		require.NoError(t, err)
	}

	f.CleanupAllStrategies()
	f.CleanupAllStrategies()

	assert.Zero(t, f.Len())
	for _, s := range *built {
		assert.Equal(t, 1, s.cleanups)
	}
}

func TestFactory_BuildsConcreteStrategies(t *testing.T) {
	f := NewFactory(Options{Catalog: catalog.Default(), Scheduler: ImmediateScheduler{}})

	qa, err := f.CreateStrategy(ModeQA, "c1")
	require.NoError(t, err)
	assert.IsType(t, &QAStrategy{}, qa)
	assert.Equal(t, ModeQA, qa.Mode())

	project, err := f.CreateStrategy(ModeProject, "c1")
	require.NoError(t, err)
	assert.IsType(t, &ProjectStrategy{}, project)
	project.Initialize(context.Background())
	assert.Equal(t, "c1", project.State().ConversationID)
	require.NotNil(t, project.CurrentQuestion())
}
