package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speakroots/internal/config"
	"speakroots/internal/kvstore"
	"speakroots/internal/services"
)

func TestServiceContainer_InitializeAndShutdown(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewDefaultConfig()
	cfg.Quiz.Prewarm = []string{"grade1-math"}

	sc := NewServiceContainer(cfg, nil)
	require.NoError(t, sc.Initialize(ctx))

	store, err := sc.GetStore()
	require.NoError(t, err)
	assert.IsType(t, &kvstore.Traced{}, store)

	// prewarmed pool is already persisted
	_, err = store.Get(ctx, "pool:grade1-math:100")
	assert.NoError(t, err)

	quiz, err := sc.GetQuizService()
	require.NoError(t, err)
	dailyQuiz, err := quiz.DailyQuiz(ctx, "grade1-math", 3)
	require.NoError(t, err)
	assert.Len(t, dailyQuiz.Questions, 3)

	_, err = sc.GetSelector()
	assert.NoError(t, err)
	_, err = sc.GetDispatcher()
	assert.NoError(t, err)
	plays, err := sc.GetPlaySessionManager()
	require.NoError(t, err)
	assert.Zero(t, plays.Active())

	_, err = GetServiceAs[*services.Dispatcher](sc, ServiceQuiz)
	assert.Error(t, err)
	_, err = sc.GetService("missing")
	assert.Error(t, err)

	require.NoError(t, sc.Shutdown(ctx))
	_, err = sc.GetQuizService()
	assert.Error(t, err)
}

func TestServiceContainer_SQLitePersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := config.NewDefaultConfig()
	cfg.Store.Backend = config.StoreSQLite
	cfg.Store.Path = filepath.Join(t.TempDir(), "speakroots.db")

	first := NewServiceContainer(cfg, nil)
	require.NoError(t, first.Initialize(ctx))
	selector, err := first.GetSelector()
	require.NoError(t, err)
	today := selector.PickForDate(ctx, "2026-10-17", 100, 10, "english_class3")
	require.NoError(t, first.Shutdown(ctx))

	second := NewServiceContainer(cfg, nil)
	require.NoError(t, second.Initialize(ctx))
	defer func() { _ = second.Shutdown(ctx) }()

	store, err := second.GetStore()
	require.NoError(t, err)
	_, err = store.Get(ctx, "daily:english_class3:2026-10-17:100:10")
	assert.NoError(t, err)

	selector, err = second.GetSelector()
	require.NoError(t, err)
	assert.Equal(t, today, selector.PickForDate(ctx, "2026-10-17", 100, 10, "english_class3"))
}

func TestServiceContainer_BadBackend(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Store.Backend = "floppy"

	err := NewServiceContainer(cfg, nil).Initialize(context.Background())
	assert.Error(t, err)
}

func TestServiceContainer_PrewarmFailureCleansUp(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Quiz.Prewarm = []string{"not valid"}

	sc := NewServiceContainer(cfg, nil)
	require.Error(t, sc.Initialize(context.Background()))
	_, err := sc.GetStore()
	assert.Error(t, err)
}
