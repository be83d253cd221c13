package services

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"speakroots/internal/config"
	"speakroots/internal/daily"
	"speakroots/internal/kvstore"
	"speakroots/internal/models"
	"speakroots/internal/observability"
	"speakroots/internal/prng"
	"speakroots/internal/quizgen"
	contextutils "speakroots/internal/utils"
)

const poolKeyPrefix = "pool:"

// QuizServiceInterface defines pool, daily quiz and scoring operations
type QuizServiceInterface interface {
	Pool(ctx context.Context, levelKey string) (*models.QuestionPool, error)
	DailyIndexes(ctx context.Context, poolSize, count int, identifier string) []int
	DailyQuiz(ctx context.Context, levelKey string, count int) (*models.DailyQuiz, error)
	DailyQuizForDate(ctx context.Context, levelKey, date string, count int) (*models.DailyQuiz, error)
	Score(ctx context.Context, levelKey, date string, count int, answers []models.Answer) (*models.ScoreResult, error)
	Levels() []quizgen.LevelInfo
	InvalidatePool(ctx context.Context, levelKey string) (int, error)
	Today() string
}

type poolEntry struct {
	mu   sync.Mutex
	pool *models.QuestionPool
}

// QuizService builds and caches pools and derives the daily quiz from them
type QuizService struct {
	cfg      *config.Config
	logger   *observability.Logger
	store    kvstore.Store
	selector *daily.Selector
	builder  *quizgen.Builder
	codec    *PoolCodec
	now      func() time.Time

	mu    sync.Mutex
	pools map[string]*poolEntry
}

// NewQuizService wires a quiz service. store may be nil, which disables persistence.
func NewQuizService(cfg *config.Config, store kvstore.Store, selector *daily.Selector, builder *quizgen.Builder, logger *observability.Logger) (*QuizService, error) {
	codec, err := NewPoolCodec()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &QuizService{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		selector: selector,
		builder:  builder,
		codec:    codec,
		now:      time.Now,
		pools:    make(map[string]*poolEntry),
	}, nil
}

// Today returns the calendar date the daily selection currently uses
func (s *QuizService) Today() string {
	return s.selector.Today()
}

// Levels lists the level catalogue
func (s *QuizService) Levels() []quizgen.LevelInfo {
	return quizgen.Catalogue()
}

// Startup builds the pools listed in quiz.prewarm
func (s *QuizService) Startup(ctx context.Context) error {
	for _, levelKey := range s.cfg.Quiz.Prewarm {
		pool, err := s.Pool(ctx, levelKey)
		if err != nil {
			return contextutils.WrapErrorf(err, "failed to prewarm pool %s", levelKey)
		}
		s.logger.Info(ctx, "Pool prewarmed", map[string]interface{}{"level_key": levelKey, "size": pool.Size()})
	}
	return nil
}

// PoolSize returns the configured pool size for a level key
func (s *QuizService) PoolSize(levelKey string) int {
	if size := s.cfg.PoolSizeFor(string(models.ParseLevelKey(levelKey).Subject)); size > 0 {
		return size
	}
	return config.DefaultPoolSize
}

// Pool returns the pool for levelKey, building it at most once per process.
// Concurrent first calls for the same key wait for a single build.
func (s *QuizService) Pool(ctx context.Context, levelKey string) (result *models.QuestionPool, err error) {
	ctx, span := observability.TraceQuizFunction(ctx, "Pool", observability.AttributeLevelKey(levelKey))
	defer observability.FinishSpan(span, &err)

	if err := ValidateLevelKey(levelKey); err != nil {
		return nil, err
	}

	size := s.PoolSize(levelKey)
	key := poolStoreKey(levelKey, size)

	s.mu.Lock()
	entry, ok := s.pools[key]
	if !ok {
		entry = &poolEntry{}
		s.pools[key] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.pool != nil {
		return entry.pool, nil
	}
	if pool := s.loadPool(ctx, key, levelKey, size); pool != nil {
		entry.pool = pool
		return pool, nil
	}

	pool := s.buildPool(ctx, levelKey, size)
	s.savePool(ctx, key, pool)
	entry.pool = pool
	return pool, nil
}

// DailyIndexes exposes the daily selector directly
func (s *QuizService) DailyIndexes(ctx context.Context, poolSize, count int, identifier string) []int {
	return s.selector.PickDailyIndexes(ctx, poolSize, count, identifier)
}

// DailyQuiz returns today's questions for levelKey
func (s *QuizService) DailyQuiz(ctx context.Context, levelKey string, count int) (*models.DailyQuiz, error) {
	return s.DailyQuizForDate(ctx, levelKey, s.selector.Today(), count)
}

// DailyQuizForDate returns the questions selected for levelKey on date (YYYY-MM-DD).
// A non-positive count uses the configured daily count.
func (s *QuizService) DailyQuizForDate(ctx context.Context, levelKey, date string, count int) (result *models.DailyQuiz, err error) {
	ctx, span := observability.TraceQuizFunction(ctx, "DailyQuizForDate",
		observability.AttributeLevelKey(levelKey),
		observability.AttributeDate(date),
	)
	defer observability.FinishSpan(span, &err)

	if _, err := contextutils.ParseDate(date, s.selector.Location()); err != nil {
		return nil, err
	}
	count, err = s.dailyCount(count)
	if err != nil {
		return nil, err
	}

	pool, err := s.Pool(ctx, levelKey)
	if err != nil {
		return nil, err
	}

	indexes := s.selector.PickForDate(ctx, date, pool.Size(), count, levelKey)
	span.SetAttributes(observability.AttributeCount(len(indexes)))

	return &models.DailyQuiz{
		LevelKey:  levelKey,
		Date:      date,
		PoolSize:  pool.Size(),
		Indexes:   indexes,
		Questions: pool.Select(indexes),
	}, nil
}

// Score checks answers against the daily quiz for levelKey on date; an empty date means today.
// Unanswered questions count as wrong.
func (s *QuizService) Score(ctx context.Context, levelKey, date string, count int, answers []models.Answer) (result *models.ScoreResult, err error) {
	ctx, span := observability.TraceQuizFunction(ctx, "Score", observability.AttributeLevelKey(levelKey))
	defer observability.FinishSpan(span, &err)

	if date == "" {
		date = s.selector.Today()
	}
	quiz, err := s.DailyQuizForDate(ctx, levelKey, date, count)
	if err != nil {
		return nil, err
	}
	return ScoreQuiz(quiz, answers)
}

// ScoreQuiz grades answers against quiz
func ScoreQuiz(quiz *models.DailyQuiz, answers []models.Answer) (*models.ScoreResult, error) {
	chosen := make(map[int]string, len(answers))
	for _, a := range answers {
		if a.Index < 0 || a.Index >= len(quiz.Questions) {
			return nil, contextutils.NewAppError(contextutils.ErrorCodeInvalidAnswer, contextutils.SeverityWarn,
				contextutils.ErrInvalidAnswer.Message, "question index "+strconv.Itoa(a.Index)+" out of range")
		}
		if _, dup := chosen[a.Index]; dup {
			return nil, contextutils.NewAppError(contextutils.ErrorCodeInvalidAnswer, contextutils.SeverityWarn,
				contextutils.ErrInvalidAnswer.Message, "question index "+strconv.Itoa(a.Index)+" answered twice")
		}
		chosen[a.Index] = a.Answer
	}

	res := &models.ScoreResult{
		LevelKey: quiz.LevelKey,
		Date:     quiz.Date,
		Total:    len(quiz.Questions),
		Results:  make([]models.QuestionResult, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		answer := chosen[i]
		correct := q.IsCorrect(answer)
		if correct {
			res.Correct++
		}
		res.Results[i] = models.QuestionResult{
			Index:         i,
			Prompt:        q.Prompt,
			Answer:        answer,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       correct,
		}
	}
	return res, nil
}

// InvalidatePool drops the cached and persisted pools for levelKey and reports how many
// persisted entries were removed
func (s *QuizService) InvalidatePool(ctx context.Context, levelKey string) (removed int, err error) {
	ctx, span := observability.TraceQuizFunction(ctx, "InvalidatePool", observability.AttributeLevelKey(levelKey))
	defer observability.FinishSpan(span, &err)

	if err := ValidateLevelKey(levelKey); err != nil {
		return 0, err
	}

	prefix := poolKeyPrefix + levelKey + ":"
	s.mu.Lock()
	for key := range s.pools {
		if strings.HasPrefix(key, prefix) {
			delete(s.pools, key)
		}
	}
	s.mu.Unlock()

	if s.store == nil {
		return 0, nil
	}
	removed, err = s.store.DeletePrefix(ctx, prefix)
	if err != nil {
		return 0, contextutils.WrapErrorf(err, "failed to remove persisted pools for %s", levelKey)
	}
	s.logger.Info(ctx, "Pool invalidated", map[string]interface{}{"level_key": levelKey, "removed": removed})
	return removed, nil
}

func (s *QuizService) dailyCount(count int) (int, error) {
	if count <= 0 {
		count = s.cfg.Quiz.DailyCount
	}
	if count <= 0 {
		count = config.DefaultDailyCount
	}
	if count > config.MaxDailyCount {
		return 0, contextutils.InvalidInputf("count must be at most %d", config.MaxDailyCount)
	}
	return count, nil
}

func (s *QuizService) buildPool(ctx context.Context, levelKey string, size int) *models.QuestionPool {
	pool := &models.QuestionPool{LevelKey: levelKey, GeneratedAt: s.now().UTC()}

	var src prng.Source
	if s.cfg.Quiz.RandomPools {
		src = prng.NewAmbient()
	} else {
		seed := prng.HashString(levelKey)
		pool.Seed = &seed
		src = prng.NewMulberry32(seed)
	}

	pool.Items = s.builder.Build(ctx, levelKey, size, src).Items
	return pool
}

// loadPool returns a persisted pool of the expected size, or nil
func (s *QuizService) loadPool(ctx context.Context, key, levelKey string, size int) *models.QuestionPool {
	if s.store == nil {
		return nil
	}
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if !kvstore.IsNotFound(err) {
			s.logger.Warn(ctx, "Failed to read persisted pool", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return nil
	}
	pool, err := s.codec.Decode(data)
	if err != nil {
		s.logger.Warn(ctx, "Discarding persisted pool", map[string]interface{}{"key": key, "error": err.Error()})
		return nil
	}
	if pool.LevelKey != levelKey || pool.Size() != size {
		s.logger.Warn(ctx, "Discarding persisted pool with wrong shape", map[string]interface{}{
			"key":       key,
			"level_key": pool.LevelKey,
			"size":      pool.Size(),
		})
		return nil
	}
	return pool
}

func (s *QuizService) savePool(ctx context.Context, key string, pool *models.QuestionPool) {
	if s.store == nil {
		return
	}
	data, err := s.codec.Encode(pool)
	if err == nil {
		err = s.store.Set(ctx, key, data)
	}
	if err != nil {
		s.logger.Warn(ctx, "Failed to persist pool", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func poolStoreKey(levelKey string, size int) string {
	return poolKeyPrefix + levelKey + ":" + strconv.Itoa(size)
}

// ValidateLevelKey rejects keys that cannot be used in store keys or URLs
func ValidateLevelKey(levelKey string) error {
	if !contextutils.IsValidKey(levelKey) {
		return contextutils.InvalidInputf("invalid level key %q", levelKey)
	}
	return nil
}
