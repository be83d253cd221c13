// Package daily picks the date-scoped subset of pool indexes shown to every client on a
// given calendar day. The selection is a pure function of (identifier, date, pool size,
// count) and is cached in a key-value store so repeated calls return the stored result.
package daily

import (
	"context"
	"strconv"
	"strings"
	"time"

	"speakroots/internal/kvstore"
	"speakroots/internal/models"
	"speakroots/internal/observability"
	"speakroots/internal/prng"
	contextutils "speakroots/internal/utils"
)

// Selector computes and caches daily selections
type Selector struct {
	store   kvstore.Store
	now     func() time.Time
	loc     *time.Location
	logger  *observability.Logger
	metrics *observability.QuizMetrics
}

// Option configures a Selector
type Option func(*Selector)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// WithLocation sets the timezone whose calendar date keys the selection
func WithLocation(loc *time.Location) Option {
	return func(s *Selector) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithMetrics records cache hits and misses
func WithMetrics(m *observability.QuizMetrics) Option {
	return func(s *Selector) { s.metrics = m }
}

// NewSelector creates a selector. A nil store disables caching.
func NewSelector(store kvstore.Store, logger *observability.Logger, opts ...Option) *Selector {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	s := &Selector{
		store:  store,
		now:    time.Now,
		loc:    time.UTC,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar date in the selector's timezone
func (s *Selector) Today() string {
	return contextutils.DateKey(s.now(), s.loc)
}

// Location returns the timezone used for date keys
func (s *Selector) Location() *time.Location {
	return s.loc
}

// PickDailyIndexes returns min(count, poolSize) unique indexes in [0, poolSize) for today.
// It never fails: store errors are logged and treated as a miss.
func (s *Selector) PickDailyIndexes(ctx context.Context, poolSize, count int, identifier string) []int {
	return s.PickForDate(ctx, s.Today(), poolSize, count, identifier)
}

// PickForDate is PickDailyIndexes for an explicit YYYY-MM-DD date
func (s *Selector) PickForDate(ctx context.Context, date string, poolSize, count int, identifier string) []int {
	poolSize, count = Clamp(poolSize, count)

	ctx, span := observability.TraceDailyFunction(ctx, "PickForDate",
		observability.AttributeIdentifier(identifier),
		observability.AttributeDate(date),
		observability.AttributePoolSize(poolSize),
		observability.AttributeCount(count),
	)
	defer span.End()

	if count == 0 {
		return []int{}
	}

	// ':' would let one identifier's keys fall under another's Forget prefix
	if strings.Contains(identifier, ":") {
		return Compute(identifier, date, poolSize, count)
	}

	key := models.DailyCacheKey(identifier, date, poolSize, count)
	if cached, ok := s.load(ctx, key, poolSize, count); ok {
		s.metrics.DailyLookup(ctx, true)
		return cached
	}
	s.metrics.DailyLookup(ctx, false)

	indexes := Compute(identifier, date, poolSize, count)
	s.save(ctx, key, indexes)
	return indexes
}

// Selection wraps PickForDate in a DailySelection
func (s *Selector) Selection(ctx context.Context, date string, poolSize, count int, identifier string) models.DailySelection {
	poolSize, count = Clamp(poolSize, count)
	return models.DailySelection{
		Identifier: identifier,
		Date:       date,
		PoolSize:   poolSize,
		Count:      count,
		Indexes:    s.PickForDate(ctx, date, poolSize, count, identifier),
	}
}

// Forget drops every cached selection for identifier
func (s *Selector) Forget(ctx context.Context, identifier string) (int, error) {
	if strings.Contains(identifier, ":") {
		return 0, contextutils.InvalidInputf("invalid identifier %q", identifier)
	}
	if s.store == nil {
		return 0, nil
	}
	return s.store.DeletePrefix(ctx, "daily:"+identifier+":")
}

func (s *Selector) load(ctx context.Context, key string, poolSize, count int) ([]int, bool) {
	if s.store == nil {
		return nil, false
	}

	var cached []int
	if err := kvstore.GetJSON(ctx, s.store, key, &cached); err != nil {
		if !kvstore.IsNotFound(err) {
			s.logger.Warn(ctx, "Ignoring unreadable daily selection", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}
	if !models.IndexesValid(cached, poolSize, count) {
		s.logger.Warn(ctx, "Ignoring invalid daily selection", map[string]interface{}{
			"key":     key,
			"indexes": cached,
		})
		return nil, false
	}
	return cached, true
}

func (s *Selector) save(ctx context.Context, key string, indexes []int) {
	if s.store == nil {
		return
	}
	if err := kvstore.SetJSON(ctx, s.store, key, indexes); err != nil {
		s.logger.Warn(ctx, "Failed to persist daily selection", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Clamp normalises inputs: a negative pool size becomes 0 and count is bounded to [0, poolSize]
func Clamp(poolSize, count int) (int, int) {
	if poolSize < 0 {
		poolSize = 0
	}
	if count < 0 {
		count = 0
	}
	if count > poolSize {
		count = poolSize
	}
	return poolSize, count
}

// Seed hashes the selection inputs into the mulberry32 seed
func Seed(identifier, date string, poolSize, count int) uint32 {
	return prng.HashString(identifier + "|" + date + "|" + strconv.Itoa(poolSize) + "|" + strconv.Itoa(count))
}

// Compute derives the selection without touching any cache
func Compute(identifier, date string, poolSize, count int) []int {
	poolSize, count = Clamp(poolSize, count)
	if count == 0 {
		return []int{}
	}
	perm := prng.Permutation(prng.NewMulberry32(Seed(identifier, date, poolSize, count)), poolSize)
	return perm[:count:count]
}
