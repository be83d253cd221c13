package quizgen

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"speakroots/internal/config"
	"speakroots/internal/models"
	"speakroots/internal/observability"
	"speakroots/internal/prng"
)

// Builder assembles question pools. The zero value is not usable; use NewBuilder.
type Builder struct {
	attemptBudget int
	logger        *observability.Logger
	metrics       *observability.QuizMetrics
	tableFor      func(models.LevelKey) []Weighted
}

// BuilderOption configures a Builder
type BuilderOption func(*Builder)

// WithAttemptBudget bounds generator invocations per pool
func WithAttemptBudget(n int) BuilderOption {
	return func(b *Builder) {
		if n >= 0 {
			b.attemptBudget = n
		}
	}
}

// WithLogger sets the builder logger
func WithLogger(l *observability.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMetrics records pool and generator metrics
func WithMetrics(m *observability.QuizMetrics) BuilderOption {
	return func(b *Builder) { b.metrics = m }
}

// WithTable replaces the level table lookup
func WithTable(fn func(models.LevelKey) []Weighted) BuilderOption {
	return func(b *Builder) {
		if fn != nil {
			b.tableFor = fn
		}
	}
}

// NewBuilder creates a builder with the default attempt budget and level table
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		attemptBudget: config.DefaultAttemptBudget,
		logger:        observability.NewNopLogger(),
		tableFor:      TableFor,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Result is a built pool plus construction statistics
type Result struct {
	Items []models.QuestionItem
	// Attempts counts generator invocations
	Attempts int
	// Rejected counts candidates dropped as failed, malformed or duplicate
	Rejected int
	// Fallback counts padding questions appended after the attempt budget ran out
	Fallback int
}

// BuildPool builds a pool of the default size from an ambient random source
func BuildPool(levelKey string) []models.QuestionItem {
	return BuildPoolWithSource(levelKey, prng.NewAmbient())
}

// BuildPoolWithSource builds a pool of the default size from r
func BuildPoolWithSource(levelKey string, r prng.Source) []models.QuestionItem {
	return NewBuilder().Build(context.Background(), levelKey, config.DefaultPoolSize, r).Items
}

// Build generates size unique questions for levelKey. It never fails: generator errors and
// panics are skipped, and a pool still short after the attempt budget is padded with
// fallback addition questions.
func (b *Builder) Build(ctx context.Context, levelKey string, size int, r prng.Source) Result {
	start := time.Now()
	if size < 0 {
		size = 0
	}

	ctx, span := observability.TraceQuizFunction(ctx, "BuildPool",
		observability.AttributeLevelKey(levelKey),
		observability.AttributePoolSize(size),
	)
	defer span.End()

	table := b.tableFor(models.ParseLevelKey(levelKey))
	res := Result{Items: make([]models.QuestionItem, 0, size)}
	seen := make(map[string]struct{}, size)

	if len(table) > 0 {
		for len(res.Items) < size && res.Attempts < b.attemptBudget {
			res.Attempts++
			gen := pickWeighted(r, table)

			cand, err := gen.invoke(r)
			if err != nil {
				res.Rejected++
				b.metrics.GeneratorFailed(ctx, gen.Name)
				b.logger.Debug(ctx, "Generator failed", map[string]interface{}{
					"generator": gen.Name,
					"error":     err.Error(),
				})
				continue
			}

			item, ok := Normalize(r, cand)
			if !ok {
				res.Rejected++
				b.metrics.GeneratorFailed(ctx, gen.Name)
				continue
			}
			if _, dup := seen[item.Prompt]; dup {
				res.Rejected++
				continue
			}
			seen[item.Prompt] = struct{}{}
			res.Items = append(res.Items, item)
		}
	}

	for len(res.Items) < size {
		item := fallbackQuestion(r, seen)
		seen[item.Prompt] = struct{}{}
		res.Items = append(res.Items, item)
		res.Fallback++
	}

	elapsed := time.Since(start)
	b.metrics.PoolBuilt(ctx, levelKey, res.Fallback, elapsed)
	span.SetAttributes(observability.AttributeCount(len(res.Items)))

	fields := map[string]interface{}{
		"level_key": levelKey,
		"size":      len(res.Items),
		"attempts":  res.Attempts,
		"rejected":  res.Rejected,
		"fallback":  res.Fallback,
		"elapsed":   elapsed.String(),
	}
	if res.Fallback > 0 {
		b.logger.Info(ctx, "Pool padded with fallback questions", fields)
	} else {
		b.logger.Debug(ctx, "Pool built", fields)
	}
	return res
}

// fallbackQuestion returns a two-operand addition whose prompt is not in seen.
// Random operands are tried first; the search then walks a widening grid so it always terminates.
func fallbackQuestion(r prng.Source, seen map[string]struct{}) models.QuestionItem {
	for i := 0; i < 50; i++ {
		a, b := prng.IntRange(r, 1, 99), prng.IntRange(r, 1, 99)
		if item, ok := additionItem(r, a, b, seen); ok {
			return item
		}
	}
	for a := 100; ; a++ {
		for b := 1; b <= a; b++ {
			if item, ok := additionItem(r, a, b, seen); ok {
				return item
			}
		}
	}
}

func additionItem(r prng.Source, a, b int, seen map[string]struct{}) (models.QuestionItem, bool) {
	prompt := fmt.Sprintf("What is %d + %d?", a, b)
	if _, dup := seen[prompt]; dup {
		return models.QuestionItem{}, false
	}
	answer := a + b
	choices := append(intStrings(NumericDistractors(r, answer, distractorsPerQuestion, false)), strconv.Itoa(answer))
	prng.Shuffle(r, choices)
	return models.QuestionItem{Prompt: prompt, Choices: choices, CorrectAnswer: strconv.Itoa(answer)}, true
}
