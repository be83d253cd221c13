package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// QuizMetrics holds the counters recorded by pool generation and daily selection.
// A nil *QuizMetrics is valid and records nothing.
type QuizMetrics struct {
	poolsBuilt        metric.Int64Counter
	fallbackQuestions metric.Int64Counter
	generatorFailures metric.Int64Counter
	dailyLookups      metric.Int64Counter
	buildDuration     metric.Float64Histogram
}

// NewQuizMetrics registers the quiz instruments on meter
func NewQuizMetrics(meter metric.Meter) (*QuizMetrics, error) {
	poolsBuilt, err := meter.Int64Counter("speakroots.pools.built",
		metric.WithDescription("Question pools generated"))
	if err != nil {
		return nil, err
	}
	fallback, err := meter.Int64Counter("speakroots.pools.fallback_questions",
		metric.WithDescription("Questions added by fallback padding"))
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("speakroots.generator.failures",
		metric.WithDescription("Generator invocations that failed or panicked"))
	if err != nil {
		return nil, err
	}
	lookups, err := meter.Int64Counter("speakroots.daily.lookups",
		metric.WithDescription("Daily selection lookups by cache result"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("speakroots.pools.build_duration",
		metric.WithDescription("Time spent generating a pool"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return &QuizMetrics{
		poolsBuilt:        poolsBuilt,
		fallbackQuestions: fallback,
		generatorFailures: failures,
		dailyLookups:      lookups,
		buildDuration:     duration,
	}, nil
}

// DefaultQuizMetrics registers the instruments on the global meter provider.
// It returns nil when registration fails.
func DefaultQuizMetrics() *QuizMetrics {
	m, err := NewQuizMetrics(otel.Meter(instrumentationName))
	if err != nil {
		return nil
	}
	return m
}

// PoolBuilt records a finished pool build
func (m *QuizMetrics) PoolBuilt(ctx context.Context, levelKey string, fallback int, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("level_key", levelKey))
	m.poolsBuilt.Add(ctx, 1, attrs)
	if fallback > 0 {
		m.fallbackQuestions.Add(ctx, int64(fallback), attrs)
	}
	m.buildDuration.Record(ctx, float64(elapsed.Microseconds())/1000.0, attrs)
}

// GeneratorFailed records a generator that errored or panicked
func (m *QuizMetrics) GeneratorFailed(ctx context.Context, generator string) {
	if m == nil {
		return
	}
	m.generatorFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("generator", generator)))
}

// DailyLookup records whether a daily selection came from the store
func (m *QuizMetrics) DailyLookup(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.dailyLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
