package services

import (
	"context"

	"speakroots/internal/config"
	"speakroots/internal/models"
	"speakroots/internal/observability"
	"speakroots/internal/quizgen"
	contextutils "speakroots/internal/utils"

	"go.opentelemetry.io/otel/attribute"
)

// EventType names a discrete user action handled by the Dispatcher
type EventType string

// Event types
const (
	EventStartDailyQuiz EventType = "start_daily_quiz"
	EventBuildPool      EventType = "build_pool"
	EventPickIndexes    EventType = "pick_indexes"
	EventSubmitAnswers  EventType = "submit_answers"
	EventListLevels     EventType = "list_levels"
)

// EventTypes lists every event the dispatcher understands
var EventTypes = []EventType{EventStartDailyQuiz, EventBuildPool, EventPickIndexes, EventSubmitAnswers, EventListLevels}

// Event is one request to the dispatcher; which fields matter depends on Type
type Event struct {
	Type       EventType       `json:"type" binding:"required"`
	LevelKey   string          `json:"level_key,omitempty"`
	Date       string          `json:"date,omitempty"`
	PoolSize   int             `json:"pool_size,omitempty"`
	Count      int             `json:"count,omitempty"`
	Identifier string          `json:"identifier,omitempty"`
	Answers    []models.Answer `json:"answers,omitempty"`
}

// EventResult carries whichever outputs the event produced
type EventResult struct {
	Type      EventType               `json:"type"`
	LevelKey  string                  `json:"level_key,omitempty"`
	Date      string                  `json:"date,omitempty"`
	PoolSize  int                     `json:"pool_size,omitempty"`
	Indexes   []int                   `json:"indexes,omitempty"`
	Questions []models.PublicQuestion `json:"questions,omitempty"`
	Score     *models.ScoreResult     `json:"score,omitempty"`
	Levels    []quizgen.LevelInfo     `json:"levels,omitempty"`
}

// Dispatcher routes events to the quiz service through a single entry point
type Dispatcher struct {
	quiz   QuizServiceInterface
	logger *observability.Logger
}

// NewDispatcher creates a dispatcher
func NewDispatcher(quiz QuizServiceInterface, logger *observability.Logger) *Dispatcher {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &Dispatcher{quiz: quiz, logger: logger}
}

// Dispatch handles one event
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (result *EventResult, err error) {
	ctx, span := observability.TraceQuizFunction(ctx, "Dispatch", attribute.String("event.type", string(ev.Type)))
	defer observability.FinishSpan(span, &err)

	d.logger.Debug(ctx, "Dispatching event", map[string]interface{}{
		"type":      string(ev.Type),
		"level_key": ev.LevelKey,
	})

	switch ev.Type {
	case EventStartDailyQuiz:
		quiz, err := d.dailyQuiz(ctx, ev)
		if err != nil {
			return nil, err
		}
		return &EventResult{
			Type:      ev.Type,
			LevelKey:  quiz.LevelKey,
			Date:      quiz.Date,
			PoolSize:  quiz.PoolSize,
			Indexes:   quiz.Indexes,
			Questions: quiz.PublicQuestions(),
		}, nil

	case EventBuildPool:
		pool, err := d.quiz.Pool(ctx, ev.LevelKey)
		if err != nil {
			return nil, err
		}
		return &EventResult{Type: ev.Type, LevelKey: ev.LevelKey, PoolSize: pool.Size()}, nil

	case EventPickIndexes:
		if !contextutils.IsValidKey(ev.Identifier) {
			return nil, contextutils.InvalidInputf("invalid identifier %q", ev.Identifier)
		}
		if ev.PoolSize > config.MaxPoolSize {
			return nil, contextutils.InvalidInputf("pool_size must be at most %d, got %d", config.MaxPoolSize, ev.PoolSize)
		}
		return &EventResult{
			Type:     ev.Type,
			Date:     d.quiz.Today(),
			PoolSize: ev.PoolSize,
			Indexes:  d.quiz.DailyIndexes(ctx, ev.PoolSize, ev.Count, ev.Identifier),
		}, nil

	case EventSubmitAnswers:
		score, err := d.quiz.Score(ctx, ev.LevelKey, ev.Date, ev.Count, ev.Answers)
		if err != nil {
			return nil, err
		}
		return &EventResult{Type: ev.Type, LevelKey: ev.LevelKey, Date: score.Date, Score: score}, nil

	case EventListLevels:
		return &EventResult{Type: ev.Type, Levels: d.quiz.Levels()}, nil

	default:
		return nil, contextutils.NewAppError(contextutils.ErrorCodeUnknownEvent, contextutils.SeverityWarn,
			contextutils.ErrUnknownEvent.Message, string(ev.Type))
	}
}

func (d *Dispatcher) dailyQuiz(ctx context.Context, ev Event) (*models.DailyQuiz, error) {
	if ev.Date != "" {
		return d.quiz.DailyQuizForDate(ctx, ev.LevelKey, ev.Date, ev.Count)
	}
	return d.quiz.DailyQuiz(ctx, ev.LevelKey, ev.Count)
}
