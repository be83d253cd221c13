package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"speakroots/internal/models"
	"speakroots/internal/observability"
	contextutils "speakroots/internal/utils"
)

// PlayStep is the outcome of answering the current question of a play session
type PlayStep struct {
	Index         int                    `json:"index"`
	Correct       bool                   `json:"correct"`
	CorrectAnswer string                 `json:"correctAnswer"`
	Next          *models.PublicQuestion `json:"next,omitempty"`
	Finished      bool                   `json:"finished"`
	Score         *models.ScoreResult    `json:"score,omitempty"`
}

// PlaySessionManager tracks live question-by-question play-throughs of daily quizzes
type PlaySessionManager struct {
	quiz   QuizServiceInterface
	logger *observability.Logger
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*models.PlaySession
}

// NewPlaySessionManager creates a session manager
func NewPlaySessionManager(quiz QuizServiceInterface, logger *observability.Logger) *PlaySessionManager {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &PlaySessionManager{
		quiz:     quiz,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*models.PlaySession),
	}
}

// Start opens a session over today's quiz for levelKey
func (m *PlaySessionManager) Start(ctx context.Context, levelKey string, count int) (*models.PlaySession, error) {
	quiz, err := m.quiz.DailyQuiz(ctx, levelKey, count)
	if err != nil {
		return nil, err
	}

	session := &models.PlaySession{
		ID:        uuid.NewString(),
		Quiz:      quiz,
		Answers:   make([]models.Answer, 0, len(quiz.Questions)),
		StartedAt: m.now(),
		Finished:  len(quiz.Questions) == 0,
	}
	if session.Finished {
		session.Score, _ = ScoreQuiz(quiz, nil)
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.logger.Info(ctx, "Play session started", map[string]interface{}{
		"session_id": session.ID,
		"level_key":  levelKey,
		"questions":  len(quiz.Questions),
	})
	return session, nil
}

// Answer records the answer to the current question and advances the session
func (m *PlaySessionManager) Answer(ctx context.Context, id, answer string) (*PlayStep, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, sessionNotFound(id)
	}
	if session.Finished {
		return nil, contextutils.NewAppError(contextutils.ErrorCodeConflict, contextutils.SeverityInfo,
			contextutils.ErrConflict.Message, "play session already finished")
	}

	index := session.Position
	question := session.Quiz.Questions[index]
	session.Answers = append(session.Answers, models.Answer{Index: index, Answer: answer})
	session.Position++

	step := &PlayStep{
		Index:         index,
		Correct:       question.IsCorrect(answer),
		CorrectAnswer: question.CorrectAnswer,
	}
	if next, more := session.Current(); more {
		step.Next = &next
		return step, nil
	}

	score, err := ScoreQuiz(session.Quiz, session.Answers)
	if err != nil {
		return nil, err
	}
	session.Finished = true
	session.Score = score
	step.Finished = true
	step.Score = score

	m.logger.Info(ctx, "Play session finished", map[string]interface{}{
		"session_id": id,
		"correct":    score.Correct,
		"total":      score.Total,
	})
	return step, nil
}

// Get returns a copy of the session state
func (m *PlaySessionManager) Get(id string) (models.PlaySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return models.PlaySession{}, sessionNotFound(id)
	}
	snapshot := *session
	snapshot.Answers = append([]models.Answer(nil), session.Answers...)
	return snapshot, nil
}

// End forgets a session
func (m *PlaySessionManager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Active returns the number of open sessions
func (m *PlaySessionManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func sessionNotFound(id string) error {
	return contextutils.NewAppError(contextutils.ErrorCodeSessionNotFound, contextutils.SeverityInfo,
		contextutils.ErrSessionNotFound.Message, id)
}
