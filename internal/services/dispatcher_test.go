package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"speakroots/internal/config"
	"speakroots/internal/models"
	"speakroots/internal/quizgen"
	contextutils "speakroots/internal/utils"
)

type mockQuizService struct {
	mock.Mock
}

func (m *mockQuizService) Pool(ctx context.Context, levelKey string) (*models.QuestionPool, error) {
	args := m.Called(ctx, levelKey)
	if pool := args.Get(0); pool != nil {
		return pool.(*models.QuestionPool), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuizService) DailyIndexes(ctx context.Context, poolSize, count int, identifier string) []int {
	args := m.Called(ctx, poolSize, count, identifier)
	return args.Get(0).([]int)
}

func (m *mockQuizService) DailyQuiz(ctx context.Context, levelKey string, count int) (*models.DailyQuiz, error) {
	args := m.Called(ctx, levelKey, count)
	if quiz := args.Get(0); quiz != nil {
		return quiz.(*models.DailyQuiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuizService) DailyQuizForDate(ctx context.Context, levelKey, date string, count int) (*models.DailyQuiz, error) {
	args := m.Called(ctx, levelKey, date, count)
	if quiz := args.Get(0); quiz != nil {
		return quiz.(*models.DailyQuiz), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuizService) Score(ctx context.Context, levelKey, date string, count int, answers []models.Answer) (*models.ScoreResult, error) {
	args := m.Called(ctx, levelKey, date, count, answers)
	if score := args.Get(0); score != nil {
		return score.(*models.ScoreResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockQuizService) Levels() []quizgen.LevelInfo {
	return m.Called().Get(0).([]quizgen.LevelInfo)
}

func (m *mockQuizService) InvalidatePool(ctx context.Context, levelKey string) (int, error) {
	args := m.Called(ctx, levelKey)
	return args.Int(0), args.Error(1)
}

func (m *mockQuizService) Today() string {
	return m.Called().String(0)
}

func sampleQuiz(levelKey, date string) *models.DailyQuiz {
	return &models.DailyQuiz{
		LevelKey: levelKey,
		Date:     date,
		PoolSize: 3,
		Indexes:  []int{2, 0},
		Questions: []models.QuestionItem{
			{Prompt: "What is 1 + 1?", Choices: []string{"1", "2", "3", "4"}, CorrectAnswer: "2"},
			{Prompt: "What is 2 + 2?", Choices: []string{"3", "4", "5", "6"}, CorrectAnswer: "4"},
		},
	}
}

func TestDispatcher_StartDailyQuiz(t *testing.T) {
	quiz := new(mockQuizService)
	quiz.On("DailyQuiz", mock.Anything, "grade1-math", 2).Return(sampleQuiz("grade1-math", "2026-10-17"), nil)
	quiz.On("DailyQuizForDate", mock.Anything, "grade1-math", "2026-10-18", 0).Return(sampleQuiz("grade1-math", "2026-10-18"), nil)

	d := NewDispatcher(quiz, nil)

	res, err := d.Dispatch(context.Background(), Event{Type: EventStartDailyQuiz, LevelKey: "grade1-math", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17", res.Date)
	assert.Equal(t, []int{2, 0}, res.Indexes)
	require.Len(t, res.Questions, 2)
	assert.Equal(t, 1, res.Questions[1].Index)

	res, err = d.Dispatch(context.Background(), Event{Type: EventStartDailyQuiz, LevelKey: "grade1-math", Date: "2026-10-18"})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", res.Date)

	quiz.AssertExpectations(t)
}

func TestDispatcher_BuildPoolAndLevels(t *testing.T) {
	quiz := new(mockQuizService)
	pool := &models.QuestionPool{LevelKey: "spelling", Items: sampleQuiz("spelling", "").Questions}
	quiz.On("Pool", mock.Anything, "spelling").Return(pool, nil)
	quiz.On("Levels").Return(quizgen.Catalogue())

	d := NewDispatcher(quiz, nil)

	res, err := d.Dispatch(context.Background(), Event{Type: EventBuildPool, LevelKey: "spelling"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.PoolSize)

	res, err = d.Dispatch(context.Background(), Event{Type: EventListLevels})
	require.NoError(t, err)
	assert.Len(t, res.Levels, len(quizgen.KnownLevels))

	quiz.AssertExpectations(t)
}

func TestDispatcher_PickIndexes(t *testing.T) {
	quiz := new(mockQuizService)
	quiz.On("Today").Return("2026-10-17")
	quiz.On("DailyIndexes", mock.Anything, 10, 5, "mathA").Return([]int{6, 7, 4, 5, 1})

	d := NewDispatcher(quiz, nil)

	res, err := d.Dispatch(context.Background(), Event{Type: EventPickIndexes, PoolSize: 10, Count: 5, Identifier: "mathA"})
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7, 4, 5, 1}, res.Indexes)
	assert.Equal(t, "2026-10-17", res.Date)

	_, err = d.Dispatch(context.Background(), Event{Type: EventPickIndexes, PoolSize: 10, Count: 5})
	assert.Equal(t, contextutils.ErrorCodeInvalidInput, contextutils.GetErrorCode(err))

	_, err = d.Dispatch(context.Background(), Event{Type: EventPickIndexes, PoolSize: config.MaxPoolSize + 1, Count: 1, Identifier: "x"})
	assert.Equal(t, contextutils.ErrorCodeInvalidInput, contextutils.GetErrorCode(err))

	quiz.AssertExpectations(t)
}

func TestDispatcher_SubmitAnswers(t *testing.T) {
	quiz := new(mockQuizService)
	answers := []models.Answer{{Index: 0, Answer: "2"}}
	score := &models.ScoreResult{LevelKey: "grade1-math", Date: "2026-10-17", Correct: 1, Total: 2}
	quiz.On("Score", mock.Anything, "grade1-math", "", 0, answers).Return(score, nil)
	quiz.On("Score", mock.Anything, "bad key", "", 0, mock.Anything).
		Return(nil, contextutils.InvalidInputf("invalid level key"))

	d := NewDispatcher(quiz, nil)

	res, err := d.Dispatch(context.Background(), Event{Type: EventSubmitAnswers, LevelKey: "grade1-math", Answers: answers})
	require.NoError(t, err)
	assert.Same(t, score, res.Score)
	assert.Equal(t, "2026-10-17", res.Date)

	_, err = d.Dispatch(context.Background(), Event{Type: EventSubmitAnswers, LevelKey: "bad key"})
	assert.Error(t, err)

	quiz.AssertExpectations(t)
}

func TestDispatcher_UnknownEvent(t *testing.T) {
	quiz := new(mockQuizService)
	d := NewDispatcher(quiz, nil)

	_, err := d.Dispatch(context.Background(), Event{Type: "launch_rocket"})
	require.Error(t, err)
	assert.True(t, contextutils.IsError(err, contextutils.ErrUnknownEvent))
	quiz.AssertNotCalled(t, "Pool", mock.Anything, mock.Anything)
}
