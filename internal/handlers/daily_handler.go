package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"speakroots/internal/config"
	"speakroots/internal/models"
	"speakroots/internal/observability"
	"speakroots/internal/services"
	contextutils "speakroots/internal/utils"

	"github.com/gin-gonic/gin"
)

// DailyHandler serves the daily selection, the daily quiz and scoring
type DailyHandler struct {
	quiz   services.QuizServiceInterface
	cfg    *config.Config
	logger *observability.Logger
}

// NewDailyHandler creates a new daily handler
func NewDailyHandler(quiz services.QuizServiceInterface, cfg *config.Config, logger *observability.Logger) *DailyHandler {
	return &DailyHandler{quiz: quiz, cfg: cfg, logger: logger}
}

// ScoreRequest is the body of POST /v1/daily/quiz/:level/score
type ScoreRequest struct {
	Date    string          `json:"date"`
	Count   int             `json:"count" binding:"min=0,max=50"`
	Answers []models.Answer `json:"answers" binding:"dive"`
}

// SessionLevelRequest is the body of PUT /v1/session/level
type SessionLevelRequest struct {
	LevelKey string `json:"level_key" binding:"required"`
}

// GetIndexes handles GET /v1/daily/indexes
func (h *DailyHandler) GetIndexes(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_daily_indexes")
	defer observability.FinishSpan(span, nil)

	poolSize, ok := intQuery(c, "pool_size", 0)
	if !ok {
		return
	}
	if poolSize > config.MaxPoolSize {
		HandleValidationError(c, "pool_size", poolSize, fmt.Sprintf("must be at most %d", config.MaxPoolSize))
		return
	}
	count, ok := intQuery(c, "count", config.DefaultDailyCount)
	if !ok {
		return
	}
	identifier := c.Query("identifier")
	if !contextutils.IsValidKey(identifier) {
		HandleValidationError(c, "identifier", identifier, "must be 1-64 printable characters without spaces or colons")
		return
	}
	span.SetAttributes(
		observability.AttributeIdentifier(identifier),
		observability.AttributePoolSize(poolSize),
		observability.AttributeCount(count),
	)

	c.JSON(http.StatusOK, gin.H{
		"identifier": identifier,
		"date":       h.quiz.Today(),
		"pool_size":  poolSize,
		"indexes":    h.quiz.DailyIndexes(ctx, poolSize, count, identifier),
	})
}

// GetQuiz handles GET /v1/daily/quiz/:level
func (h *DailyHandler) GetQuiz(c *gin.Context) {
	h.writeQuiz(c, c.Param("level"))
}

// GetSessionQuiz handles GET /v1/daily/quiz using the level stored in the session
func (h *DailyHandler) GetSessionQuiz(c *gin.Context) {
	levelKey, ok := GetSessionLevel(c)
	if !ok {
		StandardizeHTTPError(c, http.StatusBadRequest, "No level selected", "set one with PUT /v1/session/level")
		return
	}
	h.writeQuiz(c, levelKey)
}

func (h *DailyHandler) writeQuiz(c *gin.Context, levelKey string) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_daily_quiz",
		observability.AttributeLevelKey(levelKey))
	defer observability.FinishSpan(span, nil)

	count, ok := intQuery(c, "count", 0)
	if !ok {
		return
	}

	var (
		quiz *models.DailyQuiz
		err  error
	)
	if date := c.Query("date"); date != "" {
		quiz, err = h.quiz.DailyQuizForDate(ctx, levelKey, date, count)
	} else {
		quiz, err = h.quiz.DailyQuiz(ctx, levelKey, count)
	}
	if err != nil {
		HandleAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"level_key": quiz.LevelKey,
		"date":      quiz.Date,
		"pool_size": quiz.PoolSize,
		"indexes":   quiz.Indexes,
		"questions": quiz.PublicQuestions(),
	})
}

// SubmitScore handles POST /v1/daily/quiz/:level/score
func (h *DailyHandler) SubmitScore(c *gin.Context) {
	levelKey := c.Param("level")
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "submit_daily_score",
		observability.AttributeLevelKey(levelKey))
	defer observability.FinishSpan(span, nil)

	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleValidationError(c, "request body", "", err.Error())
		return
	}

	score, err := h.quiz.Score(ctx, levelKey, req.Date, req.Count, req.Answers)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	h.logger.Info(ctx, "Daily quiz scored", map[string]interface{}{
		"level_key": levelKey,
		"date":      score.Date,
		"correct":   score.Correct,
		"total":     score.Total,
	})
	c.JSON(http.StatusOK, score)
}

// SetSessionLevel handles PUT /v1/session/level
func (h *DailyHandler) SetSessionLevel(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "set_session_level")
	defer observability.FinishSpan(span, nil)

	var req SessionLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleValidationError(c, "request body", "", err.Error())
		return
	}
	if err := services.ValidateLevelKey(req.LevelKey); err != nil {
		HandleAppError(c, err)
		return
	}
	if err := SetSessionLevel(c, req.LevelKey); err != nil {
		h.logger.Error(ctx, "Failed to save session", err)
		StandardizeHTTPError(c, http.StatusInternalServerError, "Failed to save session", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"level_key": req.LevelKey})
}

// intQuery parses an optional integer query parameter, writing a 400 when it is malformed
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		HandleValidationError(c, name, raw, "must be an integer")
		return 0, false
	}
	return n, true
}
