package handlers

import (
	"net/http"

	"speakroots/internal/config"
	"speakroots/internal/models"
	"speakroots/internal/observability"
	"speakroots/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	defaultPoolPageSize = 20
	maxPoolPageSize     = 100
)

// PoolHandler serves the level catalogue, pool listings and pool administration
type PoolHandler struct {
	quiz   services.QuizServiceInterface
	cfg    *config.Config
	logger *observability.Logger
}

// NewPoolHandler creates a new pool handler
func NewPoolHandler(quiz services.QuizServiceInterface, cfg *config.Config, logger *observability.Logger) *PoolHandler {
	return &PoolHandler{quiz: quiz, cfg: cfg, logger: logger}
}

// ListLevels handles GET /v1/levels
func (h *PoolHandler) ListLevels(c *gin.Context) {
	_, span := observability.TraceHandlerFunction(c.Request.Context(), "list_levels")
	defer observability.FinishSpan(span, nil)

	c.JSON(http.StatusOK, gin.H{"levels": h.quiz.Levels()})
}

// GetPool handles GET /v1/pools/:level. Answers are withheld.
func (h *PoolHandler) GetPool(c *gin.Context) {
	levelKey := c.Param("level")
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "get_pool",
		observability.AttributeLevelKey(levelKey))
	defer observability.FinishSpan(span, nil)

	pool, err := h.quiz.Pool(ctx, levelKey)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	page, size := ParsePagination(c, 1, defaultPoolPageSize, maxPoolPageSize)
	span.SetAttributes(observability.AttributePage(page), observability.AttributePageSize(size))

	pagination := NewPagination(page, size, pool.Size())
	items := pool.Page(pagination.Offset(), size)
	questions := make([]models.PublicQuestion, len(items))
	for i, item := range items {
		questions[i] = item.Public(pagination.Offset() + i)
	}

	WritePaginated(c, "questions", questions, pagination, gin.H{
		"level_key":    pool.LevelKey,
		"generated_at": pool.GeneratedAt,
	})
}

// InvalidatePool handles DELETE /v1/admin/pools/:level
func (h *PoolHandler) InvalidatePool(c *gin.Context) {
	levelKey := c.Param("level")
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "invalidate_pool",
		observability.AttributeLevelKey(levelKey))
	defer observability.FinishSpan(span, nil)

	removed, err := h.quiz.InvalidatePool(ctx, levelKey)
	if err != nil {
		HandleAppError(c, err)
		return
	}

	h.logger.Info(ctx, "Pool invalidated by admin", map[string]interface{}{
		"level_key": levelKey,
		"admin":     c.GetString(AdminUserKey),
		"removed":   removed,
	})
	c.JSON(http.StatusOK, gin.H{"level_key": levelKey, "removed": removed})
}
