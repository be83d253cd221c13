package handlers

import (
	"net/http"

	"speakroots/internal/observability"
	"speakroots/internal/services"

	"github.com/gin-gonic/gin"
)

// EventHandler exposes the dispatcher over HTTP
type EventHandler struct {
	dispatcher *services.Dispatcher
	logger     *observability.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(dispatcher *services.Dispatcher, logger *observability.Logger) *EventHandler {
	return &EventHandler{dispatcher: dispatcher, logger: logger}
}

// Dispatch handles POST /v1/events
func (h *EventHandler) Dispatch(c *gin.Context) {
	ctx, span := observability.TraceHandlerFunction(c.Request.Context(), "dispatch_event")
	defer observability.FinishSpan(span, nil)

	var ev services.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		HandleValidationError(c, "event", "", err.Error())
		return
	}

	result, err := h.dispatcher.Dispatch(ctx, ev)
	if err != nil {
		HandleAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
