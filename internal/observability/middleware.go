package observability

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"speakroots/internal/config"
	contextutils "speakroots/internal/utils"
)

// GinMiddleware creates OpenTelemetry middleware for Gin HTTP requests
func GinMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// GinMiddlewareWithErrorHandling returns the OpenTelemetry middleware followed by a handler
// that marks spans of failed requests with the error code, severity and request details.
// Register it with router.Use(GinMiddlewareWithErrorHandling(name)...).
func GinMiddlewareWithErrorHandling(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{otelgin.Middleware(serviceName), recordRequestErrors}
}

// recordRequestErrors runs inside the otelgin span so attributes land before it ends
func recordRequestErrors(c *gin.Context) {
	c.Next()

	span := trace.SpanFromContext(c.Request.Context())
	statusCode := c.Writer.Status()
	if statusCode < 400 {
		return
	}

	severity := determineErrorSeverity(statusCode, c.Errors)

	var errorMsg string
	if statusCode >= 500 {
		errorMsg = "server error"
	} else {
		errorMsg = "client error"
	}

	var appErr *contextutils.AppError
	for _, ginErr := range c.Errors {
		if errors.As(ginErr.Err, &appErr) {
			errorMsg = appErr.Message
			break
		}
		errorMsg = ginErr.Error()
	}

	span.RecordError(errors.New(errorMsg), trace.WithStackTrace(true))
	span.SetStatus(codes.Error, errorMsg)
	span.SetAttributes(
		attribute.Int("http.status_code", statusCode),
		attribute.String("http.method", c.Request.Method),
		attribute.String("http.path", c.Request.URL.Path),
		attribute.String("error.handler", c.HandlerName()),
		attribute.String("error.severity", severity),
	)

	if session := sessionFromContext(c); session != nil {
		if levelKey, ok := session.Get(config.SessionLevelKey).(string); ok {
			span.SetAttributes(AttributeLevelKey(levelKey))
		}
	}

	if c.Request.ContentLength > 0 {
		span.SetAttributes(attribute.Int64("error.request_size", c.Request.ContentLength))
	}

	if appErr != nil {
		span.SetAttributes(
			attribute.String("error.code", string(appErr.Code)),
			attribute.Bool("error.retryable", contextutils.IsRetryable(appErr)),
		)
	}

	if statusCode >= 500 {
		span.SetAttributes(attribute.Bool("error.server_error", true))
	}
}

// sessionFromContext returns the request session when the sessions middleware is installed
func sessionFromContext(c *gin.Context) sessions.Session {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	return sessions.Default(c)
}

// determineErrorSeverity determines the severity level based on status code and error types
func determineErrorSeverity(statusCode int, ginErrors []*gin.Error) string {
	for _, ginErr := range ginErrors {
		var appErr *contextutils.AppError
		if errors.As(ginErr.Err, &appErr) {
			return string(appErr.Severity)
		}
	}

	switch {
	case statusCode >= 500:
		return string(contextutils.SeverityError)
	case statusCode >= 400:
		return string(contextutils.SeverityWarn)
	default:
		return string(contextutils.SeverityInfo)
	}
}
