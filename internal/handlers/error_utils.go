package handlers

import (
	"errors"
	"fmt"
	"net/http"

	contextutils "speakroots/internal/utils"

	"github.com/gin-gonic/gin"
)

// statusErrors holds the error each HTTP status is reported as
var statusErrors = map[int]*contextutils.AppError{
	http.StatusBadRequest:         contextutils.ErrInvalidInput,
	http.StatusUnauthorized:       contextutils.ErrUnauthorized,
	http.StatusForbidden:          contextutils.ErrForbidden,
	http.StatusNotFound:           contextutils.ErrRecordNotFound,
	http.StatusRequestTimeout:     contextutils.ErrTimeout,
	http.StatusConflict:           contextutils.ErrConflict,
	http.StatusServiceUnavailable: contextutils.ErrServiceUnavailable,
}

// StandardizeHTTPError creates consistent HTTP error responses with structured error information
func StandardizeHTTPError(c *gin.Context, statusCode int, message, details string) {
	base, ok := statusErrors[statusCode]
	if !ok {
		base = contextutils.ErrInternalError
	}

	appErr := contextutils.NewAppError(base.Code, base.Severity, message, details)
	_ = c.Error(appErr)
	c.JSON(statusCode, appErr.ToJSON())
}

// StandardizeAppError sends a structured error response using AppError
func StandardizeAppError(c *gin.Context, err *contextutils.AppError) {
	_ = c.Error(err)
	c.JSON(mapErrorCodeToHTTPStatus(err.Code), err.ToJSON())
}

// HandleValidationError handles input validation errors consistently
func HandleValidationError(c *gin.Context, field string, value interface{}, reason string) {
	appErr := contextutils.NewAppError(
		contextutils.ErrorCodeInvalidInput,
		contextutils.SeverityWarn,
		fmt.Sprintf("Invalid %s", field),
		fmt.Sprintf("Value '%v' is invalid: %s", value, reason),
	)

	StandardizeAppError(c, appErr)
}

// HandleAppError handles any error and sends the matching HTTP response
func HandleAppError(c *gin.Context, err error) {
	var appErr *contextutils.AppError
	if errors.As(err, &appErr) {
		StandardizeAppError(c, appErr)
		return
	}
	StandardizeHTTPError(c, http.StatusInternalServerError, "Internal server error", err.Error())
}

// mapErrorCodeToHTTPStatus maps AppError codes to appropriate HTTP status codes
func mapErrorCodeToHTTPStatus(code contextutils.ErrorCode) int {
	switch code {
	// 4xx Client Errors
	case contextutils.ErrorCodeInvalidInput, contextutils.ErrorCodeMissingRequired,
		contextutils.ErrorCodeInvalidFormat, contextutils.ErrorCodeValidationFailed,
		contextutils.ErrorCodeInvalidAnswer, contextutils.ErrorCodeUnknownEvent:
		return http.StatusBadRequest

	case contextutils.ErrorCodeUnauthorized:
		return http.StatusUnauthorized

	case contextutils.ErrorCodeForbidden:
		return http.StatusForbidden

	case contextutils.ErrorCodeRecordNotFound, contextutils.ErrorCodeSessionNotFound:
		return http.StatusNotFound

	case contextutils.ErrorCodeConflict:
		return http.StatusConflict

	case contextutils.ErrorCodeTimeout:
		return http.StatusRequestTimeout

	// 5xx Server Errors
	case contextutils.ErrorCodeServiceUnavailable, contextutils.ErrorCodeDatabaseConnection,
		contextutils.ErrorCodeStoreUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
