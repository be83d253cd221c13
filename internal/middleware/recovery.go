// Package middleware provides panic recovery, circuit breaking and request logging for the Gin router.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"speakroots/internal/observability"
	contextutils "speakroots/internal/utils"
)

// Recovery turns a panic in a handler into a 500 AppError response
func Recovery(logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			stackTrace := string(debug.Stack())
			panicErr, ok := recovered.(error)
			if !ok {
				panicErr = fmt.Errorf("panic: %v", recovered)
			}
			logger.Error(c.Request.Context(), "Panic recovered", panicErr, map[string]interface{}{
				"http.path":  c.Request.URL.Path,
				"stacktrace": stackTrace,
			})

			appErr := contextutils.NewAppErrorWithCause(
				contextutils.ErrorCodeInternalError,
				contextutils.SeverityFatal,
				"Internal server error",
				"A panic occurred while processing the request",
				panicErr,
			)
			if gin.Mode() == gin.DebugMode {
				appErr.Details = fmt.Sprintf("%s\nStack trace: %s", appErr.Details, stackTrace)
			}
			_ = c.Error(appErr)
			c.AbortWithStatusJSON(http.StatusInternalServerError, appErr.ToJSON())
		}()

		c.Next()
	}
}

type circuitState int

const (
	circuitClosed circuitState = iota
	circuitOpen
	circuitHalfOpen
)

// circuitBreaker counts consecutive server errors
type circuitBreaker struct {
	mu          sync.Mutex
	state       circuitState
	failures    int
	lastFailure time.Time
	threshold   int
	timeout     time.Duration
	now         func() time.Time
}

func newCircuitBreaker(threshold int, timeout time.Duration) *circuitBreaker {
	return &circuitBreaker{threshold: threshold, timeout: timeout, now: time.Now}
}

func (cb *circuitBreaker) canExecute() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case circuitOpen:
		if cb.now().Sub(cb.lastFailure) > cb.timeout {
			cb.state = circuitHalfOpen
			return true
		}
		return false
	default:
		return true
	}
}

func (cb *circuitBreaker) record(status int) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if status < http.StatusInternalServerError {
		cb.failures = 0
		cb.state = circuitClosed
		return
	}
	cb.failures++
	cb.lastFailure = cb.now()
	// a failure while half open reopens immediately
	if cb.failures >= cb.threshold || cb.state == circuitHalfOpen {
		cb.state = circuitOpen
	}
}

// CircuitBreaker refuses requests with 503 for timeout once threshold consecutive
// responses were server errors. A non-positive threshold disables it.
func CircuitBreaker(threshold int, timeout time.Duration) gin.HandlerFunc {
	if threshold <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return circuitBreakerHandler(newCircuitBreaker(threshold, timeout))
}

func circuitBreakerHandler(cb *circuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cb.canExecute() {
			appErr := contextutils.NewAppError(contextutils.ErrorCodeServiceUnavailable, contextutils.SeverityWarn,
				"Service temporarily unavailable due to high error rate", "")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, appErr.ToJSON())
			return
		}

		c.Next()
		cb.record(c.Writer.Status())
	}
}
