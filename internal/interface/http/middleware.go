package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// pinRequestID makes sure the request carries an id and returns it. Retried
// attempts are clones of a pinned request, so they all log under one id.
func pinRequestID(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(requestIDHeader))
	if id == "" {
		id = uuid.NewString()
	}
	r.Header.Set(requestIDHeader, id)
	return id
}

// requestLogger tags every request with an id, echoes it back and logs the outcome.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := pinRequestID(c.Request)
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()

		logger.Info("http request",
			"request_id", id,
			"attempt", attemptOf(c.Request),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

func errorHandlingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		httpErr := asHTTPError(c.Errors.Last().Err)
		requestID := c.GetString(requestIDKey)

		attrs := []any{"code", httpErr.Code, "status", httpErr.Status, "path", c.Request.URL.Path, "request_id", requestID, "error", httpErr.Err}
		if httpErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Warn("request failed", attrs...)
		}

		c.JSON(httpErr.Status, httpErr.response(requestID))
	}
}
