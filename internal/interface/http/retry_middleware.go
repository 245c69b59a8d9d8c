package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yanqian/skinfit/internal/infra/config"
)

const retryBodyLimit = 1 << 20 // 1 MiB

var errBodyTooLarge = errors.New("request body exceeds retry limit")

// attemptKey carries the attempt number of a request re-served by withRetry.
type attemptKey struct{}

func attemptOf(r *http.Request) int {
	if n, ok := r.Context().Value(attemptKey{}).(int); ok {
		return n
	}
	return 1
}

// withRetry re-serves replayable requests that fail with a 5xx. Every attempt
// shares one request id, and only the first one is charged by the rate limiter.
func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !retryable(r, cfg.Exclude) {
			handler.ServeHTTP(w, r)
			return
		}
		id := pinRequestID(r)
		body, err := readRequestBody(r)
		if err != nil {
			writeBodyError(w, id, err)
			return
		}

		for attempt := 1; ; attempt++ {
			buf := newBufferedResponse()
			handler.ServeHTTP(buf, replay(r, body, attempt))
			if buf.status < http.StatusInternalServerError || attempt >= cfg.MaxAttempts {
				buf.flushTo(w)
				return
			}
			logger.Warn("transient failure, retrying request",
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", buf.status,
				"attempt", attempt,
			)
			if !wait(r.Context(), cfg.BaseBackoff<<(attempt-1)) {
				buf.flushTo(w)
				return
			}
		}
	})
}

// retryable limits retries to replayable requests. Excluded prefixes cover
// handlers with side effects, such as profile inserts.
func retryable(r *http.Request, exclude []string) bool {
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		return false
	}
	for _, prefix := range exclude {
		if prefix != "" && strings.HasPrefix(r.URL.Path, prefix) {
			return false
		}
	}
	return true
}

func replay(r *http.Request, body []byte, attempt int) *http.Request {
	out := r.Clone(context.WithValue(r.Context(), attemptKey{}, attempt))
	out.Body = io.NopCloser(bytes.NewReader(body))
	out.ContentLength = int64(len(body))
	return out
}

func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func readRequestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, retryBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > retryBodyLimit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// writeBodyError answers outside gin, so it renders the same envelope as
// errorHandlingMiddleware by hand.
func writeBodyError(w http.ResponseWriter, requestID string, err error) {
	httpErr := badRequest("could not read request body", err)
	if errors.Is(err, errBodyTooLarge) {
		httpErr = NewHTTPError(http.StatusRequestEntityTooLarge, "payload_too_large", err.Error(), err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set(requestIDHeader, requestID)
	w.WriteHeader(httpErr.Status)
	_ = json.NewEncoder(w).Encode(httpErr.response(requestID))
}

// bufferedResponse holds an attempt's response until it is known to be final.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
	wrote  bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.wrote {
		return
	}
	b.status = status
	b.wrote = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.wrote = true
	return b.body.Write(p)
}

func (b *bufferedResponse) Flush() {}

func (b *bufferedResponse) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k, values := range b.header {
		dst[k] = append([]string(nil), values...)
	}
	w.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}
