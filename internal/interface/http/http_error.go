package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/skinfit/pkg/errors"
)

// HTTPError is a failed request as the client sees it.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (e *HTTPError) response(requestID string) errorResponse {
	message := e.Message
	if message == "" {
		message = e.Error()
	}
	return errorResponse{Error: errorBody{Code: e.Code, Message: message, RequestID: requestID}}
}

// Status and public code for each domain error code.
var domainErrors = map[string]struct {
	status int
	code   string
}{
	apperrors.CodeInvalidInput: {status: http.StatusBadRequest, code: "invalid_request"},
	apperrors.CodeStorage:      {status: http.StatusServiceUnavailable, code: apperrors.CodeStorage},
}

// serviceError translates an advisor or dashboard failure. Anything without a
// mapped domain code is a 500 under fallbackCode.
func serviceError(err error, fallbackCode string) *HTTPError {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return NewHTTPError(http.StatusInternalServerError, fallbackCode, "something went wrong", err)
	}
	if m, ok := domainErrors[appErr.Code]; ok {
		return NewHTTPError(m.status, m.code, appErr.Message, err)
	}
	return NewHTTPError(http.StatusInternalServerError, fallbackCode, appErr.Message, err)
}

func badRequest(message string, err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, "invalid_request", message, err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return serviceError(err, "internal_error")
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
