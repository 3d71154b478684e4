package internal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/waypoint/middlewares"
	"github.com/dmitrymomot/waypoint/pkg/db"
	"github.com/dmitrymomot/waypoint/pkg/router"
)

// HTTPError carries everything needed to render an error response.
type HTTPError struct {
	// Err is the cause. It is logged, never rendered.
	Err error

	Message   string
	ErrorCode string
	RequestID string
	Code      int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError. An empty message defaults to the status
// text.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusConflict, message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// AsHTTPError extracts an *HTTPError from err's chain.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// ToHTTPError classifies err. Route and handler configuration errors map to
// 500 with a generic message so internals are not leaked.
func ToHTTPError(err error) *HTTPError {
	if he, ok := AsHTTPError(err); ok {
		return he
	}

	switch {
	case errors.Is(err, router.ErrUnroutableRequest), errors.Is(err, db.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "", WithError(err))
	case errors.Is(err, context.DeadlineExceeded):
		return NewHTTPError(http.StatusGatewayTimeout, "", WithError(err))
	case router.IsLogicError(err):
		return NewHTTPError(http.StatusInternalServerError, "", WithError(err), WithErrorCode("route_misconfigured"))
	default:
		return NewHTTPError(http.StatusInternalServerError, "", WithError(err))
	}
}

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// DefaultErrorHandler writes {"error": message} with the error status.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err *HTTPError) {
	writeJSON(w, err.Code, errorBody{
		Error:     err.Message,
		Code:      err.ErrorCode,
		RequestID: err.RequestID,
	})
}

// handleError translates err, logs it and renders it. It returns the status
// written.
func (a *App) handleError(w http.ResponseWriter, r *http.Request, err error) int {
	he := ToHTTPError(err)
	if he.RequestID == "" {
		// Handlers may return shared error values.
		withID := *he
		withID.RequestID = middlewares.GetRequestID(r.Context())
		he = &withID
	}

	cause := err
	if he.Err != nil {
		cause = he.Err
	}
	if he.Code >= http.StatusInternalServerError {
		a.logger.ErrorContext(r.Context(), "request failed",
			"status", he.Code,
			"error", cause.Error(),
		)
	} else {
		a.logger.WarnContext(r.Context(), "request rejected",
			"status", he.Code,
			"error", cause.Error(),
		)
	}

	a.errorHandler(w, r, he)
	return he.Code
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
