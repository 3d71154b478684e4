package internal

import "net/http"

// Middleware wraps the application handler. It has the chi middleware shape.
type Middleware func(next http.Handler) http.Handler

// ErrorHandler renders an error produced while dispatching a request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err *HTTPError)
