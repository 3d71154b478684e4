package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response lets a handler pick the status and headers. A zero Status means
// 200, or 204 when Body is nil.
type Response struct {
	Body   any
	Header http.Header
	Status int
}

// Created wraps body in a 201 response.
func Created(body any) *Response {
	return &Response{Status: http.StatusCreated, Body: body}
}

// writeResult renders a handler result and returns the status written.
func writeResult(w http.ResponseWriter, result any) (int, error) {
	status := 0
	if resp, ok := result.(*Response); ok && resp != nil {
		for k, vs := range resp.Header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		status = resp.Status
		result = resp.Body
	}

	var (
		body        []byte
		contentType string
	)
	switch v := result.(type) {
	case nil:
		if status == 0 {
			status = http.StatusNoContent
		}
		w.WriteHeader(status)
		return status, nil
	case string:
		body, contentType = []byte(v), "text/plain; charset=utf-8"
	case []byte:
		body, contentType = v, "application/octet-stream"
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return 0, fmt.Errorf("encode response: %w", err)
		}
		body, contentType = append(b, '\n'), "application/json"
	}

	if status == 0 {
		status = http.StatusOK
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(status)
	_, err := w.Write(body)
	return status, err
}
