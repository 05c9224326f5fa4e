package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// maxTextMessage is the exclusive length limit, in characters, for using a
// text body as the error message.
const maxTextMessage = 200

var ErrInvalidResponse = errors.New("Invalid response from server")

// Error is the normalized failure of an API call. StatusCode is 0 when the
// request never produced a response.
type Error struct {
	Message    string
	StatusCode int
	Body       Body
	err        error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.err }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 from the API, which means the
// stored token is missing or stale.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

func newStatusError(status int, body Body) *Error {
	return &Error{Message: errorMessage(status, body), StatusCode: status, Body: body}
}

func newTransportError(err error) *Error {
	return &Error{Message: fmt.Sprintf("network error: %v", err), err: err}
}

// errorMessage picks the message for a non-2xx response: the "error" field
// of a JSON object, else a short text body, else a generic status message.
func errorMessage(status int, body Body) string {
	if obj, ok := body.Value.(map[string]any); ok && body.Kind == BodyJSON {
		if msg, ok := fieldMessage(obj["error"]); ok {
			return msg
		}
	} else if text, ok := body.Text(); ok && utf8.RuneCountInString(text) < maxTextMessage {
		return text
	}
	return fmt.Sprintf("API error: %d", status)
}

// fieldMessage renders a truthy "error" field. Non-string values fall back
// to their JSON text.
func fieldMessage(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case bool:
		if !t {
			return "", false
		}
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return "", false
		}
		return t.String(), true
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}
