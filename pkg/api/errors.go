package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// HTTPError represents a non-2xx HTTP response from the API.
// Body holds the response body; PlainText reports whether the server sent
// a bare string (raw text or a JSON-encoded string) rather than a
// structured payload. The notification layer shows plain-text bodies
// verbatim.
type HTTPError struct {
	StatusCode int
	Body       string
	PlainText  bool
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// newHTTPError classifies an error response body. The API answers most
// rejections with a plain string; anything that parses as a JSON object
// or array is treated as structured.
func newHTTPError(status int, body []byte) *HTTPError {
	he := &HTTPError{StatusCode: status, Body: strings.TrimSpace(string(body))}
	var s string
	if json.Unmarshal(body, &s) == nil {
		he.Body = s
		he.PlainText = true
		return he
	}
	if !json.Valid(body) {
		he.PlainText = true
	}
	return he
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}
