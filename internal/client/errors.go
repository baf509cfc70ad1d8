package client

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"notes/internal/note"
	"notes/internal/view"
)

// ErrUnauthorized means the server rejected the session token.
var ErrUnauthorized = fmt.Errorf("session rejected: %w", view.ErrUnauthenticated)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api: %d %s", e.Status, msg)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("api: %d %s (%s)", e.Status, msg, strings.Join(parts, ", "))
}

// Unwrap maps statuses onto the errors callers already match on.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return note.ErrNotFound
	case e.Status == http.StatusBadRequest && len(e.Fields) > 0:
		return note.ErrValidation
	}
	return nil
}
