package completion

import (
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
)

// ErrNotConfigured is returned when executions are requested but no model
// provider is set up.
var ErrNotConfigured = errors.New("completion provider not configured")

// TransientError marks a failure worth retrying.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient completion error: " + e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError marks a failure that will not go away on retry.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return "permanent completion error: " + e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

var transientMarkers = []string{
	"timeout",
	"timed out",
	"rate limit",
	"throttl",
	"429",
	"502",
	"503",
	"504",
}

// IsTransient reports whether err should be retried. Explicitly typed errors
// win; provider status codes come next; otherwise the message is inspected.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var transient *TransientError
	if errors.As(err, &transient) {
		return true
	}
	var permanent *PermanentError
	if errors.As(err, &permanent) || errors.Is(err, ErrNotConfigured) {
		return false
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return transientStatus(apiErr.StatusCode)
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func transientStatus(code int) bool {
	return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests || code >= 500
}

// classify wraps a provider error into TransientError or PermanentError.
func classify(err error) error {
	if IsTransient(err) {
		return &TransientError{Err: err}
	}
	return &PermanentError{Err: err}
}
