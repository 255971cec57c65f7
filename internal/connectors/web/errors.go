package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/regscan/internal/core/domain"
)

// RateLimitError is returned when the server answers 429 or 503 with a
// Retry-After header.
type RateLimitError struct {
	URL        string
	StatusCode int
	ResetAt    time.Time
}

// Retryable reports whether the request should be sent again once the
// pause ends. Only 429 is; a 503 is an outage that happens to name a
// retry time.
func (e *RateLimitError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("web: rate limited by %s until %s", e.URL, e.ResetAt.Format(time.RFC3339))
}

// Is reports whether target is domain.ErrRateLimited.
func (e *RateLimitError) Is(target error) bool { return target == domain.ErrRateLimited }

// StatusError is a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("web: GET %s: status %d", e.URL, e.StatusCode)
}

// Is reports whether target is domain.ErrFetch, or domain.ErrNotFound for 404.
func (e *StatusError) Is(target error) bool {
	if target == domain.ErrNotFound {
		return e.StatusCode == 404
	}
	return target == domain.ErrFetch
}
