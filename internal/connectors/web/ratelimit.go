package web

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
const HeaderRetryAfter = "Retry-After"

// RateLimiter throttles requests proactively with a token bucket and
// reactively honours Retry-After from the server.
type RateLimiter struct {
	mu           sync.Mutex
	bucket       *rate.Limiter
	blockedUntil time.Time
	now          func() time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests with the
// given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), burst),
		now:    time.Now,
	}
}

// Wait blocks until a request may be sent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	// 1. Honour a server-imposed pause
	r.mu.Lock()
	blockedUntil := r.blockedUntil
	r.mu.Unlock()

	if wait := blockedUntil.Sub(r.now()); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	// 2. Token bucket
	return r.bucket.Wait(ctx)
}

// CheckRateLimit inspects a response and returns a *RateLimitError when
// the server asked us to back off. Later Waits block until the pause ends.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil {
		return nil
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return nil
	}

	retryAfter, ok := parseRetryAfter(resp.Header.Get(HeaderRetryAfter), r.now())
	if !ok {
		if resp.StatusCode == http.StatusServiceUnavailable {
			// A plain 503 is an outage, not throttling.
			return nil
		}
		retryAfter = time.Second
	}

	resetAt := r.now().Add(retryAfter)
	r.mu.Lock()
	if resetAt.After(r.blockedUntil) {
		r.blockedUntil = resetAt
	}
	r.mu.Unlock()

	var u string
	if resp.Request != nil && resp.Request.URL != nil {
		u = resp.Request.URL.String()
	}
	return &RateLimitError{URL: u, StatusCode: resp.StatusCode, ResetAt: resetAt}
}

// BlockedUntil returns the end of the current server-imposed pause.
func (r *RateLimiter) BlockedUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blockedUntil
}

func parseRetryAfter(v string, now time.Time) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d, true
		}
		return 0, true
	}
	return 0, false
}
