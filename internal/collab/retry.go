package collab

import (
	"math"
	"math/rand"
	"strconv"
	"time"
)

// RetryConfig holds retry and throttling configuration for the collaborator
// client.
type RetryConfig struct {
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
}

// DefaultRetryConfig returns the default collaborator retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		RequestsPerSecond: 5,
		Burst:             10,
		MaxRetries:        3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        30 * time.Second,
	}
}

// isRetryableStatus reports whether an HTTP status is worth retrying.
// Retryable: 429, 500-599.
func isRetryableStatus(status int) bool {
	return status == 429 || (status >= 500 && status < 600)
}

// backoff calculates the exponential backoff delay for a given attempt,
// with 0-25% jitter to avoid thundering herd.
func backoff(attempt int, cfg RetryConfig) time.Duration {
	delay := float64(cfg.InitialBackoff) * math.Pow(2.0, float64(attempt))
	delay = math.Min(delay, float64(cfg.MaxBackoff))
	jitter := rand.Float64() * 0.25 * delay
	return time.Duration(delay + jitter)
}

// rateLimitBackoff calculates the delay after an HTTP 429. A server
// Retry-After header takes precedence; otherwise a steeper 3x curve is
// used.
func rateLimitBackoff(attempt int, cfg RetryConfig, retryAfter string) time.Duration {
	if retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
			jitter := time.Duration(rand.Int63n(int64(time.Second)))
			return time.Duration(seconds)*time.Second + jitter
		}
	}

	delay := float64(cfg.InitialBackoff) * math.Pow(3.0, float64(attempt))
	delay = math.Min(delay, float64(cfg.MaxBackoff))
	jitter := rand.Float64() * 0.25 * delay
	return time.Duration(delay + jitter)
}
