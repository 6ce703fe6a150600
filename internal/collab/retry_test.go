package collab

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryableStatus(t *testing.T) {
	retryable := []int{429, 500, 502, 503, 599}
	for _, status := range retryable {
		assert.True(t, isRetryableStatus(status), "status %d", status)
	}

	notRetryable := []int{200, 201, 301, 400, 401, 404, 422}
	for _, status := range notRetryable {
		assert.False(t, isRetryableStatus(status), "status %d", status)
	}
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	cfg := DefaultRetryConfig()

	// Jitter adds at most 25%, so attempt n is bounded by
	// initial * 2^n * 1.25 until the cap kicks in.
	for attempt := 0; attempt < 4; attempt++ {
		d := backoff(attempt, cfg)
		base := time.Duration(float64(cfg.InitialBackoff) * float64(int(1)<<attempt))
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/4)
	}

	// Far beyond the cap the delay stays bounded.
	d := backoff(30, cfg)
	assert.LessOrEqual(t, d, cfg.MaxBackoff+cfg.MaxBackoff/4)
}

func TestRateLimitBackoffHonorsRetryAfter(t *testing.T) {
	cfg := DefaultRetryConfig()

	d := rateLimitBackoff(0, cfg, "7")
	assert.GreaterOrEqual(t, d, 7*time.Second)
	assert.Less(t, d, 8*time.Second)
}

func TestRateLimitBackoffIgnoresBadRetryAfter(t *testing.T) {
	cfg := DefaultRetryConfig()

	// Unparseable header falls back to the steeper exponential curve.
	d := rateLimitBackoff(1, cfg, "soon")
	assert.GreaterOrEqual(t, d, 300*time.Millisecond)
	assert.LessOrEqual(t, d, 375*time.Millisecond)
}
