package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		MaxAttempts:     3,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
	})
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := newTestLimiter()
	defer rl.Stop()

	allowed, _ := rl.Allow("1.2.3.4", "alice")
	assert.True(t, allowed)

	rl.RecordFailure("1.2.3.4", "alice")
	rl.RecordFailure("1.2.3.4", "alice")

	allowed, _ = rl.Allow("1.2.3.4", "alice")
	assert.True(t, allowed)
}

func TestRateLimiter_LocksOutAfterMaxAttempts(t *testing.T) {
	rl := newTestLimiter()
	defer rl.Stop()

	rl.RecordFailure("1.2.3.4", "alice")
	rl.RecordFailure("1.2.3.4", "alice")
	locked, retryAfter := rl.RecordFailure("1.2.3.4", "alice")
	assert.True(t, locked)
	assert.Greater(t, retryAfter, time.Duration(0))

	allowed, retryAfter := rl.Allow("1.2.3.4", "alice")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestRateLimiter_ScopedToIPUsernamePair(t *testing.T) {
	rl := newTestLimiter()
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		rl.RecordFailure("1.2.3.4", "alice")
	}

	// A different IP or a different username is unaffected
	allowed, _ := rl.Allow("5.6.7.8", "alice")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("1.2.3.4", "bob")
	assert.True(t, allowed)
}

func TestRateLimiter_SuccessClearsFailures(t *testing.T) {
	rl := newTestLimiter()
	defer rl.Stop()

	rl.RecordFailure("1.2.3.4", "alice")
	rl.RecordFailure("1.2.3.4", "alice")
	rl.RecordSuccess("1.2.3.4", "alice")

	rl.RecordFailure("1.2.3.4", "alice")
	rl.RecordFailure("1.2.3.4", "alice")
	allowed, _ := rl.Allow("1.2.3.4", "alice")
	assert.True(t, allowed)
}
