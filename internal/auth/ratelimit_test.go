package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		MaxAttempts:     3,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
	})
}

func TestRateLimiter_AllowsFreshPair(t *testing.T) {
	rl := newTestRateLimiter()
	defer rl.Stop()

	allowed, _ := rl.Allow("1.2.3.4", "alice")

	assert.True(t, allowed)
}

func TestRateLimiter_LocksAfterMaxFailures(t *testing.T) {
	rl := newTestRateLimiter()
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		rl.RecordFailure("1.2.3.4", "alice")
	}

	allowed, retryAfter := rl.Allow("1.2.3.4", "alice")

	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestRateLimiter_PairsAreIndependent(t *testing.T) {
	rl := newTestRateLimiter()
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		rl.RecordFailure("1.2.3.4", "alice")
	}

	allowed, _ := rl.Allow("1.2.3.4", "bob")
	assert.True(t, allowed)

	allowed, _ = rl.Allow("5.6.7.8", "alice")
	assert.True(t, allowed)
}

func TestRateLimiter_SuccessClearsHistory(t *testing.T) {
	rl := newTestRateLimiter()
	defer rl.Stop()

	rl.RecordFailure("1.2.3.4", "alice")
	rl.RecordFailure("1.2.3.4", "alice")
	rl.RecordSuccess("1.2.3.4", "alice")

	for i := 0; i < 2; i++ {
		rl.RecordFailure("1.2.3.4", "alice")
	}

	allowed, _ := rl.Allow("1.2.3.4", "alice")
	assert.True(t, allowed)
}
