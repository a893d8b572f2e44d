package storefrontserver

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter_EvictsIdleAddresses(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(time.Minute, 2)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	for i := 0; i < 50; i++ {
		limiter.Allow("10.0.1." + strconv.Itoa(i))
	}
	assert.Equal(t, 51, limiter.Len())

	now = now.Add(90 * time.Second)
	assert.True(t, limiter.Allow("10.0.0.2"))
	assert.Equal(t, 52, limiter.Len(), "buckets younger than the refill window stay")

	now = now.Add(3 * time.Minute)
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.Equal(t, 1, limiter.Len())
}

func TestIPRateLimiter_NilAllowsEverything(t *testing.T) {
	var limiter *IPRateLimiter
	assert.True(t, limiter.Allow("10.0.0.1"))
}
