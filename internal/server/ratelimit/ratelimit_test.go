package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_BurstThenDeny(t *testing.T) {
	bucket := newTokenBucket(5, 1.0)

	for i := 0; i < 5; i++ {
		assert.True(t, bucket.allow(), "request %d inside burst", i+1)
	}
	assert.False(t, bucket.allow(), "bucket exhausted")
}

func TestTokenBucket_Refill(t *testing.T) {
	// High refill rate keeps the test fast.
	bucket := newTokenBucket(2, 50.0)

	bucket.allow()
	bucket.allow()
	require.False(t, bucket.allow())

	time.Sleep(50 * time.Millisecond)
	assert.True(t, bucket.allow(), "one token refilled after the wait")
}

func TestTokenBucket_GetStatus(t *testing.T) {
	bucket := newTokenBucket(10, 1.0)
	for i := 0; i < 4; i++ {
		bucket.allow()
	}

	remaining, resetTime := bucket.getStatus()
	assert.Equal(t, 6, remaining)
	assert.True(t, resetTime.After(time.Now()), "reset time is in the future while the bucket is short")
}

func newTestLimiter(t *testing.T, config *Config) *Limiter {
	t.Helper()
	limiter := NewLimiter(config)
	t.Cleanup(limiter.Stop)
	return limiter
}

func TestLimiter_DefaultLimit(t *testing.T) {
	limiter := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	})

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/api/jobs", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := limiter.Allow("10.0.0.1", "/api/jobs", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_CustomReportEndpointBurst(t *testing.T) {
	limiter := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})

	// POST /api/reports/custom allows a burst of 5; the hourly refill cannot
	// restore a token within this test.
	for i := 0; i < 5; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/api/reports/custom", "POST")
		require.True(t, allowed, "burst request %d", i+1)
		assert.Equal(t, 60, info.Limit)
	}
	allowed, _ := limiter.Allow("10.0.0.1", "/api/reports/custom", "POST")
	assert.False(t, allowed)

	// Unmatched routes fall back to the default limit.
	allowed, info := limiter.Allow("10.0.0.1", "/api/tenants", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_PatchRoutesPrefixMatch(t *testing.T) {
	limiter := newTestLimiter(t, &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(),
	})

	// "/api/jobs/" prefix-matches the id'd status route.
	allowed, info := limiter.Allow("10.0.0.1", "/api/jobs/3f2c41cd/status", "PATCH")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)

	allowed, info = limiter.Allow("10.0.0.1", "/api/candidates/3f2c41cd/status", "PATCH")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	limiter := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})

	for i := 0; i < 20; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/health", "GET")
		require.True(t, allowed, "health request %d", i+1)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	limiter := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
	})

	for i := 0; i < 20; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/api/jobs", "GET")
		require.True(t, allowed, "whitelisted request %d", i+1)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	limiter := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"10.0.0.66": true},
	})

	allowed, _ := limiter.Allow("10.0.0.66", "/api/jobs", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := newTestLimiter(t, &Config{Enabled: false})

	for i := 0; i < 20; i++ {
		allowed, info := limiter.Allow("10.0.0.1", "/api/reports/custom", "POST")
		require.True(t, allowed, "request %d with limiting disabled", i+1)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := limiter.Allow("10.0.0.1", "/api/candidates", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := newTestLimiter(t, nil)

	allowed, info := limiter.Allow("10.0.0.1", "/api/jobs", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantMatch bool
	}{
		{"custom report exact", "/api/reports/custom", "POST", 60, true},
		{"named report prefix", "/api/reports/hiring-metrics", "GET", 300, true},
		{"tenant switch exact", "/api/tenants/switch", "POST", 60, true},
		{"job status prefix", "/api/jobs/3f2c41cd/status", "PATCH", 100, true},
		{"method mismatch", "/api/reports/custom", "GET", 300, true}, // falls through to the GET prefix rule
		{"unmatched route", "/api/tenants", "GET", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := MatchEndpoint(tt.path, tt.method, configs)
			if !tt.wantMatch {
				assert.Nil(t, match)
				return
			}
			require.NotNil(t, match)
			assert.Equal(t, tt.wantLimit, match.Limit)
		})
	}
}

func TestMatchEndpoint_HealthSpecialCase(t *testing.T) {
	match := MatchEndpoint("/health", "GET", nil)
	require.NotNil(t, match)
	assert.Zero(t, match.Limit, "health is unlimited")
}
