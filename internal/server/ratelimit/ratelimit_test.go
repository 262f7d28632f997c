package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(rules ...EndpointConfig) *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: rules,
	}
}

func TestBucket_ConsumesAndDenies(t *testing.T) {
	b := newBucket(2, 0.001) // refill slow enough to not matter

	allowed, remaining, _ := b.take()
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	allowed, _, _ = b.take()
	assert.True(t, allowed)

	allowed, _, reset := b.take()
	assert.False(t, allowed)
	assert.True(t, reset.After(time.Now()))
}

func TestBucket_Refills(t *testing.T) {
	b := newBucket(1, 100) // 100 tokens per second

	allowed, _, _ := b.take()
	require.True(t, allowed)

	time.Sleep(50 * time.Millisecond)

	allowed, _, _ = b.take()
	assert.True(t, allowed, "bucket should have refilled")
}

func TestLimiter_EndpointRule(t *testing.T) {
	l := NewLimiter(testConfig(
		EndpointConfig{Path: "/rankings", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
	))
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, info := l.Allow("10.0.0.1", "/rankings", "POST")
		require.True(t, allowed, "request %d", i)
		assert.Equal(t, 2, info.Limit)
	}

	allowed, info := l.Allow("10.0.0.1", "/rankings", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	// Another client has its own bucket.
	allowed, _ = l.Allow("10.0.0.2", "/rankings", "POST")
	assert.True(t, allowed)
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/rankings", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig(EndpointConfig{Path: "/rankings", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1})
	cfg.Whitelist["10.0.0.9"] = true
	cfg.Blacklist["10.0.0.66"] = true

	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.9", "/rankings", "POST")
		require.True(t, allowed)
	}

	allowed, _ := l.Allow("10.0.0.66", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Sweep(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	l.Allow("10.0.0.1", "/candidates", "GET")
	require.Len(t, l.buckets, 1)

	l.sweep(time.Now().Add(time.Second))
	assert.Empty(t, l.buckets)
	assert.Empty(t, l.lastAccess)
}

func TestMatchEndpoint(t *testing.T) {
	rules := []EndpointConfig{
		{Path: "/rankings", Method: "POST", Limit: 30},
		{Path: "/candidates/", Method: "POST", Limit: 120},
	}

	t.Run("health is unlimited", func(t *testing.T) {
		rule := MatchEndpoint("/health", "GET", rules)
		require.NotNil(t, rule)
		assert.Equal(t, 0, rule.Limit)
	})

	t.Run("exact match", func(t *testing.T) {
		rule := MatchEndpoint("/rankings", "POST", rules)
		require.NotNil(t, rule)
		assert.Equal(t, 30, rule.Limit)
	})

	t.Run("prefix match", func(t *testing.T) {
		rule := MatchEndpoint("/candidates/123/analyses", "POST", rules)
		require.NotNil(t, rule)
		assert.Equal(t, 120, rule.Limit)
	})

	t.Run("method mismatch falls through", func(t *testing.T) {
		assert.Nil(t, MatchEndpoint("/rankings", "GET", rules))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Nil(t, MatchEndpoint("/dashboard", "GET", rules))
	})
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_Lists(t *testing.T) {
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "50")

	cfg := LoadConfig()
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.True(t, cfg.Whitelist["10.0.0.1"])
	assert.True(t, cfg.Whitelist["10.0.0.2"])
}
