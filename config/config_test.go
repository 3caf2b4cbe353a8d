package config

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(t *testing.T) {
	t.Helper()

	once = sync.Once{}
	initErr = nil
	conf = Config{}

	t.Cleanup(func() {
		once = sync.Once{}
		initErr = nil
		conf = Config{}
	})
}

func TestInit(t *testing.T) {
	t.Run("environment is processed", func(t *testing.T) {
		reset(t)
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("CACHE_ENABLE", "false")
		t.Setenv("APP_RATE_LIMITER_ENABLE", "true")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

		require.NoError(t, Init())

		cfg := Get()
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.False(t, cfg.Cache.Enable)
		assert.True(t, cfg.App.RateLimiter.Enable)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	})

	t.Run("malformed value is returned, not swallowed", func(t *testing.T) {
		reset(t)
		t.Setenv("SERVER_SHUTDOWN_GRACE_PERIOD_SECONDS", "soon")

		err := Init()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GRACE_PERIOD_SECONDS")

		assert.Equal(t, err, Init(), "later calls report the first result")
	})
}
