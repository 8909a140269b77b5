package di

import (
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stella-M-560/currency-bot-api/pkg/cache"
	"github.com/Stella-M-560/currency-bot-api/pkg/config"
	applogger "github.com/Stella-M-560/currency-bot-api/pkg/logger"
)

func TestInitializeApp(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = "none"
	cfg.Metrics.Enabled = false

	app, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.NotNil(t, app.Server())
}

func TestProvideCacheBackends(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Cache.Redis.Host = mr.Host()
	cfg.Cache.Redis.Port = port

	cases := map[string]interface{}{
		"none":    cache.Noop{},
		"memory":  &cache.MemoryCache{},
		"redis":   &cache.RedisCache{},
		"layered": &cache.LayeredCache{},
	}
	for backend, want := range cases {
		cfg.Cache.Backend = backend
		store, err := ProvideCache(cfg, applogger.Nop())
		require.NoError(t, err, backend)
		assert.IsType(t, want, store, backend)
		require.NoError(t, store.Close())
	}
}

func TestProvideCacheRedisUnreachable(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = "redis"
	cfg.Cache.Redis.Addr = "127.0.0.1:1"

	_, err := ProvideCache(cfg, applogger.Nop())
	assert.Error(t, err)
}

func TestProvideHistoryResolvesPivot(t *testing.T) {
	cfg := config.Default()
	n := ProvideNormalizer()

	h, err := ProvideHistory(cfg, n, ProvideResolver(), ProvideAggregator(), nil, nil, applogger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, h)

	cfg.History.Pivot = "XYZ"
	_, err = ProvideHistory(cfg, n, ProvideResolver(), ProvideAggregator(), nil, nil, applogger.Nop())
	assert.ErrorContains(t, err, "history.pivot")
}
