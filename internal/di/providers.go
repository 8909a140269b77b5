package di

import (
	"fmt"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/repository"
	dservice "github.com/Stella-M-560/currency-bot-api/internal/domain/service"
	"github.com/Stella-M-560/currency-bot-api/internal/handler/api"
	"github.com/Stella-M-560/currency-bot-api/internal/service/frankfurter"
	"github.com/Stella-M-560/currency-bot-api/internal/services/normalize"
	"github.com/Stella-M-560/currency-bot-api/internal/services/stats"
	"github.com/Stella-M-560/currency-bot-api/internal/services/timerange"
	"github.com/Stella-M-560/currency-bot-api/internal/usecase"
	"github.com/Stella-M-560/currency-bot-api/pkg/cache"
	"github.com/Stella-M-560/currency-bot-api/pkg/config"
	xhttp "github.com/Stella-M-560/currency-bot-api/pkg/http"
	applogger "github.com/Stella-M-560/currency-bot-api/pkg/logger"
	"github.com/Stella-M-560/currency-bot-api/pkg/metrics"
	"github.com/Stella-M-560/currency-bot-api/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideCache creates the edge cache selected by cache.backend.
func ProvideCache(cfg *config.Config, l *applogger.Logger) (cache.Store, error) {
	l.Info("edge cache", applogger.String("backend", cfg.Cache.Backend))
	switch cfg.Cache.Backend {
	case "none":
		return cache.Noop{}, nil
	case "memory":
		return newMemoryCache(cfg), nil
	case "redis":
		return newRedisCache(cfg)
	case "layered":
		rc, err := newRedisCache(cfg)
		if err != nil {
			return nil, err
		}
		return cache.NewLayeredCache(newMemoryCache(cfg), rc, cache.WithLayeredL1TTL(cfg.Cache.LatestTTL)), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

func newMemoryCache(cfg *config.Config) *cache.MemoryCache {
	return cache.NewMemoryCache(
		cache.WithMemoryMaxItems(cfg.Cache.MemoryItems),
		cache.WithMemoryCleanup(cfg.Cache.MemoryCleanup),
	)
}

func newRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	opts := []cache.RedisOption{
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		cache.WithRedisPool(cfg.Cache.Redis.PoolSize, cfg.Cache.Redis.MinIdleConns, cfg.Cache.Redis.PoolTimeout),
	}
	if cfg.Cache.Redis.Addr != "" {
		opts = append(opts, cache.WithRedisAddr(cfg.Cache.Redis.Addr))
	}
	rc, err := cache.NewRedisCache(opts...)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return repository.NopMetrics{}
	}
	return metrics.New()
}

// ProvideRateSource creates the upstream client behind the edge cache.
func ProvideRateSource(cfg *config.Config, store cache.Store, m repository.Metrics, l *applogger.Logger) repository.RateSource {
	return frankfurter.New(frankfurter.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
		Retry: xhttp.RetryPolicy{
			MaxAttempts: cfg.Upstream.Retry.MaxAttempts,
			Backoff:     cfg.Upstream.Retry.Backoff,
		},
		LatestTTL:    cfg.Cache.LatestTTL,
		HistoryTTL:   cfg.Cache.HistoryTTL,
		WriteTimeout: cfg.Cache.WriteTimeout,
	},
		frankfurter.WithHTTPClient(xhttp.NewClient(
			xhttp.WithTimeout(cfg.Upstream.Timeout),
			xhttp.WithUserAgent(cfg.Upstream.UserAgent),
		)),
		frankfurter.WithCache(store),
		frankfurter.WithMetrics(m),
		frankfurter.WithLogger(l.With(applogger.String("component", "frankfurter"))),
	)
}

func ProvideNormalizer() dservice.CurrencyNormalizer { return normalize.New() }

func ProvideResolver() dservice.RangeResolver { return timerange.New() }

func ProvideAggregator() dservice.Aggregator { return stats.New() }

// ProvideConverter creates the conversion use case.
func ProvideConverter(n dservice.CurrencyNormalizer, rates repository.RateSource) *usecase.Converter {
	return usecase.NewConverter(n, rates)
}

// ProvideHistory creates the history use case.
func ProvideHistory(
	cfg *config.Config,
	n dservice.CurrencyNormalizer,
	r dservice.RangeResolver,
	a dservice.Aggregator,
	rates repository.RateSource,
	m repository.Metrics,
	l *applogger.Logger,
) (*usecase.History, error) {
	pivot, err := n.NormalizeCurrency(cfg.History.Pivot)
	if err != nil {
		return nil, fmt.Errorf("history.pivot: %w", err)
	}
	return usecase.NewHistory(usecase.HistoryConfig{
		Pivot:           pivot,
		MinPoints:       cfg.History.MinPoints,
		ShrinkMinPoints: cfg.History.ShrinkMinPoints,
		ShrinkYears:     cfg.History.ShrinkYears,
		EarliestDate:    cfg.Earliest(),
		Location:        cfg.Location(),
	}, n, r, a, rates, m, l.With(applogger.String("component", "history"))), nil
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(l *applogger.Logger, conv *usecase.Converter, hist *usecase.History) xhttp.Handler {
	return api.NewRatesHandler(l, conv, hist)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *applogger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(h, l,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithMetricsPath(metricsPath),
	)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, srv *xhttp.Server, store cache.Store, l *applogger.Logger) *server.App {
	return server.New(cfg, srv, store, l)
}
