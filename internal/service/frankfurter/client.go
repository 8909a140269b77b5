package frankfurter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
	"github.com/Stella-M-560/currency-bot-api/internal/domain/repository"
	"github.com/Stella-M-560/currency-bot-api/pkg/cache"
	xhttp "github.com/Stella-M-560/currency-bot-api/pkg/http"
	applogger "github.com/Stella-M-560/currency-bot-api/pkg/logger"
	"github.com/Stella-M-560/currency-bot-api/pkg/util"
)

const (
	endpointLatest = "latest"
	endpointRange  = "range"

	cachePrefix = "upstream"
)

// Config holds upstream and caching parameters.
type Config struct {
	BaseURL      string
	Timeout      time.Duration // per attempt
	Retry        xhttp.RetryPolicy
	LatestTTL    time.Duration
	HistoryTTL   time.Duration
	WriteTimeout time.Duration
}

// Option configures Client.
type Option func(*Client)

// Client reads rates from a frankfurter-compatible API through the edge cache.
type Client struct {
	cfg     Config
	http    *xhttp.Client
	cache   cache.Store
	metrics repository.Metrics
	logger  *applogger.Logger
	group   singleflight.Group
}

// New creates a client. Without options it talks to the upstream directly with no cache.
func New(cfg Config, opts ...Option) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 2 * time.Second
	}
	c := &Client{
		cfg:     cfg,
		cache:   cache.Noop{},
		metrics: repository.NopMetrics{},
		logger:  applogger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout))
	}
	return c
}

// WithHTTPClient replaces the transport client.
func WithHTTPClient(h *xhttp.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCache enables read-through caching.
func WithCache(s cache.Store) Option {
	return func(c *Client) {
		if s != nil {
			c.cache = s
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m repository.Metrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Latest returns the most recent rate for from->to.
func (c *Client) Latest(ctx context.Context, from, to string) (models.Quote, error) {
	opts := &xhttp.RequestOptions{
		URL:         c.cfg.BaseURL + "/latest",
		QueryParams: pairQuery(from, to),
	}

	var resp latestResponse
	err := c.get(ctx, endpointLatest, opts, c.cfg.LatestTTL, func(body []byte) error {
		resp = latestResponse{}
		if err := json.Unmarshal(body, &resp); err != nil {
			return err
		}
		return checkLatest(&resp, to)
	})
	if err != nil {
		return models.Quote{}, err
	}

	date, _ := util.ParseDate(resp.Date)
	return models.Quote{From: from, To: to, Rate: resp.Rates[to], Date: date}, nil
}

// Range returns the daily series for from->to over r. Dates with bad rates are dropped.
func (c *Client) Range(ctx context.Context, from, to string, r models.DateRange) (models.RateSeries, error) {
	opts := &xhttp.RequestOptions{
		URL:         fmt.Sprintf("%s/%s..%s", c.cfg.BaseURL, r.Start, r.End),
		QueryParams: pairQuery(from, to),
	}

	var resp rangeResponse
	err := c.get(ctx, endpointRange, opts, c.cfg.HistoryTTL, func(body []byte) error {
		resp = rangeResponse{}
		if err := json.Unmarshal(body, &resp); err != nil {
			return err
		}
		if resp.Rates == nil {
			return errors.New("missing rates")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	points := make([]models.Point, 0, len(resp.Rates))
	for day, rates := range resp.Rates {
		d, ok := util.ParseDate(day)
		if !ok {
			continue
		}
		rate, ok := rates[to]
		if !ok {
			continue
		}
		points = append(points, models.Point{Date: d, Rate: rate})
	}
	return models.NewRateSeries(points), nil
}

// get serves a body from cache when decode accepts it, otherwise from the upstream.
// An upstream body that decode rejects is neither returned nor cached.
func (c *Client) get(ctx context.Context, endpoint string, opts *xhttp.RequestOptions, ttl time.Duration, decode func([]byte) error) error {
	full, err := opts.FullURL()
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}
	key := cache.GenerateKey(cachePrefix, full)

	if body, ok := c.readCache(ctx, key); ok {
		if err := decode(body); err == nil {
			return nil
		}
		c.logger.Warn("discarding unreadable cache entry", applogger.String("key", key))
	}

	// The shared fetch outlives any single caller; retry and per-attempt timeouts bound it.
	ch := c.group.DoChan(full, func() (interface{}, error) {
		body, err := c.fetch(context.WithoutCancel(ctx), endpoint, opts)
		if err != nil {
			return nil, err
		}
		if err := decode(body); err != nil {
			c.metrics.RecordError("upstream_decode")
			return nil, fmt.Errorf("%w: decode %s: %w", models.ErrUpstreamUnavailable, endpoint, err)
		}
		c.writeCache(key, body, ttl)
		return body, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		if err := decode(res.Val.([]byte)); err != nil {
			return fmt.Errorf("%w: decode %s: %w", models.ErrUpstreamUnavailable, endpoint, err)
		}
		return nil
	}
}

func (c *Client) fetch(ctx context.Context, endpoint string, opts *xhttp.RequestOptions) ([]byte, error) {
	start := time.Now()
	var body []byte
	err := c.cfg.Retry.Do(ctx, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
		b, err := c.http.Fetch(callCtx, opts)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	elapsed := time.Since(start)

	if err != nil {
		c.metrics.RecordUpstream(endpoint, "error", elapsed.Seconds())
		c.logger.Warn("upstream request failed",
			applogger.String("endpoint", endpoint),
			applogger.String("url", opts.URL),
			applogger.Duration("elapsed_ms", elapsed),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("%w: %s: %w", models.ErrUpstreamUnavailable, endpoint, err)
	}
	c.metrics.RecordUpstream(endpoint, "ok", elapsed.Seconds())
	return body, nil
}

func (c *Client) readCache(ctx context.Context, key string) ([]byte, bool) {
	b, ok, err := c.cache.GetBytes(ctx, key)
	switch {
	case err != nil:
		c.metrics.RecordCacheLookup("error")
		c.logger.Warn("cache read failed", applogger.String("key", key), applogger.Error(err))
		return nil, false
	case !ok:
		c.metrics.RecordCacheLookup("miss")
		return nil, false
	default:
		c.metrics.RecordCacheLookup("hit")
		return b, true
	}
}

// writeCache stores body in the background. Failures are logged, never returned.
func (c *Client) writeCache(key string, body []byte, ttl time.Duration) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.WriteTimeout)
		defer cancel()
		if err := c.cache.SetBytes(ctx, key, body, ttl); err != nil {
			c.metrics.RecordError("cache_write")
			c.logger.Warn("cache write failed", applogger.String("key", key), applogger.Error(err))
		}
	}()
}

func pairQuery(from, to string) map[string][]string {
	return map[string][]string{"from": {from}, "to": {to}}
}

func checkLatest(resp *latestResponse, to string) error {
	rate, ok := resp.Rates[to]
	if !ok {
		return fmt.Errorf("no rate for %s", to)
	}
	if !models.ValidRate(rate) {
		return fmt.Errorf("bad rate %v for %s", rate, to)
	}
	return nil
}
