package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Stella-M-560/currency-bot-api/internal/domain/models"
	drepo "github.com/Stella-M-560/currency-bot-api/internal/domain/repository"
	dservice "github.com/Stella-M-560/currency-bot-api/internal/domain/service"
	applogger "github.com/Stella-M-560/currency-bot-api/pkg/logger"
	"github.com/Stella-M-560/currency-bot-api/pkg/util"
)

const (
	stageDirect       = "direct"
	stageTriangulated = "triangulated"
	stageReduced      = "reduced"

	outcomeAccepted     = "accepted"
	outcomeInsufficient = "insufficient"
	outcomeError        = "error"
	outcomeSkipped      = "skipped"
)

// HistoryConfig tunes the fallback chain.
type HistoryConfig struct {
	Pivot           string
	MinPoints       int
	ShrinkMinPoints int
	ShrinkYears     []int
	EarliestDate    models.CalendarDate
	Location        *time.Location
}

// History summarizes historical rates, degrading through triangulation and shorter ranges
// when the direct series is too thin.
type History struct {
	cfg        HistoryConfig
	normalizer dservice.CurrencyNormalizer
	resolver   dservice.RangeResolver
	aggregator dservice.Aggregator
	rates      drepo.RateSource
	metrics    drepo.Metrics
	logger     *applogger.Logger
	now        func() time.Time
}

// NewHistory creates a new History instance.
func NewHistory(
	cfg HistoryConfig,
	normalizer dservice.CurrencyNormalizer,
	resolver dservice.RangeResolver,
	aggregator dservice.Aggregator,
	rates drepo.RateSource,
	metrics drepo.Metrics,
	l *applogger.Logger,
) *History {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if metrics == nil {
		metrics = drepo.NopMetrics{}
	}
	if l == nil {
		l = applogger.Nop()
	}
	return &History{
		cfg:        cfg,
		normalizer: normalizer,
		resolver:   resolver,
		aggregator: aggregator,
		rates:      rates,
		metrics:    metrics,
		logger:     l,
		now:        time.Now,
	}
}

// WithClock replaces the wall clock used to decide "today".
func (h *History) WithClock(now func() time.Time) *History {
	h.now = now
	return h
}

// Summarize resolves the requested range, fetches a usable series and aggregates it.
func (h *History) Summarize(ctx context.Context, req models.HistoryRequest) (models.HistoryResult, error) {
	from, err := h.normalizer.NormalizeCurrency(req.From)
	if err != nil {
		return models.HistoryResult{}, fmt.Errorf("from: %w", err)
	}
	to, err := h.normalizer.NormalizeCurrency(req.To)
	if err != nil {
		return models.HistoryResult{}, fmt.Errorf("to: %w", err)
	}
	if from == to {
		return models.HistoryResult{}, fmt.Errorf("%w: from and to are both %s", models.ErrInvalidRequest, from)
	}

	today := util.Today(h.now(), h.cfg.Location)
	requested := h.resolver.Resolve(req.Range, today)
	query := h.clampEarliest(requested)

	res := models.HistoryResult{From: from, To: to, Requested: requested}
	series, err := h.fetch(ctx, from, to, query, &res)
	if err != nil {
		return res, err
	}

	res.Points = series.Len()
	res.Report = h.aggregator.Aggregate(series)

	first, last, _ := series.Span()
	h.logger.Debug("history summarized",
		applogger.String("pair", from+to),
		applogger.String("source", string(res.Source)),
		applogger.Bool("reduced", res.Reduced()),
		applogger.Int("points", res.Points),
		applogger.String("first", first.String()),
		applogger.String("last", last.String()),
		applogger.Float64("change_pct", res.Report.Overall.ChangePct),
	)
	return res, nil
}

// fetch walks direct, triangulated, then shrinking ranges and fills Source, Pivot and Effective on success.
func (h *History) fetch(ctx context.Context, from, to string, query models.DateRange, res *models.HistoryResult) (models.RateSeries, error) {
	var (
		answered bool
		lastErr  error
		best     int
	)
	note := func(stage string, s models.RateSeries, err error, need int) bool {
		switch {
		case err != nil:
			lastErr = err
			h.metrics.RecordFallback(stage, outcomeError)
			h.logger.Info("history stage failed",
				applogger.String("stage", stage),
				applogger.String("pair", from+to),
				applogger.Error(err),
			)
			return false
		case s.Len() < need:
			answered = true
			if s.Len() > best {
				best = s.Len()
			}
			h.metrics.RecordFallback(stage, outcomeInsufficient)
			h.logger.Info("history stage insufficient",
				applogger.String("stage", stage),
				applogger.String("pair", from+to),
				applogger.Int("points", s.Len()),
				applogger.Int("required", need),
			)
			return false
		default:
			h.metrics.RecordFallback(stage, outcomeAccepted)
			return true
		}
	}

	minPoints := Threshold(h.cfg.MinPoints, query)

	s, err := h.rates.Range(ctx, from, to, query)
	if note(stageDirect, s, err, minPoints) {
		res.Source, res.Effective = models.SourceDirect, query
		return s, nil
	}

	if pivot := h.cfg.Pivot; pivot != "" && from != pivot && to != pivot {
		s, legAnswered, err := h.triangulate(ctx, from, to, pivot, query)
		if legAnswered {
			answered = true
		}
		if note(stageTriangulated, s, err, minPoints) {
			res.Source, res.Effective, res.Pivot = models.SourceTriangulated, query, pivot
			return s, nil
		}
	} else {
		h.metrics.RecordFallback(stageTriangulated, outcomeSkipped)
	}

	for _, years := range h.cfg.ShrinkYears {
		if ctx.Err() != nil {
			break
		}
		span := h.clampEarliest(h.resolver.SpanYears(years, query.End))
		if !span.Start.After(query.Start) {
			continue
		}
		stage := fmt.Sprintf("%s_%dy", stageReduced, years)
		s, err := h.rates.Range(ctx, from, to, span)
		if note(stage, s, err, Threshold(h.cfg.ShrinkMinPoints, span)) {
			h.logger.Info("history served from reduced range",
				applogger.String("pair", from+to),
				applogger.String("requested", query.String()),
				applogger.String("effective", span.String()),
			)
			res.Source, res.Effective = models.SourceReduced, span
			return s, nil
		}
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrUpstreamUnavailable, ctx.Err())
	}
	if !answered {
		if lastErr == nil {
			lastErr = errors.New("no attempt made")
		}
		return nil, fmt.Errorf("history %s->%s: %w", from, to, ensureUpstream(lastErr))
	}
	return nil, fmt.Errorf("%w: %s->%s best %d points over %s", models.ErrInsufficientData, from, to, best, query)
}

// triangulate runs both legs through pivot in parallel; both must succeed.
// answered reports whether at least one leg got a response.
func (h *History) triangulate(ctx context.Context, from, to, pivot string, r models.DateRange) (models.RateSeries, bool, error) {
	var leg1, leg2 models.RateSeries
	var ok1, ok2 bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := h.rates.Range(gctx, from, pivot, r)
		if err != nil {
			return fmt.Errorf("leg %s->%s: %w", from, pivot, err)
		}
		leg1, ok1 = s, true
		return nil
	})
	g.Go(func() error {
		s, err := h.rates.Range(gctx, pivot, to, r)
		if err != nil {
			return fmt.Errorf("leg %s->%s: %w", pivot, to, err)
		}
		leg2, ok2 = s, true
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, ok1 || ok2, err
	}
	return models.Cross(leg1, leg2), true, nil
}

func (h *History) clampEarliest(r models.DateRange) models.DateRange {
	e := h.cfg.EarliestDate
	if e.IsValid() && r.Start.Before(e) {
		r.Start = e
		if r.End.Before(r.Start) {
			r.End = r.Start
		}
	}
	return r
}

// Threshold caps base by half the business days expected in r, never below 1.
func Threshold(base int, r models.DateRange) int {
	capped := int(math.Ceil(float64(r.Days()) * 5 / 7 * 0.5))
	if capped < 1 {
		capped = 1
	}
	if base <= 0 || base > capped {
		return capped
	}
	return base
}

func ensureUpstream(err error) error {
	if errors.Is(err, models.ErrUpstreamUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", models.ErrUpstreamUnavailable, err)
}
