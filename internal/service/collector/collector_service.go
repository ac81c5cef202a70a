package collector

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/demostats/internal/domain"
	"github.com/ougirez/demostats/internal/domain/dto"
	"github.com/ougirez/demostats/internal/pkg/constants"
	"github.com/ougirez/demostats/internal/pkg/logger"
	"github.com/ougirez/demostats/internal/pkg/store"
	"github.com/ougirez/demostats/internal/pkg/worldbank"
	"golang.org/x/sync/errgroup"
)

// PageSource returns the raw records of one page of an indicator.
type PageSource interface {
	FetchPage(ctx context.Context, code string, page int, span worldbank.Span) ([]dto.Record, error)
}

type Options struct {
	PageSize int
	Workers  int
	Span     worldbank.Span
}

type Service struct {
	source     PageSource
	store      store.Store
	indicators []domain.Indicator
	opts       Options
	running    atomic.Bool
}

func NewCollectorService(source PageSource, store store.Store, indicators []domain.Indicator, opts Options) *Service {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Service{
		source:     source,
		store:      store,
		indicators: indicators,
		opts:       opts,
	}
}

// Result is what was retrieved for one indicator. Err is set when
// pagination stopped on a failure; Observations then hold the pages
// retrieved before it.
type Result struct {
	Observations []domain.Observation
	Pages        int
	Records      int
	Err          error
}

// FetchIndicator pages through the source until a page is empty or shorter
// than the page size, or a page fails.
func (s *Service) FetchIndicator(ctx context.Context, indicator domain.Indicator) Result {
	var res Result

	for page := 1; ; page++ {
		logger.Debugf(ctx, "fetching page %d for %s", page, indicator.Code)

		records, err := s.source.FetchPage(ctx, indicator.Code, page, s.opts.Span)
		if err != nil {
			res.Err = fmt.Errorf("FetchPage, indicator-%s, page-%d: %w", indicator.Code, page, err)
			return res
		}
		res.Pages++

		if len(records) == 0 {
			return res
		}
		res.Records += len(records)

		for _, rec := range records {
			obs, ok, convErr := rec.Observation()
			if convErr != nil {
				logger.Warnf(ctx, "skipping record of %s: %s", indicator.Code, convErr.Error())
				continue
			}
			if !ok {
				continue
			}
			res.Observations = append(res.Observations, obs)
		}

		if len(records) < s.opts.PageSize {
			return res
		}
	}
}

// CollectAll fetches and saves every configured indicator. A failing
// indicator never stops the others; its problem is reported in its entry.
func (s *Service) CollectAll(ctx context.Context) ([]domain.IndicatorReport, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, constants.ErrCollectInProgress
	}
	defer s.running.Store(false)

	ctx = logger.With(ctx, constants.CtxKeyRunID, uuid.NewString())
	started := time.Now()
	logger.Infof(ctx, "collecting %d indicators for %s", len(s.indicators), s.opts.Span)

	reports := make([]domain.IndicatorReport, len(s.indicators))

	var eg errgroup.Group
	eg.SetLimit(s.opts.Workers)
	for i, indicator := range s.indicators {
		i, indicator := i, indicator
		eg.Go(func() error {
			reports[i] = s.collectOne(ctx, indicator)
			return nil
		})
	}
	_ = eg.Wait()

	logger.Infof(ctx, "collection finished in %s", time.Since(started).Round(time.Millisecond))
	return reports, ctx.Err()
}

func (s *Service) collectOne(ctx context.Context, indicator domain.Indicator) domain.IndicatorReport {
	ctx = logger.With(ctx, "indicator", indicator.Name)
	logger.Infof(ctx, "collecting %s (%s)", indicator.Description, indicator.Code)

	res := s.FetchIndicator(ctx, indicator)
	report := domain.IndicatorReport{
		Indicator:    indicator.Name,
		Pages:        res.Pages,
		Records:      res.Records,
		Observations: len(res.Observations),
	}
	if res.Err != nil {
		logger.Errorf(ctx, "retrieval of %s stopped early: %s", indicator.Code, res.Err.Error())
		report.Error = res.Err.Error()
	}

	if len(res.Observations) == 0 {
		logger.Warnf(ctx, "no data found for %s", indicator.Description)
		return report
	}

	path, err := s.store.SaveTable(ctx, indicator.Name, &domain.Table{
		Description:  indicator.Description,
		Unit:         indicator.Unit,
		Observations: res.Observations,
	})
	if err != nil {
		logger.Errorf(ctx, "store.SaveTable: %s", err.Error())
		report.Error = joinErr(report.Error, fmt.Sprintf("store.SaveTable: %s", err.Error()))
		return report
	}
	report.Path = path

	if first, last, ok := yearRange(res.Observations); ok {
		logger.Infof(ctx, "%s: %d observations covering %d-%d", indicator.Name, len(res.Observations), first, last)
	}

	return report
}

func yearRange(observations []domain.Observation) (first, last domain.Year, ok bool) {
	for _, obs := range observations {
		if !ok {
			first, last, ok = obs.Year, obs.Year, true
			continue
		}
		first = min(first, obs.Year)
		last = max(last, obs.Year)
	}
	return first, last, ok
}

func joinErr(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
