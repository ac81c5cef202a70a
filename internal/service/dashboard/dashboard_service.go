package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/ougirez/demostats/internal/domain"
	"github.com/ougirez/demostats/internal/pkg/aggregate"
	"github.com/ougirez/demostats/internal/pkg/constants"
	"github.com/ougirez/demostats/internal/pkg/logger"
	"github.com/ougirez/demostats/internal/pkg/store"
)

const defaultColor = "#000000"

// Catalog is the presentation metadata the service is built with.
type Catalog struct {
	Indicators      []domain.Indicator
	TopN            int
	Countries       []string
	NotableEntities []domain.NotableEntity
}

type Service struct {
	store      store.Store
	indicators []domain.Indicator
	byName     map[string]domain.Indicator
	topN       int
	countries  map[string]struct{}
	notable    map[string]domain.NotableEntity
}

func NewDashboardService(store store.Store, catalog Catalog) *Service {
	s := &Service{
		store:      store,
		indicators: catalog.Indicators,
		byName:     make(map[string]domain.Indicator, len(catalog.Indicators)),
		topN:       catalog.TopN,
		countries:  make(map[string]struct{}, len(catalog.Countries)),
		notable:    make(map[string]domain.NotableEntity, len(catalog.NotableEntities)),
	}
	if s.topN <= 0 {
		s.topN = 10
	}
	for _, ind := range catalog.Indicators {
		s.byName[ind.Name] = ind
	}
	for _, c := range catalog.Countries {
		s.countries[c] = struct{}{}
	}
	for _, e := range catalog.NotableEntities {
		s.notable[e.Name] = e
	}
	return s
}

func (s *Service) DefaultTopN() int {
	return s.topN
}

// Indicators lists the catalog, flagging indicators that already have a table.
func (s *Service) Indicators(ctx context.Context) ([]domain.IndicatorInfo, error) {
	names, err := s.store.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.Discover: %w", err)
	}

	available := make(map[string]bool, len(names))
	for _, n := range names {
		available[n] = true
	}

	res := make([]domain.IndicatorInfo, 0, len(s.indicators))
	for _, ind := range s.indicators {
		res = append(res, domain.IndicatorInfo{Indicator: ind, Available: available[ind.Name]})
	}
	return res, nil
}

// Table loads the table of an indicator. A table that is missing or cannot
// be read comes back empty so that charts degrade instead of failing.
func (s *Service) Table(ctx context.Context, name string) (domain.Indicator, *domain.Table, error) {
	ind, ok := s.byName[name]
	if !ok {
		return domain.Indicator{}, nil, fmt.Errorf("indicator %q: %w", name, constants.ErrUnknownIndicator)
	}

	table, err := s.store.LoadTable(ctx, name)
	if err != nil {
		if errors.Is(err, constants.ErrTableNotFound) {
			logger.Warnf(ctx, "no table for %s yet", name)
		} else {
			logger.Errorf(ctx, "store.LoadTable, name-%s: %s", name, err.Error())
		}
		table = &domain.Table{Description: ind.Description, Unit: ind.Unit, Observations: []domain.Observation{}}
	}

	return ind, table, nil
}

func (s *Service) Years(ctx context.Context, name string) ([]domain.Year, error) {
	_, table, err := s.Table(ctx, name)
	if err != nil {
		return nil, err
	}
	return aggregate.Years(table), nil
}

func (s *Service) Observations(ctx context.Context, name string, year domain.Year) ([]domain.Observation, error) {
	_, table, err := s.Table(ctx, name)
	if err != nil {
		return nil, err
	}
	return aggregate.FilterByYear(table, year), nil
}

// Aggregates is the min/mean/max time series of an indicator.
func (s *Service) Aggregates(ctx context.Context, name string) ([]domain.YearlyAggregate, error) {
	_, table, err := s.Table(ctx, name)
	if err != nil {
		return nil, err
	}
	return aggregate.AggregateByYear(table), nil
}

// Top ranks the entities of year. n <= 0 means the configured default.
func (s *Service) Top(ctx context.Context, name string, year domain.Year, n int) ([]domain.RankedEntry, error) {
	_, table, err := s.Table(ctx, name)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.topN
	}
	return aggregate.Scale(aggregate.TopN(table, year, n)), nil
}

// MapLayer returns one point per entity of year. Under the top_n_only policy
// only the top entities keep their value.
func (s *Service) MapLayer(ctx context.Context, name string, year domain.Year) ([]domain.MapPoint, error) {
	ind, table, err := s.Table(ctx, name)
	if err != nil {
		return nil, err
	}

	var keep map[string]struct{}
	if ind.HighlightPolicy() == domain.HighlightTopNOnly {
		top := aggregate.TopN(table, year, s.topN)
		keep = make(map[string]struct{}, len(top))
		for _, obs := range top {
			keep[obs.EntityCode] = struct{}{}
		}
	}

	observations := aggregate.FilterByYear(table, year)
	points := make([]domain.MapPoint, 0, len(observations))
	for _, obs := range observations {
		point := domain.MapPoint{Entity: obs.EntityName, EntityCode: obs.EntityCode}
		if _, ok := keep[obs.EntityCode]; keep == nil || ok {
			value := obs.Value
			point.Value = &value
		}
		points = append(points, point)
	}
	return points, nil
}

// Evolution follows over time the n countries leading at the latest year.
func (s *Service) Evolution(ctx context.Context, name string, n int) (domain.Year, []domain.EntitySeries, error) {
	ind, table, err := s.Table(ctx, name)
	if err != nil {
		return 0, nil, err
	}
	if !ind.Display.Evolution {
		return 0, nil, fmt.Errorf("indicator %q: %w", name, constants.ErrEvolutionDisabled)
	}
	if n <= 0 {
		n = s.topN
	}

	latest, ok := aggregate.LatestYear(table)
	if !ok {
		return 0, []domain.EntitySeries{}, nil
	}

	candidates := make([]domain.Observation, 0)
	for _, obs := range aggregate.FilterByYear(table, latest) {
		if s.isCountry(obs.EntityName) {
			candidates = append(candidates, obs)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Value > candidates[j].Value })
	if len(candidates) > n {
		candidates = candidates[:n]
	}

	series := make([]domain.EntitySeries, 0, len(candidates))
	for _, obs := range candidates {
		series = append(series, domain.EntitySeries{
			Entity: obs.EntityName,
			Label:  s.label(obs.EntityName),
			Color:  s.color(obs.EntityName),
			Points: aggregate.EntitySeries(table, obs.EntityName),
		})
	}
	return latest, series, nil
}

func (s *Service) isCountry(entity string) bool {
	if len(s.countries) == 0 {
		return true
	}
	_, ok := s.countries[entity]
	return ok
}

func (s *Service) label(entity string) string {
	if e, ok := s.notable[entity]; ok && e.Label != "" {
		return e.Label
	}
	return entity
}

func (s *Service) color(entity string) string {
	if e, ok := s.notable[entity]; ok && e.Color != "" {
		return e.Color
	}
	return defaultColor
}
