// Package aggregate computes per-year summaries and rankings over an
// indicator table. All functions are pure and leave their input untouched.
package aggregate

import (
	"sort"

	"github.com/ougirez/demostats/internal/domain"
	"github.com/shopspring/decimal"
)

// FilterByYear returns the observations of year in retrieval order.
func FilterByYear(table *domain.Table, year domain.Year) []domain.Observation {
	res := make([]domain.Observation, 0)
	if table == nil {
		return res
	}

	for _, obs := range table.Observations {
		if obs.Year == year {
			res = append(res, obs)
		}
	}
	return res
}

// AggregateByYear returns one aggregate per year present, ascending.
// Ties for min and max go to the earliest observation.
func AggregateByYear(table *domain.Table) []domain.YearlyAggregate {
	if table == nil {
		return []domain.YearlyAggregate{}
	}

	type acc struct {
		agg domain.YearlyAggregate
		sum decimal.Decimal
	}

	byYear := make(map[domain.Year]*acc)
	for _, obs := range table.Observations {
		a, ok := byYear[obs.Year]
		if !ok {
			byYear[obs.Year] = &acc{
				agg: domain.YearlyAggregate{
					Year:      obs.Year,
					Count:     1,
					MinValue:  obs.Value,
					MinEntity: obs.EntityName,
					MaxValue:  obs.Value,
					MaxEntity: obs.EntityName,
				},
				sum: decimal.NewFromFloat(obs.Value),
			}
			continue
		}

		a.agg.Count++
		a.sum = a.sum.Add(decimal.NewFromFloat(obs.Value))
		if obs.Value < a.agg.MinValue {
			a.agg.MinValue = obs.Value
			a.agg.MinEntity = obs.EntityName
		}
		if obs.Value > a.agg.MaxValue {
			a.agg.MaxValue = obs.Value
			a.agg.MaxEntity = obs.EntityName
		}
	}

	res := make([]domain.YearlyAggregate, 0, len(byYear))
	for _, a := range byYear {
		a.agg.Mean = a.sum.Div(decimal.NewFromInt(int64(a.agg.Count))).InexactFloat64()
		res = append(res, a.agg)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Year < res[j].Year })

	return res
}

// TopN returns at most n observations of year, largest value first.
// Equal values keep retrieval order.
func TopN(table *domain.Table, year domain.Year, n int) []domain.Observation {
	if n <= 0 {
		return []domain.Observation{}
	}

	obs := FilterByYear(table, year)
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Value > obs[j].Value })

	if len(obs) > n {
		obs = obs[:n]
	}
	return obs
}

// Years returns the distinct years of table, ascending.
func Years(table *domain.Table) []domain.Year {
	res := make([]domain.Year, 0)
	if table == nil {
		return res
	}

	seen := make(map[domain.Year]struct{})
	for _, obs := range table.Observations {
		if _, ok := seen[obs.Year]; ok {
			continue
		}
		seen[obs.Year] = struct{}{}
		res = append(res, obs.Year)
	}
	sort.Ints(res)
	return res
}

// LatestYear returns the most recent year of table; ok is false when empty.
func LatestYear(table *domain.Table) (year domain.Year, ok bool) {
	if table == nil {
		return 0, false
	}
	for _, obs := range table.Observations {
		if !ok || obs.Year > year {
			year, ok = obs.Year, true
		}
	}
	return year, ok
}

// EntitySeries returns the yearly values of one entity, ascending by year.
func EntitySeries(table *domain.Table, entity string) []domain.SeriesPoint {
	res := make([]domain.SeriesPoint, 0)
	if table == nil {
		return res
	}

	for _, obs := range table.Observations {
		if obs.EntityName == entity {
			res = append(res, domain.SeriesPoint{Year: obs.Year, Value: obs.Value})
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Year < res[j].Year })
	return res
}

// Scale places each value of ranked between the smallest (0) and largest (1)
// ranked value, 0.5 for all when they are equal.
func Scale(ranked []domain.Observation) []domain.RankedEntry {
	res := make([]domain.RankedEntry, len(ranked))
	if len(ranked) == 0 {
		return res
	}

	lo, hi := ranked[0].Value, ranked[0].Value
	for _, obs := range ranked[1:] {
		lo = min(lo, obs.Value)
		hi = max(hi, obs.Value)
	}

	for i, obs := range ranked {
		scale := 0.5
		if hi != lo {
			scale = (obs.Value - lo) / (hi - lo)
		}
		res[i] = domain.RankedEntry{Observation: obs, Scale: scale}
	}
	return res
}
