package aggregate

import (
	"testing"

	"github.com/ougirez/demostats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obs(entity string, year int, value float64) domain.Observation {
	return domain.Observation{EntityName: entity, EntityCode: entity[:2], Year: year, Value: value}
}

func testTable() *domain.Table {
	return &domain.Table{
		Description: "Fertility rate",
		Unit:        "children per woman",
		Observations: []domain.Observation{
			obs("Niger", 2020, 6.7),
			obs("France", 2020, 1.8),
			obs("Korea", 2020, 0.8),
			obs("Chad", 2020, 6.7),
			obs("Niger", 2019, 6.8),
			obs("France", 2019, 1.9),
			obs("Somalia", 2021, 6.3),
		},
	}
}

func TestFilterByYear(t *testing.T) {
	got := FilterByYear(testTable(), 2019)
	assert.Equal(t, []domain.Observation{obs("Niger", 2019, 6.8), obs("France", 2019, 1.9)}, got)
}

func TestAbsentYear(t *testing.T) {
	table := testTable()

	assert.Empty(t, FilterByYear(table, 1990))
	assert.NotNil(t, FilterByYear(table, 1990))
	assert.Empty(t, TopN(table, 1990, 10))
	assert.Empty(t, FilterByYear(nil, 2020))
	assert.Empty(t, AggregateByYear(&domain.Table{}))
}

func TestAggregateByYear(t *testing.T) {
	aggs := AggregateByYear(testTable())
	require.Len(t, aggs, 3)

	assert.Equal(t, []int{2019, 2020, 2021}, []int{aggs[0].Year, aggs[1].Year, aggs[2].Year})

	y2020 := aggs[1]
	assert.Equal(t, 4, y2020.Count)
	assert.InDelta(t, 4.0, y2020.Mean, 1e-9)
	assert.Equal(t, 0.8, y2020.MinValue)
	assert.Equal(t, "Korea", y2020.MinEntity)
	assert.Equal(t, 6.7, y2020.MaxValue)
	assert.Equal(t, "Niger", y2020.MaxEntity, "ties go to the first observation")

	y2021 := aggs[2]
	assert.Equal(t, 1, y2021.Count)
	assert.Equal(t, 6.3, y2021.Mean)
	assert.Equal(t, "Somalia", y2021.MinEntity)
	assert.Equal(t, "Somalia", y2021.MaxEntity)
}

func TestAggregateMaxMatchesValues(t *testing.T) {
	table := testTable()
	for _, agg := range AggregateByYear(table) {
		var maxValue float64
		for i, o := range FilterByYear(table, agg.Year) {
			if i == 0 || o.Value > maxValue {
				maxValue = o.Value
			}
		}
		assert.Equal(t, maxValue, agg.MaxValue, "year %d", agg.Year)
	}
}

func TestTopN(t *testing.T) {
	table := testTable()

	top := TopN(table, 2020, 2)
	assert.Equal(t, []domain.Observation{obs("Niger", 2020, 6.7), obs("Chad", 2020, 6.7)}, top)

	all := TopN(table, 2020, 100)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Value, all[i].Value)
	}

	assert.Empty(t, TopN(table, 2020, 0))
	assert.Equal(t, "Niger", table.Observations[0].EntityName, "input must not be reordered")
	assert.Equal(t, "France", table.Observations[1].EntityName, "input must not be reordered")
}

func TestYearsAndLatest(t *testing.T) {
	assert.Equal(t, []int{2019, 2020, 2021}, Years(testTable()))

	year, ok := LatestYear(testTable())
	assert.True(t, ok)
	assert.Equal(t, 2021, year)

	_, ok = LatestYear(&domain.Table{})
	assert.False(t, ok)
}

func TestEntitySeries(t *testing.T) {
	series := EntitySeries(testTable(), "Niger")
	assert.Equal(t, []domain.SeriesPoint{{Year: 2019, Value: 6.8}, {Year: 2020, Value: 6.7}}, series)
	assert.Empty(t, EntitySeries(testTable(), "Atlantis"))
}

func TestScale(t *testing.T) {
	ranked := Scale([]domain.Observation{obs("Aa", 1, 10), obs("Bb", 1, 5), obs("Cc", 1, 0)})
	require.Len(t, ranked, 3)
	assert.Equal(t, 1.0, ranked[0].Scale)
	assert.Equal(t, 0.5, ranked[1].Scale)
	assert.Equal(t, 0.0, ranked[2].Scale)

	flat := Scale([]domain.Observation{obs("Aa", 1, 3), obs("Bb", 1, 3)})
	assert.Equal(t, 0.5, flat[0].Scale)
	assert.Empty(t, Scale(nil))
}
