package dashboard

import (
	"context"
	"testing"

	"github.com/ougirez/demostats/internal/domain"
	"github.com/ougirez/demostats/internal/pkg/constants"
	"github.com/ougirez/demostats/internal/pkg/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	population = domain.Indicator{
		Code: "SP.POP.TOTL", Name: "total_population", Description: "Total population", Unit: "inhabitants",
		Display: domain.Display{Evolution: true},
	}
	mortality = domain.Indicator{
		Code: "SP.DYN.CDRT.IN", Name: "mortality_rate", Description: "Crude death rate", Unit: "deaths/1000 inhabitants",
		Display: domain.Display{Highlight: domain.HighlightTopNOnly},
	}
	fertility = domain.Indicator{
		Code: "SP.DYN.TFRT.IN", Name: "fertility_rate", Description: "Fertility rate", Unit: "children per woman",
	}
)

func o(entity, code string, year int, value float64) domain.Observation {
	return domain.Observation{EntityName: entity, EntityCode: code, Year: year, Value: value}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	s := store.NewStore(afero.NewMemMapFs(), "/data")

	_, err := s.SaveTable(ctx, population.Name, &domain.Table{
		Description: population.Description,
		Unit:        population.Unit,
		Observations: []domain.Observation{
			o("World", "1W", 2021, 7900),
			o("China", "CN", 2021, 1412),
			o("India", "IN", 2021, 1407),
			o("France", "FR", 2021, 68),
			o("China", "CN", 2020, 1411),
			o("India", "IN", 2020, 1396),
			o("France", "FR", 2020, 67),
		},
	})
	require.NoError(t, err)

	_, err = s.SaveTable(ctx, mortality.Name, &domain.Table{
		Description: mortality.Description,
		Unit:        mortality.Unit,
		Observations: []domain.Observation{
			o("Chad", "TD", 2020, 12.1),
			o("Japan", "JP", 2020, 11.1),
			o("Qatar", "QA", 2020, 1.2),
			o("Chad", "TD", 2019, 12.4),
		},
	})
	require.NoError(t, err)

	return NewDashboardService(s, Catalog{
		Indicators: []domain.Indicator{population, mortality, fertility},
		TopN:       2,
		Countries:  []string{"China", "India", "France"},
		NotableEntities: []domain.NotableEntity{
			{Name: "China", Color: "#1f77b4"},
			{Name: "India", Label: "Bharat", Color: "#ff7f0e"},
		},
	})
}

func TestIndicators(t *testing.T) {
	infos, err := newTestService(t).Indicators(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 3)

	assert.Equal(t, "total_population", infos[0].Name)
	assert.True(t, infos[0].Available)
	assert.True(t, infos[1].Available)
	assert.False(t, infos[2].Available)
}

func TestTableUnknownAndMissing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Table(ctx, "gdp")
	assert.ErrorIs(t, err, constants.ErrUnknownIndicator)

	ind, table, err := svc.Table(ctx, fertility.Name)
	require.NoError(t, err)
	assert.Equal(t, fertility, ind)
	assert.Equal(t, "Fertility rate", table.Description)
	assert.Empty(t, table.Observations)

	aggs, err := svc.Aggregates(ctx, fertility.Name)
	require.NoError(t, err)
	assert.Empty(t, aggs)

	top, err := svc.Top(ctx, fertility.Name, 2020, 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestAggregatesAndYears(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	years, err := svc.Years(ctx, mortality.Name)
	require.NoError(t, err)
	assert.Equal(t, []int{2019, 2020}, years)

	aggs, err := svc.Aggregates(ctx, mortality.Name)
	require.NoError(t, err)
	require.Len(t, aggs, 2)
	assert.Equal(t, "Chad", aggs[1].MaxEntity)
	assert.Equal(t, "Qatar", aggs[1].MinEntity)
	assert.InDelta(t, 8.1333333, aggs[1].Mean, 1e-6)
}

func TestTopUsesDefaultN(t *testing.T) {
	top, err := newTestService(t).Top(context.Background(), mortality.Name, 2020, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Chad", top[0].EntityName)
	assert.Equal(t, 1.0, top[0].Scale)
	assert.Equal(t, 0.0, top[1].Scale)
}

func TestMapLayer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("top_n_only hides the rest", func(t *testing.T) {
		points, err := svc.MapLayer(ctx, mortality.Name, 2020)
		require.NoError(t, err)
		require.Len(t, points, 3)

		require.NotNil(t, points[0].Value)
		assert.Equal(t, 12.1, *points[0].Value)
		require.NotNil(t, points[1].Value)
		assert.Nil(t, points[2].Value)
	})

	t.Run("none shows everything", func(t *testing.T) {
		points, err := svc.MapLayer(ctx, population.Name, 2020)
		require.NoError(t, err)
		require.Len(t, points, 3)
		for _, p := range points {
			assert.NotNil(t, p.Value)
		}
	})

	t.Run("absent year", func(t *testing.T) {
		points, err := svc.MapLayer(ctx, population.Name, 1950)
		require.NoError(t, err)
		assert.Empty(t, points)
	})
}

func TestEvolution(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	year, series, err := svc.Evolution(ctx, population.Name, 0)
	require.NoError(t, err)
	assert.Equal(t, 2021, year)
	require.Len(t, series, 2, "aggregates such as World are not countries")

	assert.Equal(t, "China", series[0].Entity)
	assert.Equal(t, "China", series[0].Label)
	assert.Equal(t, "#1f77b4", series[0].Color)
	assert.Equal(t, []domain.SeriesPoint{{Year: 2020, Value: 1411}, {Year: 2021, Value: 1412}}, series[0].Points)

	assert.Equal(t, "Bharat", series[1].Label)

	_, series, err = svc.Evolution(ctx, population.Name, 3)
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, defaultColor, series[2].Color)

	_, _, err = svc.Evolution(ctx, mortality.Name, 0)
	assert.ErrorIs(t, err, constants.ErrEvolutionDisabled)
}
