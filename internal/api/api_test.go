package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ougirez/demostats/internal/domain"
	"github.com/ougirez/demostats/internal/domain/dto"
	"github.com/ougirez/demostats/internal/pkg/store"
	"github.com/ougirez/demostats/internal/pkg/worldbank"
	"github.com/ougirez/demostats/internal/service/collector"
	"github.com/ougirez/demostats/internal/service/dashboard"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource serves a fixed set of pages per indicator code.
type stubSource struct {
	pages map[string][][]dto.Record
}

func (s *stubSource) FetchPage(_ context.Context, code string, page int, _ worldbank.Span) ([]dto.Record, error) {
	pages, ok := s.pages[code]
	if !ok {
		return nil, errors.New("unknown indicator code")
	}
	if page > len(pages) {
		return nil, nil
	}
	return pages[page-1], nil
}

func rec(country, id, date string, value *float64) dto.Record {
	return dto.Record{Country: dto.Ref{ID: id, Value: country}, Date: date, Value: value}
}

func f(v float64) *float64 { return &v }

var (
	population = domain.Indicator{
		Code: "SP.POP.TOTL", Name: "total_population", Description: "Total population", Unit: "inhabitants",
		Display: domain.Display{Evolution: true},
	}
	mortality = domain.Indicator{
		Code: "SP.DYN.CDRT.IN", Name: "mortality_rate", Description: "Crude death rate", Unit: "deaths/1000 inhabitants",
		Display: domain.Display{Highlight: domain.HighlightTopNOnly},
	}
)

func newTestAPI(t *testing.T) *APIService {
	t.Helper()

	s := store.NewStore(afero.NewMemMapFs(), "/data")
	indicators := []domain.Indicator{population, mortality}

	src := &stubSource{pages: map[string][][]dto.Record{
		"SP.POP.TOTL": {{
			rec("China", "CN", "2020", f(1411)),
			rec("India", "IN", "2020", f(1396)),
			rec("France", "FR", "2020", f(67)),
			rec("France", "FR", "2019", f(66)),
			rec("Eritrea", "ER", "2020", nil),
		}},
	}}

	collectorSvc := collector.NewCollectorService(src, s, indicators, collector.Options{
		PageSize: 100,
		Workers:  2,
		Span:     worldbank.Span{Start: 2019, End: 2020},
	})
	dashboardSvc := dashboard.NewDashboardService(s, dashboard.Catalog{
		Indicators: indicators,
		TopN:       2,
	})

	svc, err := NewAPIService(dashboardSvc, collectorSvc, Options{
		AllowOrigins: []string{"http://localhost:3000"},
		DefaultYear:  2020,
	})
	require.NoError(t, err)
	return svc
}

func do(t *testing.T, svc *APIService, method, target string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	svc.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec
}

func TestCollectThenQuery(t *testing.T) {
	svc := newTestAPI(t)

	var collected struct {
		Reports []domain.IndicatorReport `json:"reports"`
	}
	res := do(t, svc, http.MethodPost, "/api/v1/collect", &collected)
	require.Equal(t, http.StatusOK, res.Code)
	assert.NotEmpty(t, res.Header().Get("X-Request-ID"))
	require.Len(t, collected.Reports, 2)
	assert.Equal(t, 4, collected.Reports[0].Observations)
	assert.Equal(t, "/data/total_population.csv", collected.Reports[0].Path)
	assert.NotEmpty(t, collected.Reports[1].Error)

	var infos []domain.IndicatorInfo
	res = do(t, svc, http.MethodGet, "/api/v1/indicators", &infos)
	require.Equal(t, http.StatusOK, res.Code)
	require.Len(t, infos, 2)
	assert.True(t, infos[0].Available)
	assert.False(t, infos[1].Available)

	var years []int
	do(t, svc, http.MethodGet, "/api/v1/indicators/total_population/years", &years)
	assert.Equal(t, []int{2019, 2020}, years)

	var aggs []domain.YearlyAggregate
	do(t, svc, http.MethodGet, "/api/v1/indicators/total_population/aggregates", &aggs)
	require.Len(t, aggs, 2)
	assert.Equal(t, "China", aggs[1].MaxEntity)

	var top struct {
		Year    int                  `json:"year"`
		Entries []domain.RankedEntry `json:"entries"`
	}
	do(t, svc, http.MethodGet, "/api/v1/indicators/total_population/top?n=5", &top)
	assert.Equal(t, 2020, top.Year)
	require.Len(t, top.Entries, 3)
	assert.Equal(t, "China", top.Entries[0].EntityName)

	var observations []domain.Observation
	do(t, svc, http.MethodGet, "/api/v1/indicators/total_population/observations?year=2019", &observations)
	assert.Equal(t, []domain.Observation{{EntityName: "France", EntityCode: "FR", Year: 2019, Value: 66}}, observations)

	var evolution struct {
		Year   int                   `json:"year"`
		Series []domain.EntitySeries `json:"series"`
	}
	do(t, svc, http.MethodGet, "/api/v1/indicators/total_population/evolution", &evolution)
	assert.Equal(t, 2020, evolution.Year)
	require.Len(t, evolution.Series, 2)
	assert.Equal(t, "India", evolution.Series[1].Entity)
}

func TestMissingTableDegradesToEmpty(t *testing.T) {
	svc := newTestAPI(t)

	var layer struct {
		Year   int               `json:"year"`
		Points []domain.MapPoint `json:"points"`
	}
	res := do(t, svc, http.MethodGet, "/api/v1/indicators/mortality_rate/map", &layer)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, 2020, layer.Year)
	assert.Empty(t, layer.Points)
}

func TestErrors(t *testing.T) {
	svc := newTestAPI(t)

	var errResp domain.ErrorResponse

	res := do(t, svc, http.MethodGet, "/api/v1/indicators/gdp/aggregates", &errResp)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, http.StatusNotFound, errResp.Code)
	assert.Contains(t, errResp.Message, "unknown indicator")

	res = do(t, svc, http.MethodGet, "/api/v1/indicators/total_population/top?n=1000", &errResp)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = do(t, svc, http.MethodGet, "/api/v1/indicators/total_population/top?year=abc", &errResp)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = do(t, svc, http.MethodGet, "/api/v1/indicators/mortality_rate/evolution", &errResp)
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, errResp.Message, "evolution")
}
