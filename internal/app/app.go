// Package app wires services from the loaded configuration.
package app

import (
	"fmt"

	"github.com/ougirez/demostats/internal/domain"
	"github.com/ougirez/demostats/internal/pkg/config"
	"github.com/ougirez/demostats/internal/pkg/store"
	"github.com/ougirez/demostats/internal/pkg/worldbank"
	"github.com/ougirez/demostats/internal/service/collector"
	"github.com/ougirez/demostats/internal/service/dashboard"
)

func NewStore(cfg *config.Config) store.Store {
	return store.NewOsStore(cfg.Collector.OutputDir)
}

func NewCollectorService(cfg *config.Config, st store.Store, indicators []domain.Indicator) *collector.Service {
	client := worldbank.NewClient(worldbank.Options{
		BaseURL:       cfg.Source.BaseURL,
		PageSize:      cfg.Source.PageSize,
		Timeout:       cfg.Source.RequestTimeout,
		MaxRetries:    cfg.Source.MaxRetries,
		RetryInterval: cfg.Source.RetryInterval,
	})

	return collector.NewCollectorService(client, st, indicators, collector.Options{
		PageSize: cfg.Source.PageSize,
		Workers:  cfg.Collector.Workers,
		Span:     worldbank.Span{Start: cfg.Collector.StartYear, End: cfg.Collector.EndYear},
	})
}

func NewDashboardService(cfg *config.Config, st store.Store) *dashboard.Service {
	return dashboard.NewDashboardService(st, dashboard.Catalog{
		Indicators:      cfg.Indicators,
		TopN:            cfg.Dashboard.TopN,
		Countries:       cfg.Dashboard.Countries,
		NotableEntities: cfg.Dashboard.NotableEntities,
	})
}

// SelectIndicators keeps the indicators named in names, all when names is empty.
func SelectIndicators(cfg *config.Config, names []string) ([]domain.Indicator, error) {
	if len(names) == 0 {
		return cfg.Indicators, nil
	}

	res := make([]domain.Indicator, 0, len(names))
	for _, name := range names {
		ind, ok := cfg.Indicator(name)
		if !ok {
			return nil, fmt.Errorf("unknown indicator %q", name)
		}
		res = append(res, ind)
	}
	return res, nil
}
