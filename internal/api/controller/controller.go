package controller

import (
	"github.com/ougirez/demostats/internal/service/collector"
	"github.com/ougirez/demostats/internal/service/dashboard"
)

type Controller struct {
	dashboard   *dashboard.Service
	collector   *collector.Service
	defaultYear int
}

func NewController(dashboard *dashboard.Service, collector *collector.Service, defaultYear int) *Controller {
	return &Controller{dashboard: dashboard, collector: collector, defaultYear: defaultYear}
}
