package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/demostats/internal/api/controller"
	"github.com/ougirez/demostats/internal/pkg/logger"
	"github.com/ougirez/demostats/internal/service/collector"
	"github.com/ougirez/demostats/internal/service/dashboard"
)

type APIService struct {
	router           *echo.Echo
	dashboardService *dashboard.Service
	collectorService *collector.Service
}

type Options struct {
	AllowOrigins []string
	DefaultYear  int
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func (svc *APIService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc.router.ServeHTTP(w, r)
}

func NewAPIService(dashboardService *dashboard.Service, collectorService *collector.Service, opts Options) (*APIService, error) {
	svc := &APIService{
		router:           echo.New(),
		dashboardService: dashboardService,
		collectorService: collectorService,
	}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.WARN)
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = NewJSONSerializer()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.Recover())
	svc.router.Use(svc.RequestContextMiddleware)
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.dashboardService, svc.collectorService, opts.DefaultYear)

	api.POST("/collect", cntrl.Collect)

	indicators := api.Group("/indicators")
	indicators.GET("", cntrl.ListIndicators)
	indicators.GET("/:name/years", cntrl.GetYears)
	indicators.GET("/:name/observations", cntrl.GetObservations)
	indicators.GET("/:name/aggregates", cntrl.GetAggregates)
	indicators.GET("/:name/top", cntrl.GetTop)
	indicators.GET("/:name/map", cntrl.GetMapLayer)
	indicators.GET("/:name/evolution", cntrl.GetEvolution)

	return svc, nil
}
