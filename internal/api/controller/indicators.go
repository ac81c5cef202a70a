package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/demostats/internal/domain"
)

type indicatorRequest struct {
	Name string `param:"name" validate:"required"`
}

type yearRequest struct {
	Name string `param:"name" validate:"required"`
	Year int    `query:"year" validate:"gte=0"`
}

type topRequest struct {
	Name string `param:"name" validate:"required"`
	Year int    `query:"year" validate:"gte=0"`
	N    int    `query:"n" validate:"gte=0,lte=300"`
}

type evolutionRequest struct {
	Name string `param:"name" validate:"required"`
	N    int    `query:"n" validate:"gte=0,lte=300"`
}

func (c *Controller) ListIndicators(ctx echo.Context) error {
	indicators, err := c.dashboard.Indicators(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, indicators)
}

func (c *Controller) GetYears(ctx echo.Context) error {
	var req indicatorRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	years, err := c.dashboard.Years(ctx.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, years)
}

func (c *Controller) GetObservations(ctx echo.Context) error {
	req := yearRequest{Year: c.defaultYear}
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	observations, err := c.dashboard.Observations(ctx.Request().Context(), req.Name, req.Year)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, observations)
}

func (c *Controller) GetAggregates(ctx echo.Context) error {
	var req indicatorRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	aggregates, err := c.dashboard.Aggregates(ctx.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, aggregates)
}

func (c *Controller) GetTop(ctx echo.Context) error {
	req := topRequest{Year: c.defaultYear}
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	type response struct {
		Year    domain.Year          `json:"year"`
		Entries []domain.RankedEntry `json:"entries"`
	}

	entries, err := c.dashboard.Top(ctx.Request().Context(), req.Name, req.Year, req.N)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, response{Year: req.Year, Entries: entries})
}

func (c *Controller) GetMapLayer(ctx echo.Context) error {
	req := yearRequest{Year: c.defaultYear}
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	type response struct {
		Year   domain.Year       `json:"year"`
		Points []domain.MapPoint `json:"points"`
	}

	points, err := c.dashboard.MapLayer(ctx.Request().Context(), req.Name, req.Year)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, response{Year: req.Year, Points: points})
}

func (c *Controller) GetEvolution(ctx echo.Context) error {
	var req evolutionRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	type response struct {
		Year   domain.Year           `json:"year,omitempty"`
		Series []domain.EntitySeries `json:"series"`
	}

	var (
		resp response
		err  error
	)

	resp.Year, resp.Series, err = c.dashboard.Evolution(ctx.Request().Context(), req.Name, req.N)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, resp)
}
