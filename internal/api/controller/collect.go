package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/demostats/internal/domain"
)

func (c *Controller) Collect(ctx echo.Context) error {
	reports, err := c.collector.CollectAll(ctx.Request().Context())
	if err != nil {
		return err
	}

	type response struct {
		Reports []domain.IndicatorReport `json:"reports"`
	}

	return ctx.JSON(http.StatusOK, response{Reports: reports})
}
