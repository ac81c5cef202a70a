package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/demostats/internal/pkg/constants"
	"github.com/ougirez/demostats/internal/pkg/logger"
)

// RequestContextMiddleware tags the request context with a request id and
// logs one line per request.
func (svc *APIService) RequestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		id := req.Header.Get(constants.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set(constants.HeaderRequestID, id)

		ctx := logger.With(req.Context(), constants.CtxKeyRequestID, id)
		c.SetRequest(req.WithContext(ctx))

		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}

		logger.Infof(ctx, "%s %s %d %s", req.Method, req.URL.Path, c.Response().Status, time.Since(start).Round(time.Microsecond))
		return nil
	}
}
