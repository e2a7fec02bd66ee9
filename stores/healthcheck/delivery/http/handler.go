package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/delivery"
	hcdomain "github.com/x-xyz/marketcore/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

// New will initialize the healthcheck/
func New(e *echo.Echo, us hcdomain.HealthCheckUsecase) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	g := e.Group("/health")
	g.GET("", handler.check)
}

func (h *healthCheckHandler) check(c echo.Context) error {
	context := c.Get("ctx").(ctx.Ctx)
	report, err := h.healthCheck.Check(context)
	if err != nil {
		// the report names the failing backend
		return c.JSON(http.StatusInternalServerError, delivery.JsonResponse{
			Success: false,
			Message: err.Error(),
			Data:    report,
		})
	}
	return delivery.MakeJsonResp(c, http.StatusOK, report)
}
