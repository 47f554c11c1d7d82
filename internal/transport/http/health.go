package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"magazine_cms/internal/lib/logger/sl"

	"github.com/labstack/echo/v4"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Health godoc
// @Summary Liveness of the service and its backing stores
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	log := r.log.With(slog.String("op", "http.routers.Health"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	out := map[string]string{"status": "ok"}
	for name, hc := range r.health {
		if err := hc.HealthCheck(ctx); err != nil {
			log.Warn("dependency unhealthy", slog.String("dependency", name), sl.Err(err))
			out[name] = "down"
			out["status"] = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		out[name] = "up"
	}

	return c.JSON(status, out)
}
