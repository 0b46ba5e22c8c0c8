package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/memorialize/memorial-backend/internal/middleware"
	"github.com/memorialize/memorial-backend/internal/server"
)

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth probes the configured dependencies.
//
// A failing database makes the service unhealthy (503). A failing Redis
// only degrades it: QR renders fall back to being computed on every request.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()
	obs := h.server.Config.Observability

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]checkResult{},
	}

	if obs.CheckEnabled("database") {
		result, err := h.probe(c.Request().Context(), obs.HealthChecks.Timeout, h.server.DB.Pool.Ping)
		response.Checks["database"] = result
		if err != nil {
			response.Status = "unhealthy"
			logger.Error().Err(err).Str("response_time", result.ResponseTime).Msg("database health check failed")
			h.recordFailure("database", err)
		}
	}

	if h.server.Redis != nil && obs.CheckEnabled("redis") {
		result, err := h.probe(c.Request().Context(), obs.HealthChecks.Timeout, func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
		response.Checks["redis"] = result
		if err != nil {
			if response.Status == "healthy" {
				response.Status = "degraded"
			}
			logger.Warn().Err(err).Str("response_time", result.ResponseTime).Msg("redis health check failed")
			h.recordFailure("redis", err)
		}
	}

	status := http.StatusOK
	if response.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}

	logger.Debug().
		Str("status", response.Status).
		Dur("total_duration", time.Since(start)).
		Msg("health check finished")

	return c.JSON(status, response)
}

func (h *HealthHandler) probe(parent context.Context, timeout time.Duration, ping func(ctx context.Context) error) (checkResult, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	result := checkResult{
		Status:       "healthy",
		ResponseTime: time.Since(start).String(),
	}
	if err != nil {
		result.Status = "unhealthy"
		result.Error = err.Error()
	}
	return result, err
}

func (h *HealthHandler) recordFailure(check string, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":    check,
		"error_message": err.Error(),
	})
}
