package router

import (
	"github.com/labstack/echo/v4"
	"github.com/memorialize/memorial-backend/internal/handler"
	"github.com/memorialize/memorial-backend/internal/middleware"
)

func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, metrics *middleware.MetricsMiddleware) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", metrics.Handler())

	r.Static("/static", "static")
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
