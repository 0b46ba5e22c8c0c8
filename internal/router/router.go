// Package router builds the Echo instance: the middleware chain, the global
// error handler and every route.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/memorialize/memorial-backend/internal/handler"
	"github.com/memorialize/memorial-backend/internal/middleware"
	"github.com/memorialize/memorial-backend/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id feeds tracing and the context logger,
	// and the request logger needs the context logger.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Collect(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h, middlewares.Metrics)
	registerMemorialRoutes(router, h)

	return router
}
