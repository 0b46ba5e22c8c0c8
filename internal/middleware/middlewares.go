// Package middleware holds the Echo middleware chain: request ids, the
// request-scoped logger, tracing, metrics, CORS, recovery and the global
// error handler.
package middleware

import (
	"github.com/memorialize/memorial-backend/internal/server"
)

type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	Metrics         *MetricsMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s.LoggerService.GetApplication()),
		Metrics:         NewMetricsMiddleware(),
	}
}
