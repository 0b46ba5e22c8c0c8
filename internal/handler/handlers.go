package handler

import (
	"github.com/memorialize/memorial-backend/internal/server"
	"github.com/memorialize/memorial-backend/internal/service"
)

type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Memorial *MemorialHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Memorial: NewMemorialHandler(s, services.Memorial),
	}
}
