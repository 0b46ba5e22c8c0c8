// Package service contains the business rules.
//
// Services receive validated payloads from handlers, call repositories, and
// translate "nothing matched" into the 404 the caller should see. Other
// failures are returned as-is for the global error handler to classify.
package service

import (
	"github.com/memorialize/memorial-backend/internal/repository"
	"github.com/memorialize/memorial-backend/internal/server"
)

type Services struct {
	Memorial *MemorialService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Memorial: NewMemorialService(repos.Memorial, s.QRCode, s.Logger),
	}
}
