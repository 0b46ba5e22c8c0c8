// Package repository holds the SQL behind each entity.
//
// Repositories take a context on every call and leave error classification
// to the HTTP layer; they only wrap errors with what was being attempted.
package repository

import (
	"github.com/memorialize/memorial-backend/internal/server"
)

type Repositories struct {
	Memorial *MemorialRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Memorial: NewMemorialRepository(s.DB.Pool),
	}
}
