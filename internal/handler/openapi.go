package handler

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/memorialize/memorial-backend/internal/server"
	"github.com/pkg/errors"
)

// OpenAPIHandler serves the API reference UI, which loads /static/openapi.json.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := os.ReadFile("static/openapi.html")
	if err != nil {
		return errors.Wrap(err, "failed to read OpenAPI UI page")
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}
