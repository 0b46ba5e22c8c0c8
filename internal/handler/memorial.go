package handler

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/memorialize/memorial-backend/internal/model"
	"github.com/memorialize/memorial-backend/internal/server"
	"github.com/memorialize/memorial-backend/internal/service"
)

type MemorialHandler struct {
	Handler
	memorialService *service.MemorialService
}

func NewMemorialHandler(s *server.Server, memorialService *service.MemorialService) *MemorialHandler {
	return &MemorialHandler{
		Handler:         NewHandler(s),
		memorialService: memorialService,
	}
}

// requestOrigin is the scheme and host profile URLs are built on: the
// configured public base URL, or else the host the request came in on.
func (h *MemorialHandler) requestOrigin(c echo.Context) string {
	if base := h.server.Config.Server.PublicBaseURL; base != "" {
		return strings.TrimRight(base, "/")
	}
	return c.Scheme() + "://" + c.Request().Host
}

func (h *MemorialHandler) CreateMemorial(c echo.Context, payload *model.CreateMemorialPayload) (*model.CreateMemorialResponse, error) {
	return h.memorialService.Create(c.Request().Context(), payload, h.requestOrigin(c))
}

func (h *MemorialHandler) GetMemorial(c echo.Context, param *model.MemorialIDParam) (*model.GetMemorialResponse, error) {
	memorial, err := h.memorialService.GetByID(c.Request().Context(), param.ID)
	if err != nil {
		return nil, err
	}
	return &model.GetMemorialResponse{Success: true, Memorial: memorial}, nil
}

func (h *MemorialHandler) SearchMemorial(c echo.Context, query *model.SearchMemorialQuery) (*model.SearchMemorialResponse, error) {
	memorial, err := h.memorialService.Search(c.Request().Context(), query)
	if err != nil {
		return nil, err
	}
	return &model.SearchMemorialResponse{Success: true, Profile: memorial}, nil
}

func (h *MemorialHandler) ListMemorials(c echo.Context, _ *model.ListMemorialsRequest) (*model.ListMemorialsResponse, error) {
	memorials, err := h.memorialService.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &model.ListMemorialsResponse{Success: true, Memorials: memorials}, nil
}

func (h *MemorialHandler) UpdateMemorial(c echo.Context, payload *model.UpdateMemorialPayload) (*model.GetMemorialResponse, error) {
	memorial, err := h.memorialService.Update(c.Request().Context(), payload, h.requestOrigin(c))
	if err != nil {
		return nil, err
	}
	return &model.GetMemorialResponse{Success: true, Memorial: memorial}, nil
}

func (h *MemorialHandler) ApproveMemorial(c echo.Context, param *model.MemorialIDParam) (*model.GetMemorialResponse, error) {
	memorial, err := h.memorialService.Approve(c.Request().Context(), param.ID)
	if err != nil {
		return nil, err
	}
	return &model.GetMemorialResponse{Success: true, Memorial: memorial}, nil
}

func (h *MemorialHandler) DisapproveMemorial(c echo.Context, param *model.MemorialIDParam) (*model.GetMemorialResponse, error) {
	memorial, err := h.memorialService.Disapprove(c.Request().Context(), param.ID)
	if err != nil {
		return nil, err
	}
	return &model.GetMemorialResponse{Success: true, Memorial: memorial}, nil
}

func (h *MemorialHandler) DeleteMemorial(c echo.Context, param *model.MemorialIDParam) (*model.DeleteMemorialResponse, error) {
	if err := h.memorialService.Delete(c.Request().Context(), param.ID); err != nil {
		return nil, err
	}
	return &model.DeleteMemorialResponse{Success: true, Message: "Profile deleted successfully"}, nil
}

func (h *MemorialHandler) GenerateQRCode(c echo.Context, param *model.MemorialIDParam) (*model.GenerateQRCodeResponse, error) {
	profileURL, err := h.memorialService.GenerateQRCodeURL(c.Request().Context(), param.ID, h.requestOrigin(c))
	if err != nil {
		return nil, err
	}
	return &model.GenerateQRCodeResponse{QRCodeURL: profileURL}, nil
}

func (h *MemorialHandler) QRCodeImage(c echo.Context, param *model.MemorialIDParam) ([]byte, error) {
	return h.memorialService.QRCodePNG(c.Request().Context(), param.ID, h.requestOrigin(c))
}

// QRCodeFilename names the downloaded plaque image after the memorial id.
func QRCodeFilename(c echo.Context) string {
	return fmt.Sprintf("memorial-%s-qrcode.png", c.Param("id"))
}
