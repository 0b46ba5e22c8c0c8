package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/memorialize/memorial-backend/internal/handler"
	"github.com/memorialize/memorial-backend/internal/lib/qrcode"
	"github.com/memorialize/memorial-backend/internal/model"
)

// registerMemorialRoutes mounts the memorial API at the root. Paths are part
// of the public contract with existing clients.
func registerMemorialRoutes(r *echo.Echo, h *handler.Handlers) {
	mh := h.Memorial
	base := mh.Handler

	r.POST("/create-memorial", handler.Handle(base, mh.CreateMemorial, http.StatusCreated, &model.CreateMemorialPayload{}))

	r.GET("/memorial/:id", handler.Handle(base, mh.GetMemorial, http.StatusOK, &model.MemorialIDParam{}))
	r.GET("/memorial/:id/qrcode", handler.HandleFile(base, mh.QRCodeImage, http.StatusOK, &model.MemorialIDParam{},
		handler.QRCodeFilename, qrcode.ContentType))

	r.GET("/search-profile", handler.Handle(base, mh.SearchMemorial, http.StatusOK, &model.SearchMemorialQuery{}))
	r.GET("/memorials", handler.Handle(base, mh.ListMemorials, http.StatusOK, &model.ListMemorialsRequest{}))

	r.PUT("/update-memorial/:id", handler.Handle(base, mh.UpdateMemorial, http.StatusOK, &model.UpdateMemorialPayload{}))
	r.PUT("/approve-memorial/:id", handler.Handle(base, mh.ApproveMemorial, http.StatusOK, &model.MemorialIDParam{}))
	r.PUT("/disapprove-memorial/:id", handler.Handle(base, mh.DisapproveMemorial, http.StatusOK, &model.MemorialIDParam{}))
	r.DELETE("/delete-memorial/:id", handler.Handle(base, mh.DeleteMemorial, http.StatusOK, &model.MemorialIDParam{}))

	r.GET("/generate-qrcode/:id", handler.Handle(base, mh.GenerateQRCode, http.StatusOK, &model.MemorialIDParam{}))
}
