package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"supplytrack-backend/internal/infrastructure/blob"
)

type UploadHandler struct{ blobs blob.Store }

func NewUploadHandler(blobs blob.Store) *UploadHandler { return &UploadHandler{blobs: blobs} }

// Upload stores raw image bytes and returns the reference that item and
// request forms embed.
func (h *UploadHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing image file"})
	}
	f, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable image file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable image file"})
	}

	url, err := h.blobs.Upload(c.Request().Context(), data)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"image_url": url})
}
