package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	itemDomain "supplytrack-backend/internal/domain/item"
	requestDomain "supplytrack-backend/internal/domain/request"
	"supplytrack-backend/internal/infrastructure/blob"
	itemUC "supplytrack-backend/internal/usecase/item"
	requestUC "supplytrack-backend/internal/usecase/request"
	"supplytrack-backend/internal/usecase/scan"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// errJSON maps domain errors to HTTP codes in one place.
func errJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, itemDomain.ErrNotFound), errors.Is(err, requestDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, itemDomain.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, requestDomain.ErrDuplicateRequestNumber),
		errors.Is(err, requestDomain.ErrAlreadyApproved),
		errors.Is(err, itemDomain.ErrBarcodeTaken):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, blob.ErrUnsupportedFormat):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, itemUC.ErrInvalidInput), errors.Is(err, requestUC.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, scan.ErrSourceClosed):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
