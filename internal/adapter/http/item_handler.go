package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"supplytrack-backend/internal/realtime"
	"supplytrack-backend/internal/usecase/item"
)

type ItemHandler struct {
	uc  *item.Usecase
	hub *realtime.Hub
}

func NewItemHandler(uc *item.Usecase, hub *realtime.Hub) *ItemHandler {
	return &ItemHandler{uc: uc, hub: hub}
}

type itemReq struct {
	DisplayName   string `json:"display_name"   validate:"required"`
	College       string `json:"college"        validate:"required,oneof=engineering science business education nursing"`
	Category      string `json:"category"       validate:"required,oneof=equipment supplies furniture electronics consumable"`
	Quantity      int64  `json:"quantity"       validate:"required,gt=0"`
	Supplier      string `json:"supplier"       validate:"required"`
	RequestedDate string `json:"requested_date" validate:"required,datetime=2006-01-02"`
	// base64 handled by encoding/json; empty means no image
	Image []byte `json:"image,omitempty"`
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	date, _ := time.Parse("2006-01-02", req.RequestedDate)

	dto, err := h.uc.Create(c.Request().Context(), item.CreateItemInput{
		DisplayName:   req.DisplayName,
		College:       req.College,
		Category:      req.Category,
		Quantity:      req.Quantity,
		Supplier:      req.Supplier,
		RequestedDate: date,
		Image:         req.Image,
	})
	if err != nil {
		return errJSON(c, err)
	}
	h.notifyChanged(c)
	return c.JSON(http.StatusCreated, dto)
}

func (h *ItemHandler) EditItem(c echo.Context) error {
	itemID, err := parseUint(c.Param("item_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item_id"})
	}
	var req itemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	date, _ := time.Parse("2006-01-02", req.RequestedDate)

	dto, err := h.uc.Edit(c.Request().Context(), itemID, item.EditItemInput{
		DisplayName:   req.DisplayName,
		College:       req.College,
		Category:      req.Category,
		Quantity:      req.Quantity,
		Supplier:      req.Supplier,
		RequestedDate: date,
		Image:         req.Image,
	})
	if err != nil {
		return errJSON(c, err)
	}
	h.notifyChanged(c)
	return c.JSON(http.StatusOK, dto)
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	itemID, err := parseUint(c.Param("item_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item_id"})
	}
	if err := h.uc.Delete(c.Request().Context(), itemID); err != nil {
		return errJSON(c, err)
	}
	h.notifyChanged(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	itemID, err := parseUint(c.Param("item_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid item_id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), itemID)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ItemHandler) ListItems(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *ItemHandler) notifyChanged(c echo.Context) {
	if h.hub == nil {
		return
	}
	_ = h.hub.Notify(c.Request().Context(), realtime.CollectionItems)
}

func parseUint(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }
