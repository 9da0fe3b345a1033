package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	itemDomain "supplytrack-backend/internal/domain/item"
	"supplytrack-backend/internal/realtime"
	itemUC "supplytrack-backend/internal/usecase/item"
	"supplytrack-backend/internal/usecase/scan"
)

type ScanHandler struct {
	resolver *scan.Resolver
	hub      *realtime.Hub
}

func NewScanHandler(r *scan.Resolver, hub *realtime.Hub) *ScanHandler {
	return &ScanHandler{resolver: r, hub: hub}
}

type scanReq struct {
	Barcode  string `json:"barcode"  validate:"required,barcode"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
}

type scanResp struct {
	Outcome     string `json:"outcome"`
	Barcode     string `json:"barcode"`
	NewQuantity int64  `json:"new_quantity"`
	Message     string `json:"message"`
}

// SubmitScan is the scanner station's decrement path. The barcode arrived
// here already decoded (manual entry or the station's camera loop).
func (h *ScanHandler) SubmitScan(c echo.Context) error {
	var req scanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	src := scan.NewManualSource(req.Barcode)
	res, err := h.resolver.ResolveAndAdjust(c.Request().Context(), src, req.Quantity)
	if errors.Is(err, itemDomain.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "Item not found. Please check the barcode and try again.",
		})
	}
	if err != nil {
		return errJSON(c, err)
	}

	if h.hub != nil {
		_ = h.hub.Notify(c.Request().Context(), realtime.CollectionItems)
	}

	msg := fmt.Sprintf("Updated item '%s'. New quantity: %d.", res.DisplayName, res.NewQuantity)
	if res.Outcome == itemUC.OutcomeRemoved {
		msg = fmt.Sprintf("Item '%s' deleted as quantity is now zero.", res.DisplayName)
	}
	return c.JSON(http.StatusOK, scanResp{
		Outcome:     string(res.Outcome),
		Barcode:     res.Barcode,
		NewQuantity: res.NewQuantity,
		Message:     msg,
	})
}

// SearchScan is the read-only "find by scan" mode: no decrement.
func (h *ScanHandler) SearchScan(c echo.Context) error {
	barcode := c.Param("barcode")
	if barcode == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing barcode"})
	}
	dto, err := h.resolver.Search(c.Request().Context(), barcode)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
