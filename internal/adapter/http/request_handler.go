package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"supplytrack-backend/internal/realtime"
	"supplytrack-backend/internal/usecase/request"
)

type RequestHandler struct {
	uc  *request.Usecase
	hub *realtime.Hub
}

func NewRequestHandler(uc *request.Usecase, hub *realtime.Hub) *RequestHandler {
	return &RequestHandler{uc: uc, hub: hub}
}

type requestReq struct {
	RequestNumber  string `json:"request_number"  validate:"required,reqnum"`
	Purpose        string `json:"purpose"         validate:"required"`
	College        string `json:"college"         validate:"required,oneof=engineering science business education nursing"`
	Category       string `json:"category"        validate:"required,oneof=equipment supplies furniture electronics consumable"`
	Quantity       int64  `json:"quantity"        validate:"required,gt=0"`
	RequestDate    string `json:"request_date"    validate:"required,datetime=2006-01-02"`
	RequestorEmail string `json:"requestor_email" validate:"required,email"`
	Image          []byte `json:"image,omitempty"`
}

type approveReq struct {
	// Accept canonical date `YYYY-MM-DD` (aligns with schema DATE)
	ApprovalDate string `json:"approval_date" validate:"required,datetime=2006-01-02"`
}

func (h *RequestHandler) bindInput(c echo.Context) (*request.SubmitRequestInput, error) {
	var req requestReq
	if err := c.Bind(&req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return nil, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	date, _ := time.Parse("2006-01-02", req.RequestDate)
	return &request.SubmitRequestInput{
		RequestNumber:  req.RequestNumber,
		Purpose:        req.Purpose,
		College:        req.College,
		Category:       req.Category,
		Quantity:       req.Quantity,
		RequestDate:    date,
		RequestorEmail: req.RequestorEmail,
		Image:          req.Image,
	}, nil
}

func (h *RequestHandler) SubmitRequest(c echo.Context) error {
	in, err := h.bindInput(c)
	if in == nil {
		return err
	}
	dto, err := h.uc.Submit(c.Request().Context(), *in)
	if err != nil {
		return errJSON(c, err)
	}
	h.notifyChanged(c)
	return c.JSON(http.StatusCreated, dto)
}

func (h *RequestHandler) UpdateRequest(c echo.Context) error {
	requestID, err := parseUint(c.Param("request_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request_id"})
	}
	in, err := h.bindInput(c)
	if in == nil {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), requestID, *in)
	if err != nil {
		return errJSON(c, err)
	}
	h.notifyChanged(c)
	return c.JSON(http.StatusOK, dto)
}

func (h *RequestHandler) ApproveRequest(c echo.Context) error {
	requestID, err := parseUint(c.Param("request_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request_id"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	date, _ := time.Parse("2006-01-02", req.ApprovalDate)

	dto, err := h.uc.Approve(c.Request().Context(), requestID, date)
	if err != nil {
		return errJSON(c, err)
	}
	h.notifyChanged(c)
	return c.JSON(http.StatusOK, dto)
}

func (h *RequestHandler) DeleteRequest(c echo.Context) error {
	requestID, err := parseUint(c.Param("request_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request_id"})
	}
	if err := h.uc.Delete(c.Request().Context(), requestID); err != nil {
		return errJSON(c, err)
	}
	h.notifyChanged(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *RequestHandler) GetRequest(c echo.Context) error {
	requestID, err := parseUint(c.Param("request_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request_id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), requestID)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *RequestHandler) ListRequests(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *RequestHandler) notifyChanged(c echo.Context) {
	if h.hub == nil {
		return
	}
	_ = h.hub.Notify(c.Request().Context(), realtime.CollectionRequests)
}
