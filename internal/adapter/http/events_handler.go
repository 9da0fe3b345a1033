package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"supplytrack-backend/internal/realtime"
)

type EventsHandler struct{ hub *realtime.Hub }

func NewEventsHandler(hub *realtime.Hub) *EventsHandler { return &EventsHandler{hub: hub} }

// StreamEvents serves a collection's live diff feed over SSE. The
// subscription is released when the client goes away, so views can mount
// and unmount as often as they like.
func (h *EventsHandler) StreamEvents(c echo.Context) error {
	collection := c.Param("collection")
	ctx := c.Request().Context()

	sub, err := h.hub.Subscribe(ctx, collection)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	defer sub.Close()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.Events():
			if !ok {
				return nil
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(resp, "event: %s\ndata: %s\n\n", ev.Type, payload); err != nil {
				return nil
			}
			resp.Flush()
		}
	}
}
