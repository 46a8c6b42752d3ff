package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ellucho77/HerbaBeauty/internal/view"
)

// HistoryHandler serves the completed-appointment list. Both the filtered
// and unfiltered responses render from the cached snapshot the subscription
// keeps fresh; a filter change never triggers a store read.
type HistoryHandler struct {
	View *view.HistoryView
}

// NewHistoryHandler constructs a HistoryHandler.
func NewHistoryHandler(v *view.HistoryView) *HistoryHandler {
	if v == nil {
		panic("nil view passed to NewHistoryHandler")
	}
	return &HistoryHandler{View: v}
}

// Get handles GET /v1/history. The optional ?date=YYYY-MM-DD query parameter
// keeps only appointments whose slot date matches exactly; omitting or
// clearing it returns the full history.
func (h *HistoryHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.View.Render(c.QueryParam("date")))
}
