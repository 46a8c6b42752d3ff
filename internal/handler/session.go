package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ellucho77/HerbaBeauty/internal/session"
)

// SessionHandler exposes the selected-service state. Clicking a catalog card
// in the widget translates to a PUT here; the booking endpoint later reads
// the same session's selection.
type SessionHandler struct {
	Sessions *session.Store
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(sessions *session.Store) *SessionHandler {
	if sessions == nil {
		panic("nil session store passed to NewSessionHandler")
	}
	return &SessionHandler{Sessions: sessions}
}

// Select handles PUT /v1/session/:id/service with body {"service": name}.
// Unknown service names are rejected so a selection is always a real
// catalog entry.
func (h *SessionHandler) Select(c echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	var body struct {
		Service string `json:"service"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	err := h.Sessions.Select(c.Request().Context(), sessionID, body.Service)
	switch {
	case errors.Is(err, session.ErrUnknownService):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown service"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session store error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /v1/session/:id/service. An idle session answers with an
// empty service name.
func (h *SessionHandler) Get(c echo.Context) error {
	selected, err := h.Sessions.Selected(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session store error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"service": selected})
}

// Clear handles DELETE /v1/session/:id/service, returning the form to idle.
func (h *SessionHandler) Clear(c echo.Context) error {
	if err := h.Sessions.Clear(c.Request().Context(), c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session store error"})
	}
	return c.NoContent(http.StatusNoContent)
}
