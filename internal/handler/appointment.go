package handler

import (
	"context"  // passing request contexts to the workflows
	"errors"   // for errors.Is comparisons
	"net/http" // HTTP status codes
	"strconv"  // parsing path parameters

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/ellucho77/HerbaBeauty/internal/booking"
	"github.com/ellucho77/HerbaBeauty/internal/model"
	"github.com/ellucho77/HerbaBeauty/internal/repository"
	"github.com/ellucho77/HerbaBeauty/internal/store"
	"github.com/ellucho77/HerbaBeauty/internal/view"
)

// AppointmentHandler groups the workflows and views behind the active
// appointment endpoints. Reads are served from the subscription-fed view
// cache; every row action looks the appointment up in a fresh snapshot so a
// record another session already removed is answered with 404 instead of
// being acted on blind.
type AppointmentHandler struct {
	Store      store.Store          // fresh snapshot reads for row actions
	ActiveView *view.ActiveView     // rendered active list
	Booking    *booking.Workflow    // submit
	Canceller  *booking.Canceller   // cancel / clear-all
	Completion *booking.Completion  // promote to history
}

// NewAppointmentHandler constructs an AppointmentHandler. All dependencies
// must be non-nil.
func NewAppointmentHandler(st store.Store, active *view.ActiveView, wf *booking.Workflow, canceller *booking.Canceller, completion *booking.Completion) *AppointmentHandler {
	if st == nil || active == nil || wf == nil || canceller == nil || completion == nil {
		panic("nil dependency passed to NewAppointmentHandler")
	}
	return &AppointmentHandler{
		Store:      st,
		ActiveView: active,
		Booking:    wf,
		Canceller:  canceller,
		Completion: completion,
	}
}

// Book handles POST /v1/appointments. The request carries the session ID so
// the workflow can consume that session's selected service. Validation and
// conflict rejections map to 400 and 409 with the user-facing message the
// widget shows.
func (h *AppointmentHandler) Book(c echo.Context) error {
	var req booking.SubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id is required"})
	}
	appt, err := h.Booking.Submit(c.Request().Context(), req)
	switch {
	case errors.Is(err, booking.ErrIncomplete):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "incomplete",
			"message": "Por favor completa todos los campos y selecciona un servicio",
		})
	case errors.Is(err, booking.ErrSlotConflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":   "slot_conflict",
			"message": "Ya existe un turno registrado para esa fecha y hora.",
		})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, appt)
}

// ListActive handles GET /v1/appointments. The response comes from the view
// cache, i.e. the last snapshot the store delivered.
func (h *AppointmentHandler) ListActive(c echo.Context) error {
	return c.JSON(http.StatusOK, h.ActiveView.Render())
}

// OccupiedDates handles GET /v1/appointments/occupied-dates. The set is
// advisory; booking a free time on an occupied date is still allowed.
func (h *AppointmentHandler) OccupiedDates(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"dates": h.ActiveView.Occupied()})
}

// Cancel handles DELETE /v1/appointments/:id.
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	appt, ok, err := h.findActive(c)
	if !ok {
		return err
	}
	err = h.Canceller.Cancel(c.Request().Context(), appt)
	switch {
	case errors.Is(err, booking.ErrDeclined):
		return c.JSON(http.StatusConflict, echo.Map{"error": "declined"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ClearAll handles DELETE /v1/appointments. It deletes every active
// appointment one by one and reports how many were removed.
func (h *AppointmentHandler) ClearAll(c echo.Context) error {
	deleted, err := h.Canceller.ClearAll(c.Request().Context())
	switch {
	case errors.Is(err, booking.ErrDeclined):
		return c.JSON(http.StatusConflict, echo.Map{"error": "declined"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error", "deleted": deleted})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}

// Complete handles POST /v1/appointments/:id/complete. A failure after the
// historical insert leaves a duplicate (see the completion workflow); the
// client gets a 500 and the duplicate shows up in both lists until resolved.
func (h *AppointmentHandler) Complete(c echo.Context) error {
	appt, ok, err := h.findActive(c)
	if !ok {
		return err
	}
	err = h.Completion.Complete(c.Request().Context(), appt)
	switch {
	case errors.Is(err, booking.ErrDeclined):
		return c.JSON(http.StatusConflict, echo.Map{"error": "declined"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "completed"})
}

// findActive parses the :id parameter and resolves it against a fresh
// active snapshot. When ok is false the error response has already been
// written and the handler should return err as-is.
func (h *AppointmentHandler) findActive(c echo.Context) (appt model.Appointment, ok bool, err error) {
	id, perr := strconv.ParseUint(c.Param("id"), 10, 64)
	if perr != nil || id == 0 {
		return model.Appointment{}, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid appointment id"})
	}
	appt, lerr := h.lookup(c.Request().Context(), id)
	if lerr != nil {
		if errors.Is(lerr, repository.ErrNotFound) {
			return model.Appointment{}, false, c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
		}
		return model.Appointment{}, false, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return appt, true, nil
}

func (h *AppointmentHandler) lookup(ctx context.Context, id uint64) (model.Appointment, error) {
	snapshot, err := h.Store.ReadAll(ctx, store.Active)
	if err != nil {
		return model.Appointment{}, err
	}
	for _, a := range snapshot {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Appointment{}, repository.ErrNotFound
}
