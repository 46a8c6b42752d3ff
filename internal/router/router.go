package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"                             // import the Echo web framework to handle routing
	"github.com/prometheus/client_golang/prometheus/promhttp" // import the Prometheus HTTP exposition handler

	"github.com/ellucho77/HerbaBeauty/internal/handler" // import the handlers that implement the booking widget's API
)

// RegisterRoutes registers the operational endpoints on the provided Echo
// instance: a health check for load balancers and the Prometheus metrics page.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
	// Expose the Prometheus registry at /metrics.  promhttp speaks plain
	// net/http, so it is wrapped into an Echo handler.
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterCatalog registers the service catalog endpoint.  The catalog is
// static, so this is the one route worth running through the response cache;
// the caller passes the cache middleware in so the router stays wiring-only.
func RegisterCatalog(e *echo.Echo, cache echo.MiddlewareFunc) {
	// List the services the clinic offers.  Cached because the list never
	// changes while the process runs.
	e.GET("/v1/services", handler.ListServices, cache)
}

// RegisterSession registers the per-visitor session routes.  The session holds
// the service a visitor picked from the catalog while they fill out the form.
func RegisterSession(e *echo.Echo, s *handler.SessionHandler) {
	g := e.Group("/v1/session")
	// Record the visitor's selected service.  Unknown service names are rejected.
	g.PUT("/:id/service", s.Select)
	// Return the currently selected service, empty when nothing is selected.
	g.GET("/:id/service", s.Get)
	// Drop the selection without booking.
	g.DELETE("/:id/service", s.Clear)
}

// RegisterAppointments registers the booking, listing and lifecycle routes for
// appointments, plus the history view and the snapshot stream.
func RegisterAppointments(e *echo.Echo, a *handler.AppointmentHandler, h *handler.HistoryHandler, st *handler.StreamHandler) {
	g := e.Group("/v1/appointments")
	// Book a new appointment.  Validation and the slot-conflict check happen
	// in the booking workflow; the handler only maps outcomes to statuses.
	g.POST("", a.Book)
	// Return the rendered active list: rows sorted by date then time, plus
	// the placeholder text and the set of dates that already have a booking.
	g.GET("", a.ListActive)
	// Return only the occupied dates, for date-picker highlighting.
	g.GET("/occupied-dates", a.OccupiedDates)
	// Delete every active appointment after a single confirmation.
	g.DELETE("", a.ClearAll)
	// Cancel one active appointment.
	g.DELETE("/:id", a.Cancel)
	// Mark an appointment finished: copy it into history, then remove it
	// from the active list.
	g.POST("/:id/complete", a.Complete)

	// Finished appointments, newest first, optionally filtered to one date
	// with ?date=YYYY-MM-DD.
	e.GET("/v1/history", h.Get)

	// WebSocket snapshot stream.  ?collection=active|history selects which
	// list the client follows; every mutation pushes a fresh rendered list.
	e.GET("/v1/stream", st.Stream)
}
