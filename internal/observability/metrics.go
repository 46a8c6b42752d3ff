// Package observability exposes prometheus metrics for the booking flows.
package observability

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics counts the outcomes of the booking, cancellation and
// completion workflows.
type BookingMetrics struct {
	bookingsTotal      prometheus.Counter
	rejectionsTotal    *prometheus.CounterVec
	cancellationsTotal prometheus.Counter
	completionsTotal   *prometheus.CounterVec
}

// NewBookingMetrics registers the booking counters on reg, falling back to
// the default registerer when reg is nil.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "herba",
			Subsystem: "booking",
			Name:      "accepted_total",
			Help:      "Appointments accepted by the booking workflow",
		}),
		rejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "herba",
			Subsystem: "booking",
			Name:      "rejected_total",
			Help:      "Submissions rejected by the booking workflow",
		}, []string{"reason"}),
		cancellationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "herba",
			Subsystem: "booking",
			Name:      "cancelled_total",
			Help:      "Active appointments cancelled",
		}),
		completionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "herba",
			Subsystem: "booking",
			Name:      "completions_total",
			Help:      "Completion workflow runs by terminal state",
		}, []string{"state"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsTotal, m.rejectionsTotal, m.cancellationsTotal, m.completionsTotal)
	return m
}

// ObserveBooking records one accepted booking.
func (m *BookingMetrics) ObserveBooking() {
	if m == nil {
		return
	}
	m.bookingsTotal.Inc()
}

// ObserveRejection records a rejected submission by reason.
func (m *BookingMetrics) ObserveRejection(reason string) {
	if m == nil {
		return
	}
	m.rejectionsTotal.WithLabelValues(reason).Inc()
}

// ObserveCancellation records one cancelled appointment.
func (m *BookingMetrics) ObserveCancellation() {
	if m == nil {
		return
	}
	m.cancellationsTotal.Inc()
}

// ObserveCompletion records a completion workflow run by its terminal state.
func (m *BookingMetrics) ObserveCompletion(state string) {
	if m == nil {
		return
	}
	m.completionsTotal.WithLabelValues(state).Inc()
}
