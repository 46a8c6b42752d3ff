// Package booking implements the appointment lifecycle workflows: submit,
// cancel, clear-all and complete. Each workflow is a short state machine
// whose transitions are logged, so a run that dies between two store calls
// can be reconstructed from the log instead of silently leaving the
// collections inconsistent.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ellucho77/HerbaBeauty/internal/model"
	"github.com/ellucho77/HerbaBeauty/internal/observability"
	"github.com/ellucho77/HerbaBeauty/internal/repository"
	"github.com/ellucho77/HerbaBeauty/internal/queue"
	"github.com/ellucho77/HerbaBeauty/internal/session"
	"github.com/ellucho77/HerbaBeauty/internal/store"
	"github.com/ellucho77/HerbaBeauty/pkg/logging"
)

// Rejection reasons surfaced to callers. ErrIncomplete covers every missing
// or invalid input; ErrSlotConflict means the requested (date, time) pair is
// already booked.
var (
	ErrIncomplete   = errors.New("incomplete")
	ErrSlotConflict = errors.New("slot conflict")
)

// TimestampLayout formats the display timestamps stored on appointments.
// Lexicographic order on this layout equals chronological order, which the
// history view's sort relies on.
const TimestampLayout = "2006-01-02 15:04:05"

// EventPublisher sends an appointment lifecycle event to the broker. A nil
// publisher disables event publishing; a failing one never fails the
// workflow that called it.
type EventPublisher func(ctx context.Context, ev queue.AppointmentEvent) error

// SubmitRequest carries one booking form submission. The selected service is
// not part of the request; it is read from the session, which only accepted
// it if it named a real catalog entry.
type SubmitRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// Workflow validates and submits new appointments.
type Workflow struct {
	store    store.Store
	sessions *session.Store
	publish  EventPublisher
	metrics  *observability.BookingMetrics
	log      *logging.Logger
	now      func() time.Time
}

// NewWorkflow constructs a booking workflow. publish and metrics may be nil.
func NewWorkflow(st store.Store, sessions *session.Store, publish EventPublisher, metrics *observability.BookingMetrics, log *logging.Logger) *Workflow {
	if st == nil || sessions == nil {
		panic("booking: nil store or session store")
	}
	if log == nil {
		log = logging.Default()
	}
	return &Workflow{store: st, sessions: sessions, publish: publish, metrics: metrics, log: log, now: time.Now}
}

// Submit runs the booking state machine: validating → checking-slot →
// creating → created. It rejects with ErrIncomplete before any store access
// and with ErrSlotConflict before any write; the conflict check always runs
// against a fresh read of the active collection, never a cached view.
func (w *Workflow) Submit(ctx context.Context, req SubmitRequest) (model.Appointment, error) {
	w.log.Debug("booking state", "state", "validating", "session", req.SessionID)

	name := strings.TrimSpace(req.Name)
	selected, err := w.sessions.Selected(ctx, req.SessionID)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("booking: read selection: %w", err)
	}
	if name == "" || req.Date == "" || req.Time == "" || selected == "" {
		w.metrics.ObserveRejection("incomplete")
		w.log.Info("booking rejected", "state", "rejected-incomplete", "session", req.SessionID)
		return model.Appointment{}, ErrIncomplete
	}

	w.log.Debug("booking state", "state", "checking-slot", "date", req.Date, "time", req.Time)
	snapshot, err := w.store.ReadAll(ctx, store.Active)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("booking: read active snapshot: %w", err)
	}
	for _, a := range snapshot {
		if a.Date == req.Date && a.Time == req.Time {
			w.metrics.ObserveRejection("slot_conflict")
			w.log.Info("booking rejected", "state", "rejected-conflict", "date", req.Date, "time", req.Time)
			return model.Appointment{}, ErrSlotConflict
		}
	}

	appt := model.Appointment{
		Name:      name,
		Date:      req.Date,
		Time:      req.Time,
		Service:   selected,
		CreatedAt: w.now().Format(TimestampLayout),
	}
	w.log.Debug("booking state", "state", "creating", "client", name)
	id, err := w.store.Create(ctx, store.Active, appt)
	if err != nil {
		// Two submissions can pass the snapshot check for the same slot;
		// the slot's unique index catches the loser.
		if errors.Is(err, repository.ErrConflict) {
			w.metrics.ObserveRejection("slot_conflict")
			w.log.Info("booking rejected", "state", "rejected-conflict", "date", req.Date, "time", req.Time)
			return model.Appointment{}, ErrSlotConflict
		}
		w.log.Error("booking failed", "state", "failed", "error", err)
		return model.Appointment{}, fmt.Errorf("booking: create appointment: %w", err)
	}
	appt.ID = id

	// Back to idle: the selection is consumed by the booking it produced.
	if err := w.sessions.Clear(ctx, req.SessionID); err != nil {
		w.log.Warn("booking: clear selection failed", "session", req.SessionID, "error", err)
	}

	w.metrics.ObserveBooking()
	w.log.Info("booking created", "state", "created", "appointment_id", id, "date", appt.Date, "time", appt.Time, "service", appt.Service)
	w.publishEvent(ctx, queue.EventBooked, appt, "created")
	return appt, nil
}

func (w *Workflow) publishEvent(ctx context.Context, eventType string, a model.Appointment, state string) {
	if w.publish == nil {
		return
	}
	ev := queue.AppointmentEvent{
		Type:          eventType,
		AppointmentID: a.ID,
		Name:          a.Name,
		Date:          a.Date,
		Time:          a.Time,
		Service:       a.Service,
		CreatedAt:     a.CreatedAt,
		CompletedAt:   a.CompletedAt,
		State:         state,
		OccurredAt:    w.now().Format(TimestampLayout),
	}
	if err := w.publish(ctx, ev); err != nil {
		w.log.Warn("booking: event publish failed", "type", eventType, "appointment_id", a.ID, "error", err)
	}
}
