package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ellucho77/HerbaBeauty/internal/model"
	"github.com/ellucho77/HerbaBeauty/internal/observability"
	"github.com/ellucho77/HerbaBeauty/internal/queue"
	"github.com/ellucho77/HerbaBeauty/internal/store"
	"github.com/ellucho77/HerbaBeauty/pkg/logging"
)

// Completion workflow states. The order is fixed: the historical copy is
// created first, the active record is deleted only after that insert
// succeeded. There is no rollback of a successful historical insert, so
// StateDeleteFailed means both copies exist until someone reconciles them.
const (
	StateAwaitingConfirmation = "awaiting-confirmation"
	StateDeclined             = "declined"
	StateHistoricalFailed     = "historical-failed"
	StateHistoricalCreated    = "historical-created"
	StateDeleteFailed         = "delete-failed"
	StateActiveDeleted        = "active-deleted"
)

// ErrDeclined is returned when the confirmation dialog was dismissed; the
// appointment is left untouched.
var ErrDeclined = errors.New("declined")

// Completion promotes one active appointment to the historical collection.
type Completion struct {
	store   store.Store
	confirm Confirmer
	publish EventPublisher
	metrics *observability.BookingMetrics
	log     *logging.Logger
	now     func() time.Time
}

// NewCompletion constructs the completion workflow. publish and metrics may
// be nil; confirm must not be.
func NewCompletion(st store.Store, confirm Confirmer, publish EventPublisher, metrics *observability.BookingMetrics, log *logging.Logger) *Completion {
	if st == nil || confirm == nil {
		panic("booking: nil store or confirmer")
	}
	if log == nil {
		log = logging.Default()
	}
	return &Completion{store: st, confirm: confirm, publish: publish, metrics: metrics, log: log, now: time.Now}
}

// Complete runs the completion state machine for one active appointment.
// Every transition is logged with the appointment ID so a run that stops
// after the historical insert is diagnosable from the log alone.
func (c *Completion) Complete(ctx context.Context, appt model.Appointment) error {
	c.log.Debug("completion state", "state", StateAwaitingConfirmation, "appointment_id", appt.ID)
	msg := fmt.Sprintf("¿Marcar el turno de %s como finalizado?", appt.Name)
	if !c.confirm.Confirm(ctx, "Finalizar turno", msg, ConfirmSuccess) {
		c.metrics.ObserveCompletion(StateDeclined)
		c.log.Info("completion declined", "state", StateDeclined, "appointment_id", appt.ID)
		return ErrDeclined
	}

	hist := appt
	hist.ID = 0 // the historical row gets its own identifier
	hist.CompletedAt = c.now().Format(TimestampLayout)

	histID, err := c.store.Create(ctx, store.History, hist)
	if err != nil {
		c.metrics.ObserveCompletion(StateHistoricalFailed)
		c.log.Error("completion failed", "state", StateHistoricalFailed, "appointment_id", appt.ID, "error", err)
		return fmt.Errorf("completion: create historical record: %w", err)
	}
	c.log.Info("completion state", "state", StateHistoricalCreated, "appointment_id", appt.ID, "historical_id", histID)

	delErr := c.store.DeleteByID(ctx, store.Active, appt.ID)
	state := StateActiveDeleted
	if delErr != nil {
		state = StateDeleteFailed
	}
	c.metrics.ObserveCompletion(state)

	hist.ID = histID
	c.publishEvent(ctx, queue.EventCompleted, hist, state)

	if delErr != nil {
		// Accepted failure mode: both copies now exist. No compensation.
		c.log.Error("completion left duplicate", "state", StateDeleteFailed,
			"appointment_id", appt.ID, "historical_id", histID, "error", delErr)
		return fmt.Errorf("completion: delete active %d after historical %d: %w", appt.ID, histID, delErr)
	}
	c.log.Info("completion done", "state", StateActiveDeleted, "appointment_id", appt.ID, "historical_id", histID)
	return nil
}

func (c *Completion) publishEvent(ctx context.Context, eventType string, a model.Appointment, state string) {
	if c.publish == nil {
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
		OccurredAt:    c.now().Format(TimestampLayout),
	}
	if err := c.publish(ctx, ev); err != nil {
		c.log.Warn("completion: event publish failed", "appointment_id", a.ID, "error", err)
	}
}
