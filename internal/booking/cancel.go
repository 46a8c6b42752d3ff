package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/ellucho77/HerbaBeauty/internal/model"
	"github.com/ellucho77/HerbaBeauty/internal/observability"
	"github.com/ellucho77/HerbaBeauty/internal/queue"
	"github.com/ellucho77/HerbaBeauty/internal/store"
	"github.com/ellucho77/HerbaBeauty/pkg/logging"
)

// Canceller removes active appointments, one by one or all at once. There is
// no optimistic removal anywhere: a cancelled row leaves the rendered list
// only when the store's next snapshot excludes it.
type Canceller struct {
	store   store.Store
	confirm Confirmer
	publish EventPublisher
	metrics *observability.BookingMetrics
	log     *logging.Logger
	now     func() time.Time
}

// NewCanceller constructs the cancel workflow. publish and metrics may be
// nil; confirm must not be.
func NewCanceller(st store.Store, confirm Confirmer, publish EventPublisher, metrics *observability.BookingMetrics, log *logging.Logger) *Canceller {
	if st == nil || confirm == nil {
		panic("booking: nil store or confirmer")
	}
	if log == nil {
		log = logging.Default()
	}
	return &Canceller{store: st, confirm: confirm, publish: publish, metrics: metrics, log: log, now: time.Now}
}

// Cancel removes one active appointment after confirmation. ErrDeclined is
// returned when the dialog was dismissed; store errors (including
// repository.ErrNotFound for a row another session already removed) pass
// through unwrapped enough for errors.Is at the handler.
func (c *Canceller) Cancel(ctx context.Context, appt model.Appointment) error {
	if !c.confirm.Confirm(ctx, "Eliminar turno", "¿Eliminar este turno?", ConfirmDanger) {
		c.log.Info("cancel declined", "appointment_id", appt.ID)
		return ErrDeclined
	}
	if err := c.store.DeleteByID(ctx, store.Active, appt.ID); err != nil {
		return fmt.Errorf("cancel: delete appointment %d: %w", appt.ID, err)
	}
	c.metrics.ObserveCancellation()
	c.log.Info("appointment cancelled", "appointment_id", appt.ID, "date", appt.Date, "time", appt.Time)
	c.publishEvent(ctx, appt)
	return nil
}

// ClearAll removes every active appointment after a single confirmation,
// deleting one by one so each removal fans out to subscribers the same way
// a single cancellation does. It returns how many were deleted; on a
// mid-loop failure the count covers the deletions that did happen.
func (c *Canceller) ClearAll(ctx context.Context) (int, error) {
	if !c.confirm.Confirm(ctx, "Eliminar todos los turnos", "¿Seguro que querés eliminar todos los turnos activos?", ConfirmDanger) {
		c.log.Info("clear-all declined")
		return 0, ErrDeclined
	}
	snapshot, err := c.store.ReadAll(ctx, store.Active)
	if err != nil {
		return 0, fmt.Errorf("cancel: read active snapshot: %w", err)
	}
	deleted := 0
	for _, a := range snapshot {
		if err := c.store.DeleteByID(ctx, store.Active, a.ID); err != nil {
			return deleted, fmt.Errorf("cancel: clear-all stopped at appointment %d: %w", a.ID, err)
		}
		deleted++
		c.metrics.ObserveCancellation()
		c.publishEvent(ctx, a)
	}
	c.log.Info("active appointments cleared", "deleted", deleted)
	return deleted, nil
}

func (c *Canceller) publishEvent(ctx context.Context, a model.Appointment) {
	if c.publish == nil {
		return
	}
	ev := queue.AppointmentEvent{
		Type:          queue.EventCancelled,
		AppointmentID: a.ID,
		Name:          a.Name,
		Date:          a.Date,
		Time:          a.Time,
		Service:       a.Service,
		CreatedAt:     a.CreatedAt,
		OccurredAt:    c.now().Format(TimestampLayout),
	}
	if err := c.publish(ctx, ev); err != nil {
		c.log.Warn("cancel: event publish failed", "appointment_id", a.ID, "error", err)
	}
}
