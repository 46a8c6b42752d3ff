package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellucho77/HerbaBeauty/internal/model"
	"github.com/ellucho77/HerbaBeauty/internal/queue"
	"github.com/ellucho77/HerbaBeauty/internal/store"
	"github.com/ellucho77/HerbaBeauty/pkg/logging"
)

// stubConfirm answers every dialog with a fixed decision.
type stubConfirm bool

func (s stubConfirm) Confirm(context.Context, string, string, string) bool { return bool(s) }

func seededAppointment() model.Appointment {
	return model.Appointment{
		ID: 1, Name: "Ana", Date: "2024-05-01", Time: "10:00",
		Service: "Plasma pen", CreatedAt: "2024-04-30 09:15:00",
	}
}

func newTestCompletion(fs *fakeStore, confirm Confirmer) (*Completion, *capturePublisher) {
	pub := &capturePublisher{}
	c := NewCompletion(fs, confirm, pub.publish, nil, logging.New("error"))
	c.now = func() time.Time { return time.Date(2024, 5, 1, 10, 45, 0, 0, time.UTC) }
	return c, pub
}

func TestCompleteSuccess(t *testing.T) {
	fs := newFakeStore()
	appt := seededAppointment()
	fs.active = []model.Appointment{appt}
	fs.nextID = 1
	c, pub := newTestCompletion(fs, stubConfirm(true))

	require.NoError(t, c.Complete(context.Background(), appt))

	// Additive then subtractive: history gained exactly one, active lost
	// exactly one.
	require.Len(t, fs.history, 1)
	assert.Empty(t, fs.active)

	got := fs.history[0]
	assert.Equal(t, appt.Name, got.Name)
	assert.Equal(t, appt.Date, got.Date)
	assert.Equal(t, appt.Time, got.Time)
	assert.Equal(t, appt.Service, got.Service)
	assert.Equal(t, appt.CreatedAt, got.CreatedAt)
	assert.Equal(t, "2024-05-01 10:45:00", got.CompletedAt)
	assert.GreaterOrEqual(t, got.CompletedAt, got.CreatedAt)
	assert.NotEqual(t, appt.ID, got.ID, "historical copy has its own identifier")

	events := pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, queue.EventCompleted, events[0].Type)
	assert.Equal(t, StateActiveDeleted, events[0].State)
}

func TestCompleteDeclined(t *testing.T) {
	fs := newFakeStore()
	fs.active = []model.Appointment{seededAppointment()}
	fs.nextID = 1
	c, pub := newTestCompletion(fs, stubConfirm(false))

	err := c.Complete(context.Background(), fs.active[0])
	assert.ErrorIs(t, err, ErrDeclined)
	assert.Len(t, fs.active, 1)
	assert.Empty(t, fs.history)
	assert.Empty(t, pub.all())
}

func TestCompleteHistoricalInsertFails(t *testing.T) {
	fs := newFakeStore()
	fs.active = []model.Appointment{seededAppointment()}
	fs.nextID = 1
	fs.failCreate[store.History] = errors.New("db down")
	c, pub := newTestCompletion(fs, stubConfirm(true))

	err := c.Complete(context.Background(), fs.active[0])
	require.Error(t, err)
	// The active record is untouched when the first step fails.
	assert.Len(t, fs.active, 1)
	assert.Empty(t, fs.history)
	assert.Empty(t, pub.all())
}

func TestCompleteDeleteFailsLeavesDuplicate(t *testing.T) {
	fs := newFakeStore()
	appt := seededAppointment()
	fs.active = []model.Appointment{appt}
	fs.nextID = 1
	fs.failDelete = errors.New("db down")
	c, pub := newTestCompletion(fs, stubConfirm(true))

	err := c.Complete(context.Background(), appt)
	require.Error(t, err)

	// Accepted failure mode: both copies exist, no rollback of the insert.
	assert.Len(t, fs.active, 1)
	assert.Len(t, fs.history, 1)

	events := pub.all()
	require.Len(t, events, 1)
	assert.Equal(t, StateDeleteFailed, events[0].State)
}
