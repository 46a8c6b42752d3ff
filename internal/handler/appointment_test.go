package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellucho77/HerbaBeauty/internal/booking"
	"github.com/ellucho77/HerbaBeauty/internal/model"
	"github.com/ellucho77/HerbaBeauty/internal/repository"
	"github.com/ellucho77/HerbaBeauty/internal/session"
	"github.com/ellucho77/HerbaBeauty/internal/store"
	"github.com/ellucho77/HerbaBeauty/internal/view"
	"github.com/ellucho77/HerbaBeauty/pkg/logging"
)

// memStore is an in-memory store.Store for handler tests. Subscribers get
// their snapshots synchronously so assertions never have to wait.
type memStore struct {
	data   map[store.Collection][]model.Appointment
	nextID uint64
	subs   map[store.Collection][]func([]model.Appointment)
}

func newMemStore() *memStore {
	return &memStore{
		data: map[store.Collection][]model.Appointment{store.Active: {}, store.History: {}},
		subs: map[store.Collection][]func([]model.Appointment){},
	}
}

func (m *memStore) Create(_ context.Context, col store.Collection, a model.Appointment) (uint64, error) {
	m.nextID++
	a.ID = m.nextID
	m.data[col] = append(m.data[col], a)
	m.fanOut(col)
	return a.ID, nil
}

func (m *memStore) ReadAll(_ context.Context, col store.Collection) ([]model.Appointment, error) {
	out := make([]model.Appointment, len(m.data[col]))
	copy(out, m.data[col])
	return out, nil
}

func (m *memStore) DeleteByID(_ context.Context, col store.Collection, id uint64) error {
	for i, a := range m.data[col] {
		if a.ID == id {
			m.data[col] = append(m.data[col][:i], m.data[col][i+1:]...)
			m.fanOut(col)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) Subscribe(col store.Collection, fn func([]model.Appointment)) (*store.Subscription, error) {
	snap, _ := m.ReadAll(context.Background(), col)
	fn(snap)
	m.subs[col] = append(m.subs[col], fn)
	return &store.Subscription{}, nil
}

func (m *memStore) fanOut(col store.Collection) {
	for _, fn := range m.subs[col] {
		snap, _ := m.ReadAll(context.Background(), col)
		fn(snap)
	}
}

// fixture wires a full handler stack over the in-memory store, with a
// visitor session that already selected a service.
type fixture struct {
	e        *echo.Echo
	store    *memStore
	sessions *session.Store
	handler  *AppointmentHandler
	active   *view.ActiveView
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logging.New("error")
	st := newMemStore()
	sessions := session.NewStore(nil, log)
	require.NoError(t, sessions.Select(context.Background(), "sess-1", "Plasma pen"))

	active := view.NewActiveView(log)
	_, err := st.Subscribe(store.Active, active.Apply)
	require.NoError(t, err)

	wf := booking.NewWorkflow(st, sessions, nil, nil, log)
	canceller := booking.NewCanceller(st, booking.AutoConfirm{}, nil, nil, log)
	completion := booking.NewCompletion(st, booking.AutoConfirm{}, nil, nil, log)

	return &fixture{
		e:        echo.New(),
		store:    st,
		sessions: sessions,
		handler:  NewAppointmentHandler(st, active, wf, canceller, completion),
		active:   active,
	}
}

func (f *fixture) request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return f.e.NewContext(req, rec), rec
}

func (f *fixture) book(t *testing.T, date, tm string) model.Appointment {
	t.Helper()
	require.NoError(t, f.sessions.Select(context.Background(), "sess-1", "Plasma pen"))
	c, rec := f.request(http.MethodPost, "/v1/appointments",
		`{"session_id":"sess-1","name":"Carla","date":"`+date+`","time":"`+tm+`"}`)
	require.NoError(t, f.handler.Book(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var appt model.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &appt))
	return appt
}

func TestBookCreatesAppointment(t *testing.T) {
	f := newFixture(t)

	c, rec := f.request(http.MethodPost, "/v1/appointments",
		`{"session_id":"sess-1","name":"  Carla  ","date":"2024-06-01","time":"10:00"}`)
	require.NoError(t, f.handler.Book(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	var appt model.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &appt))
	assert.Equal(t, "Carla", appt.Name)
	assert.Equal(t, "Plasma pen", appt.Service)
	assert.NotZero(t, appt.ID)
	assert.NotEmpty(t, appt.CreatedAt)

	// The selection is consumed by the booking.
	selected, err := f.sessions.Selected(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestBookIncompleteReturns400(t *testing.T) {
	f := newFixture(t)

	c, rec := f.request(http.MethodPost, "/v1/appointments",
		`{"session_id":"sess-1","name":"","date":"2024-06-01","time":"10:00"}`)
	require.NoError(t, f.handler.Book(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Por favor completa todos los campos")
}

func TestBookMissingSessionReturns400(t *testing.T) {
	f := newFixture(t)

	c, rec := f.request(http.MethodPost, "/v1/appointments",
		`{"name":"Carla","date":"2024-06-01","time":"10:00"}`)
	require.NoError(t, f.handler.Book(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "session_id")
}

func TestBookSlotConflictReturns409(t *testing.T) {
	f := newFixture(t)
	f.book(t, "2024-06-01", "10:00")

	require.NoError(t, f.sessions.Select(context.Background(), "sess-1", "Criolipólisis"))
	c, rec := f.request(http.MethodPost, "/v1/appointments",
		`{"session_id":"sess-1","name":"Lucía","date":"2024-06-01","time":"10:00"}`)
	require.NoError(t, f.handler.Book(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ya existe un turno registrado")
}

func TestListActiveRendersFromView(t *testing.T) {
	f := newFixture(t)
	f.book(t, "2024-06-02", "11:00")
	f.book(t, "2024-06-01", "09:00")

	c, rec := f.request(http.MethodGet, "/v1/appointments", "")
	require.NoError(t, f.handler.ListActive(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var list view.List
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Rows, 2)
	assert.Equal(t, "2024-06-01", list.Rows[0].Date)
	assert.Equal(t, []string{"2024-06-01", "2024-06-02"}, list.OccupiedDates)
}

func TestListActiveEmptyShowsPlaceholder(t *testing.T) {
	f := newFixture(t)

	c, rec := f.request(http.MethodGet, "/v1/appointments", "")
	require.NoError(t, f.handler.ListActive(c))

	var list view.List
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.Rows)
	assert.Equal(t, view.PlaceholderNoActive, list.Placeholder)
}

func TestCancelRemovesAppointment(t *testing.T) {
	f := newFixture(t)
	f.book(t, "2024-06-01", "10:00")

	c, rec := f.request(http.MethodDelete, "/v1/appointments/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, f.handler.Cancel(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	snap, _ := f.store.ReadAll(context.Background(), store.Active)
	assert.Empty(t, snap)
}

func TestCancelUnknownIDReturns404(t *testing.T) {
	f := newFixture(t)

	c, rec := f.request(http.MethodDelete, "/v1/appointments/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, f.handler.Cancel(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelInvalidIDReturns400(t *testing.T) {
	f := newFixture(t)

	c, rec := f.request(http.MethodDelete, "/v1/appointments/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, f.handler.Cancel(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteMovesToHistory(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t, "2024-06-01", "10:00")

	c, rec := f.request(http.MethodPost, "/v1/appointments/1/complete", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, f.handler.Complete(c))

	require.Equal(t, http.StatusOK, rec.Code)
	active, _ := f.store.ReadAll(context.Background(), store.Active)
	assert.Empty(t, active)
	hist, _ := f.store.ReadAll(context.Background(), store.History)
	require.Len(t, hist, 1)
	assert.Equal(t, appt.Name, hist[0].Name)
	assert.NotEmpty(t, hist[0].CompletedAt)
}

func TestClearAllReportsDeletedCount(t *testing.T) {
	f := newFixture(t)
	f.book(t, "2024-06-01", "10:00")
	f.book(t, "2024-06-01", "11:00")
	f.book(t, "2024-06-02", "10:00")

	c, rec := f.request(http.MethodDelete, "/v1/appointments", "")
	require.NoError(t, f.handler.ClearAll(c))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp["deleted"])
	snap, _ := f.store.ReadAll(context.Background(), store.Active)
	assert.Empty(t, snap)
}

func TestOccupiedDates(t *testing.T) {
	f := newFixture(t)
	f.book(t, "2024-06-01", "10:00")
	f.book(t, "2024-06-01", "11:00")

	c, rec := f.request(http.MethodGet, "/v1/appointments/occupied-dates", "")
	require.NoError(t, f.handler.OccupiedDates(c))

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2024-06-01"}, resp["dates"])
}
