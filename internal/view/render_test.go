package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellucho77/HerbaBeauty/internal/model"
)

func active(name, date, tm string) model.Appointment {
	return model.Appointment{Name: name, Date: date, Time: tm, Service: "Plasma pen", CreatedAt: "2024-04-30 09:00:00"}
}

func completed(name, date, tm, completedAt string) model.Appointment {
	a := active(name, date, tm)
	a.CompletedAt = completedAt
	return a
}

func TestRenderActiveSortsByDateThenTime(t *testing.T) {
	list := RenderActive([]model.Appointment{
		active("c", "2024-05-02", "09:00"),
		active("a", "2024-05-01", "15:00"),
		active("b", "2024-05-01", "08:30"),
	})

	require.Len(t, list.Rows, 3)
	assert.Equal(t, "b", list.Rows[0].Name)
	assert.Equal(t, "a", list.Rows[1].Name)
	assert.Equal(t, "c", list.Rows[2].Name)
	assert.Empty(t, list.Placeholder)
}

func TestRenderActiveEmptyPlaceholder(t *testing.T) {
	list := RenderActive(nil)
	assert.Empty(t, list.Rows)
	assert.Equal(t, PlaceholderNoActive, list.Placeholder)
	assert.Empty(t, list.OccupiedDates)
}

func TestRenderActiveOccupiedDates(t *testing.T) {
	list := RenderActive([]model.Appointment{
		active("a", "2024-05-02", "09:00"),
		active("b", "2024-05-01", "15:00"),
		active("c", "2024-05-02", "10:00"), // same date, different time is allowed
	})
	assert.Equal(t, []string{"2024-05-01", "2024-05-02"}, list.OccupiedDates)
}

func TestRenderHistorySortsDescendingMissingLast(t *testing.T) {
	list := RenderHistory([]model.Appointment{
		completed("old", "2024-05-01", "10:00", "2024-05-01 10:45:00"),
		completed("none", "2024-05-01", "11:00", ""),
		completed("new", "2024-05-02", "09:00", "2024-05-02 09:40:00"),
	}, "")

	require.Len(t, list.Rows, 3)
	assert.Equal(t, "new", list.Rows[0].Name)
	assert.Equal(t, "old", list.Rows[1].Name)
	assert.Equal(t, "none", list.Rows[2].Name)
}

func TestRenderHistoryFilterIsIdempotent(t *testing.T) {
	snap := []model.Appointment{
		completed("a", "2024-05-01", "10:00", "2024-05-01 10:45:00"),
		completed("b", "2024-05-02", "09:00", "2024-05-02 09:40:00"),
	}

	once := RenderHistory(snap, "2024-05-01")
	twice := RenderHistory(snap, "2024-05-01")
	assert.Equal(t, once, twice)
	require.Len(t, once.Rows, 1)
	assert.Equal(t, "a", once.Rows[0].Name)

	cleared := RenderHistory(snap, "")
	assert.Len(t, cleared.Rows, 2)
}

func TestRenderHistoryPlaceholderReflectsFilter(t *testing.T) {
	assert.Equal(t, PlaceholderNoHistory, RenderHistory(nil, "").Placeholder)
	assert.Equal(t, PlaceholderNoHistoryFiltered, RenderHistory(nil, "2024-05-01").Placeholder)

	snap := []model.Appointment{completed("a", "2024-05-01", "10:00", "2024-05-01 10:45:00")}
	assert.Equal(t, PlaceholderNoHistoryFiltered, RenderHistory(snap, "2030-01-01").Placeholder)
}

func TestOccupiedDatesPure(t *testing.T) {
	snap := []model.Appointment{
		active("a", "2024-05-01", "10:00"),
		active("b", "2024-05-01", "11:00"),
	}
	set := OccupiedDates(snap)
	assert.Len(t, set, 1)
	_, ok := set["2024-05-01"]
	assert.True(t, ok)
	assert.Empty(t, OccupiedDates(nil))
}
