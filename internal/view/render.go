// Package view derives the rendered appointment lists from collection
// snapshots. Rendering is pure: every list is recomputed in full from the
// snapshot it was given, never patched incrementally, so a view can never
// drift from the store.
package view

import (
	"sort"

	"github.com/ellucho77/HerbaBeauty/internal/model"
)

// Placeholder texts shown when a list renders empty.
const (
	PlaceholderNoActive          = "No hay turnos activos"
	PlaceholderNoHistory         = "No hay turnos finalizados."
	PlaceholderNoHistoryFiltered = "No hay turnos finalizados en esta fecha."
)

// Row is one rendered appointment entry.
type Row struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Service     string `json:"service"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// List is a rendered collection view. When Rows is empty, Placeholder holds
// the single placeholder row's text and no actions apply. OccupiedDates is
// populated only for the active list.
type List struct {
	Rows          []Row    `json:"rows"`
	Placeholder   string   `json:"placeholder,omitempty"`
	OccupiedDates []string `json:"occupied_dates,omitempty"`
}

// RenderActive renders the active list: ascending lexicographic order on the
// concatenation of date and time, plus the derived occupied-date set, plus
// the placeholder when the snapshot is empty.
func RenderActive(snapshot []model.Appointment) List {
	if len(snapshot) == 0 {
		return List{Rows: []Row{}, Placeholder: PlaceholderNoActive, OccupiedDates: []string{}}
	}
	rows := toRows(snapshot)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date+rows[i].Time < rows[j].Date+rows[j].Time
	})
	return List{Rows: rows, OccupiedDates: SortedDates(OccupiedDates(snapshot))}
}

// RenderHistory renders the historical list. An optional filter date keeps
// only appointments whose slot date matches exactly. Ordering is descending
// lexicographic on the completion timestamp; records with an empty
// completion timestamp sort last.
func RenderHistory(snapshot []model.Appointment, filterDate string) List {
	filtered := snapshot
	if filterDate != "" {
		filtered = make([]model.Appointment, 0, len(snapshot))
		for _, a := range snapshot {
			if a.Date == filterDate {
				filtered = append(filtered, a)
			}
		}
	}
	if len(filtered) == 0 {
		text := PlaceholderNoHistory
		if filterDate != "" {
			text = PlaceholderNoHistoryFiltered
		}
		return List{Rows: []Row{}, Placeholder: text}
	}
	rows := toRows(filtered)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CompletedAt > rows[j].CompletedAt
	})
	return List{Rows: rows}
}

func toRows(snapshot []model.Appointment) []Row {
	rows := make([]Row, 0, len(snapshot))
	for _, a := range snapshot {
		rows = append(rows, Row{
			ID:          a.ID,
			Name:        a.Name,
			Date:        a.Date,
			Time:        a.Time,
			Service:     a.Service,
			CreatedAt:   a.CreatedAt,
			CompletedAt: a.CompletedAt,
		})
	}
	return rows
}
