package view

import (
	"sort"

	"github.com/ellucho77/HerbaBeauty/internal/model"
)

// OccupiedDates derives the set of distinct dates present in an active
// snapshot. The set is advisory: it lets the booking form flag a date that
// already has appointments, while the authoritative double-booking check
// compares the full (date, time) pair at submission time.
func OccupiedDates(snapshot []model.Appointment) map[string]struct{} {
	out := make(map[string]struct{}, len(snapshot))
	for _, a := range snapshot {
		out[a.Date] = struct{}{}
	}
	return out
}

// SortedDates flattens an occupied-date set into a sorted slice for JSON
// output.
func SortedDates(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
