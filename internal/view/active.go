package view

import (
	"sync"

	"github.com/ellucho77/HerbaBeauty/internal/model"
	"github.com/ellucho77/HerbaBeauty/pkg/logging"
)

// ActiveView caches the latest active snapshot and serves the rendered list
// and the occupied-date set from it. The cache is replaced only from Apply,
// which the store calls with each full snapshot; no other path mutates it,
// so a cancelled or completed appointment disappears exactly when the next
// snapshot excludes it.
type ActiveView struct {
	mu       sync.RWMutex
	snapshot []model.Appointment
	log      *logging.Logger
}

// NewActiveView returns an empty view; wire Apply to a store subscription.
func NewActiveView(log *logging.Logger) *ActiveView {
	if log == nil {
		log = logging.Default()
	}
	return &ActiveView{log: log}
}

// Apply replaces the cached snapshot. Intended as the store subscriber
// callback.
func (v *ActiveView) Apply(snapshot []model.Appointment) {
	v.mu.Lock()
	v.snapshot = snapshot
	v.mu.Unlock()
	v.log.Debug("active view refreshed", "appointments", len(snapshot))
}

// Render returns the sorted active list derived from the cached snapshot.
func (v *ActiveView) Render() List {
	v.mu.RLock()
	snap := v.snapshot
	v.mu.RUnlock()
	return RenderActive(snap)
}

// Occupied returns the sorted occupied-date set for the cached snapshot.
func (v *ActiveView) Occupied() []string {
	v.mu.RLock()
	snap := v.snapshot
	v.mu.RUnlock()
	return SortedDates(OccupiedDates(snap))
}
