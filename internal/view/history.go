package view

import (
	"sync"

	"github.com/ellucho77/HerbaBeauty/internal/model"
	"github.com/ellucho77/HerbaBeauty/pkg/logging"
)

// HistoryView caches the latest historical snapshot. Filter changes
// re-render from the cache without touching the store; only Apply (driven by
// the subscription) refreshes the data underneath.
type HistoryView struct {
	mu       sync.RWMutex
	snapshot []model.Appointment
	log      *logging.Logger
}

// NewHistoryView returns an empty view; wire Apply to a store subscription.
func NewHistoryView(log *logging.Logger) *HistoryView {
	if log == nil {
		log = logging.Default()
	}
	return &HistoryView{log: log}
}

// Apply replaces the cached snapshot. Intended as the store subscriber
// callback.
func (v *HistoryView) Apply(snapshot []model.Appointment) {
	v.mu.Lock()
	v.snapshot = snapshot
	v.mu.Unlock()
	v.log.Debug("history view refreshed", "appointments", len(snapshot))
}

// Render returns the historical list, optionally filtered to one exact slot
// date, derived from the cached snapshot.
func (v *HistoryView) Render(filterDate string) List {
	v.mu.RLock()
	snap := v.snapshot
	v.mu.RUnlock()
	return RenderHistory(snap, filterDate)
}
