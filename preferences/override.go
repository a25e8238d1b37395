package preferences

import (
	"sync/atomic"

	"github.com/TykTechnologies/preferences/logging"
)

// active counts handles that have not been restored yet.
var active atomic.Int32

// OverrideHandle puts back the store that was current before Override.
// It does not own the overriding store.
type OverrideHandle struct {
	previous *slot
	restored atomic.Bool
}

// Override makes s the current store until the returned handle is restored.
//
// Overrides are meant to be used one at a time. A second Override while one
// is active captures the first override as its previous store, so handles
// must then be restored in reverse order of installation; any other order
// leaves the wrong store installed.
func Override(s Store) *OverrideHandle {
	logger := logging.GetLogger("preferences")

	h := &OverrideHandle{
		previous: current.Swap(&slot{store: s}),
	}

	if n := active.Add(1); n > 1 {
		logger.Warn().Int32("active", n).Msg("preferences overridden while another override is active")
	} else {
		logger.Debug().Msg("preferences overridden")
	}

	return h
}

// Restore reinstalls the previous store. Calls after the first do nothing.
func (h *OverrideHandle) Restore() {
	if !h.restored.CompareAndSwap(false, true) {
		return
	}

	current.Store(h.previous)
	active.Add(-1)

	logger := logging.GetLogger("preferences")
	logger.Debug().Msg("preferences override restored")
}

// Active reports whether Restore has not been called yet.
func (h *OverrideHandle) Active() bool {
	return !h.restored.Load()
}
