package engine

import (
	"Go2NetWatch/internal/model"
	"time"
)

// Snapshot returns a deep copy of the current engine state for the
// presentation layer. Confidence pointers are copied too, so a caller can
// mutate the snapshot without reaching back into the engine.
func (e *Engine) Snapshot() model.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := model.Snapshot{
		Packets:     make([]model.PacketRecord, len(e.packets)),
		Alerts:      make([]model.AlertRecord, len(e.alerts)),
		Logs:        make([]model.SystemLogEntry, len(e.logs)),
		Counters:    e.counters,
		GeneratedAt: time.Now(),
	}

	copy(snap.Packets, e.packets)
	for i := range snap.Packets {
		if c := snap.Packets[i].Confidence; c != nil {
			conf := *c
			snap.Packets[i].Confidence = &conf
		}
	}

	copy(snap.Alerts, e.alerts)
	for i := range snap.Alerts {
		if c := snap.Alerts[i].Confidence; c != nil {
			conf := *c
			snap.Alerts[i].Confidence = &conf
		}
	}

	copy(snap.Logs, e.logs)
	return snap
}

// Counters returns a copy of just the aggregate counters.
func (e *Engine) Counters() model.Counters {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.counters
}
