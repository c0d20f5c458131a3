package ws

import "sync/atomic"

// Gate is the pause/resume toggle for the live view. It is consumed only
// at the broadcast boundary: pausing stops snapshot frames from going out,
// while ingestion, counters and ledgers continue to update underneath.
type Gate struct {
	paused atomic.Bool
}

// Pause stops onward propagation of snapshots to clients.
func (g *Gate) Pause() {
	g.paused.Store(true)
}

// Resume restores snapshot propagation.
func (g *Gate) Resume() {
	g.paused.Store(false)
}

// Paused reports whether the display is currently paused.
func (g *Gate) Paused() bool {
	return g.paused.Load()
}
