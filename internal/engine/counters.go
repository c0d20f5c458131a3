package engine

import (
	"Go2NetWatch/internal/model"
	"math/rand"
	"time"
)

// MinEstimatedConnections is the floor of the connection-count random walk.
const MinEstimatedConnections = 10

// EstimatorFunc advances the active-connection estimate by one packet
// observation. The estimate is a deliberately approximate signal for the
// dashboard, not an authoritative connection count.
type EstimatorFunc func(current int) int

// NewRandomWalkEstimator returns the default estimator: a ±1 random walk
// per packet, floored at MinEstimatedConnections.
func NewRandomWalkEstimator() EstimatorFunc {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func(current int) int {
		step := -1
		if r.Intn(2) == 1 {
			step = 1
		}
		current += step
		if current < MinEstimatedConnections {
			current = MinEstimatedConnections
		}
		return current
	}
}

// countPacket accumulates the packet-side counters. Caller holds the write
// lock. Totals are never reconstructed from the ledger, so they remain
// correct after entries are evicted.
func (e *Engine) countPacket(sizeBytes int64) {
	e.counters.TotalPackets++
	e.counters.BandwidthBytes += uint64(sizeBytes)
	e.counters.EstimatedActiveConnections = e.estimate(e.counters.EstimatedActiveConnections)
}

// countVerdict accumulates the verdict-side counters. Qualifying verdicts
// increment the matching severity counter and the alert total
// unconditionally, even when the bounded alert sequence has already
// evicted (or will evict) the corresponding record: the counters are
// history, the sequence is what is currently visible.
func (e *Engine) countVerdict(status model.Status) {
	switch status {
	case model.StatusSuspicious:
		e.counters.SuspiciousCount++
		e.counters.AlertCount++
	case model.StatusMalicious:
		e.counters.MaliciousCount++
		e.counters.AlertCount++
	}
}
