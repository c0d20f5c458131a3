package engine

import (
	"Go2NetWatch/internal/metrics"
	"Go2NetWatch/internal/model"
	"time"

	"github.com/google/uuid"
)

// RecordPacket appends one observed packet to the front of the traffic
// ledger and truncates it to the configured window, oldest-first. An
// evicted packet can no longer be correlated; that is an accepted
// consequence of the bounded window.
func (e *Engine) RecordPacket(p model.PacketObserved) {
	rec := model.PacketRecord{
		ID:             uuid.NewString(),
		CorrelationKey: p.PacketID,
		Source:         p.Src,
		Destination:    p.Dst,
		Protocol:       p.Protocol,
		SizeBytes:      p.SizeBytes(),
		ReceivedAt:     time.Now(),
		Status:         model.StatusNormal,
	}
	if p.DestinationPort != nil {
		rec.DestinationPort = *p.DestinationPort
	}

	e.mu.Lock()
	e.packets = append(e.packets, model.PacketRecord{})
	copy(e.packets[1:], e.packets)
	e.packets[0] = rec
	if len(e.packets) > e.packetWindow {
		e.packets = e.packets[:e.packetWindow]
	}
	e.countPacket(rec.SizeBytes)
	e.mu.Unlock()

	e.notifyUpdate()
}

// applyToLedger scans the ledger for the first (most recent) entry whose
// correlation key matches the verdict and updates it in place. It reports
// whether a match was found; a miss leaves the ledger untouched.
//
// The scan is a deliberate choice over a key index: the window is small,
// O(N) per verdict is cheap at dashboard rates, and an index would need
// its own eviction kept consistent with the ledger's.
func (e *Engine) applyToLedger(v model.ClassificationVerdict) bool {
	if v.CorrelationKey == "" {
		return false
	}
	for i := range e.packets {
		if e.packets[i].CorrelationKey != v.CorrelationKey {
			continue
		}
		e.packets[i].Status = v.Status
		if v.Confidence != nil {
			conf := *v.Confidence
			e.packets[i].Confidence = &conf
		}
		if v.PredictionLabel != "" {
			e.packets[i].PredictionLabel = v.PredictionLabel
		}
		if v.HasPort {
			e.packets[i].DestinationPort = v.DestinationPort
		}
		return true
	}
	return false
}

// ApplyVerdict runs one classification verdict through the full
// reconciliation pass: ledger correlation, alert evaluation and counter
// accumulation. A correlation miss only skips the ledger effect; the
// alert and counter effects still apply.
func (e *Engine) ApplyVerdict(v model.ClassificationVerdict) {
	e.mu.Lock()
	if e.applyToLedger(v) {
		metrics.CorrelationHitsTotal.Inc()
	} else if v.CorrelationKey != "" {
		metrics.CorrelationMissesTotal.Inc()
	}
	alert := e.evaluateAlert(v)
	e.countVerdict(v.Status)
	e.mu.Unlock()

	if alert != nil && e.onAlert != nil {
		e.onAlert(*alert)
	}
	e.notifyUpdate()
}
