package engine

import (
	"Go2NetWatch/internal/metrics"
	"Go2NetWatch/internal/model"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// evaluateAlert derives an AlertRecord from a qualifying verdict and
// prepends it to the bounded alert sequence. Normal verdicts never produce
// an alert. Severity is purely a function of status; confidence only
// accompanies the alert for display. Caller holds the write lock.
func (e *Engine) evaluateAlert(v model.ClassificationVerdict) *model.AlertRecord {
	if !v.Status.Qualifying() {
		return nil
	}

	severity := model.SeverityMedium
	if v.Status == model.StatusMalicious {
		severity = model.SeverityHigh
	}

	id := v.CorrelationKey
	if id == "" {
		id = uuid.NewString()
	}

	alert := model.AlertRecord{
		ID:             id,
		CreatedAt:      time.Now(),
		Message:        alertMessage(v),
		Severity:       severity,
		Confidence:     v.Confidence,
		CorrelationKey: v.CorrelationKey,
	}

	e.alerts = append(e.alerts, model.AlertRecord{})
	copy(e.alerts[1:], e.alerts)
	e.alerts[0] = alert
	if len(e.alerts) > e.alertWindow {
		e.alerts = e.alerts[:e.alertWindow]
	}

	metrics.AlertsCreatedTotal.WithLabelValues(string(severity)).Inc()
	return &alert
}

// alertMessage composes the human-readable summary deterministically from
// the verdict fields, with "unknown" standing in for anything absent.
func alertMessage(v model.ClassificationVerdict) string {
	src := v.Source
	if src == "" {
		src = "unknown"
	}
	port := "unknown"
	if v.HasPort {
		port = strconv.Itoa(v.DestinationPort)
	}
	status := strings.ToUpper(string(v.Status)[:1]) + string(v.Status)[1:]
	return fmt.Sprintf("%s traffic detected from %s targeting port %s", status, src, port)
}

// DismissAlert removes the alert with the given id from the sequence.
// Dismissing an id that is not present is a silent no-op: user-triggered
// dismissal races against capacity eviction and must be tolerated.
func (e *Engine) DismissAlert(id string) {
	e.mu.Lock()
	for i := range e.alerts {
		if e.alerts[i].ID == id {
			e.alerts = append(e.alerts[:i], e.alerts[i+1:]...)
			metrics.DismissalsTotal.Inc()
			break
		}
	}
	e.mu.Unlock()

	e.notifyUpdate()
}
