package engine

import (
	"Go2NetWatch/internal/model"
	"fmt"
	"testing"
)

func suspiciousVerdict(key string) []byte {
	return []byte(fmt.Sprintf(`{"packet_id":%q,"status":"suspicious","src":"192.168.1.50","destination_port":22}`, key))
}

func TestAlertSequenceBoundAndOrdering(t *testing.T) {
	e := newTestEngine()

	for i := 0; i < 55; i++ {
		e.HandleEvent(model.EventVerdict, suspiciousVerdict(fmt.Sprintf("k%d", i)))
	}

	snap := e.Snapshot()
	if len(snap.Alerts) != 50 {
		t.Fatalf("Expected alert sequence capped at 50, got %d", len(snap.Alerts))
	}
	if snap.Alerts[0].ID != "k54" {
		t.Errorf("Expected newest alert first, got %q", snap.Alerts[0].ID)
	}
	if snap.Alerts[49].ID != "k5" {
		t.Errorf("Expected oldest surviving alert k5, got %q", snap.Alerts[49].ID)
	}

	// Counters keep the full history even though five alerts were evicted.
	if snap.Counters.AlertCount != 55 || snap.Counters.SuspiciousCount != 55 {
		t.Errorf("Counters must diverge from the bounded sequence: %+v", snap.Counters)
	}
}

func TestAlertMessageComposition(t *testing.T) {
	e := newTestEngine()

	e.HandleEvent(model.EventVerdict, []byte(`{"status":"suspicious","src":"192.168.1.50","destination_port":22}`))
	e.HandleEvent(model.EventVerdict, []byte(`{"status":"malicious"}`))

	snap := e.Snapshot()
	if got := snap.Alerts[1].Message; got != "Suspicious traffic detected from 192.168.1.50 targeting port 22" {
		t.Errorf("Unexpected message: %q", got)
	}
	// Absent source and port fall back to the literal "unknown".
	if got := snap.Alerts[0].Message; got != "Malicious traffic detected from unknown targeting port unknown" {
		t.Errorf("Unexpected fallback message: %q", got)
	}
}

func TestSeverityIsPureFunctionOfStatus(t *testing.T) {
	e := newTestEngine()

	// High confidence on suspicious must not escalate severity.
	e.HandleEvent(model.EventVerdict, []byte(`{"status":"suspicious","confidence":0.99}`))
	e.HandleEvent(model.EventVerdict, []byte(`{"status":"malicious","confidence":0.01}`))

	snap := e.Snapshot()
	if snap.Alerts[1].Severity != model.SeverityMedium {
		t.Errorf("suspicious should be medium, got %q", snap.Alerts[1].Severity)
	}
	if snap.Alerts[0].Severity != model.SeverityHigh {
		t.Errorf("malicious should be high, got %q", snap.Alerts[0].Severity)
	}
}

func TestDismissAlert(t *testing.T) {
	e := newTestEngine()
	for i := 0; i < 3; i++ {
		e.HandleEvent(model.EventVerdict, suspiciousVerdict(fmt.Sprintf("k%d", i)))
	}

	// 1. Dismissing a present id removes exactly that entry.
	e.DismissAlert("k1")
	snap := e.Snapshot()
	if len(snap.Alerts) != 2 {
		t.Fatalf("Expected 2 alerts after dismissal, got %d", len(snap.Alerts))
	}
	if snap.Alerts[0].ID != "k2" || snap.Alerts[1].ID != "k0" {
		t.Errorf("Other alerts disturbed: %q, %q", snap.Alerts[0].ID, snap.Alerts[1].ID)
	}

	// 2. Dismissing an absent id is a silent no-op.
	e.DismissAlert("k1")
	e.DismissAlert("never-existed")
	if got := len(e.Snapshot().Alerts); got != 2 {
		t.Errorf("No-op dismissal changed the sequence, len=%d", got)
	}

	// 3. Dismissal does not touch the historical counter.
	if got := e.Counters().AlertCount; got != 3 {
		t.Errorf("AlertCount should stay 3, got %d", got)
	}
}
