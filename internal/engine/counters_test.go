package engine

import (
	"Go2NetWatch/internal/config"
	"Go2NetWatch/internal/model"
	"testing"
)

func TestEstimatorDeterministicInjection(t *testing.T) {
	e := New(config.MonitorConfig{PacketWindow: 100, AlertWindow: 50, LogWindow: 50})
	steps := []int{+1, +1, -1, +1}
	i := 0
	e.SetEstimator(func(current int) int {
		current += steps[i]
		i++
		if current < MinEstimatedConnections {
			current = MinEstimatedConnections
		}
		return current
	})

	for range steps {
		e.HandleEvent(model.EventPacket, packetEvent("", 1))
	}

	if got := e.Counters().EstimatedActiveConnections; got != 12 {
		t.Errorf("Expected estimate 12 after +1+1-1+1 from 10, got %d", got)
	}
}

func TestRandomWalkEstimatorFloor(t *testing.T) {
	est := NewRandomWalkEstimator()
	current := MinEstimatedConnections
	for i := 0; i < 1000; i++ {
		current = est(current)
		if current < MinEstimatedConnections {
			t.Fatalf("Estimate fell below the floor: %d", current)
		}
	}
}

func TestRandomWalkEstimatorSteps(t *testing.T) {
	est := NewRandomWalkEstimator()
	current := 100
	for i := 0; i < 100; i++ {
		next := est(current)
		if diff := next - current; diff != 1 && diff != -1 {
			t.Fatalf("Step must be ±1, got %d", diff)
		}
		current = next
	}
}

func TestCountersIndependentOfLedgers(t *testing.T) {
	// A tiny window forces constant eviction; the totals must not notice.
	e := New(config.MonitorConfig{PacketWindow: 2, AlertWindow: 2, LogWindow: 2})
	e.SetEstimator(func(current int) int { return current })

	for i := 0; i < 10; i++ {
		e.HandleEvent(model.EventPacket, []byte(`{"src":"a","dst":"b","protocol":"TCP","length":100}`))
		e.HandleEvent(model.EventVerdict, []byte(`{"status":"malicious"}`))
	}

	snap := e.Snapshot()
	if len(snap.Packets) != 2 || len(snap.Alerts) != 2 {
		t.Fatalf("Windows not enforced: %d packets, %d alerts", len(snap.Packets), len(snap.Alerts))
	}
	if snap.Counters.TotalPackets != 10 {
		t.Errorf("TotalPackets = %d, want 10", snap.Counters.TotalPackets)
	}
	if snap.Counters.BandwidthBytes != 1000 {
		t.Errorf("BandwidthBytes = %d, want 1000", snap.Counters.BandwidthBytes)
	}
	if snap.Counters.MaliciousCount != 10 || snap.Counters.AlertCount != 10 {
		t.Errorf("Verdict counters must count evicted alerts too: %+v", snap.Counters)
	}
}
