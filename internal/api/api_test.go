package api

import (
	"Go2NetWatch/internal/config"
	"Go2NetWatch/internal/engine"
	"Go2NetWatch/internal/model"
	"Go2NetWatch/internal/ws"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

func newTestServer(t *testing.T) (*httptest.Server, *engine.Engine, *ws.Gate) {
	t.Helper()
	e := engine.New(config.MonitorConfig{PacketWindow: 100, AlertWindow: 50, LogWindow: 50})
	e.SetEstimator(func(current int) int { return current })
	gate := &ws.Gate{}
	hub := ws.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	srv := httptest.NewServer(NewRouter(e, gate, hub))
	t.Cleanup(srv.Close)
	return srv, e, gate
}

func TestSnapshotEndpoint(t *testing.T) {
	srv, e, _ := newTestServer(t)
	e.HandleEvent(model.EventPacket, []byte(`{"packet_id":"p1","src":"10.0.0.1","dst":"10.0.0.2","protocol":"TCP","length":512}`))
	e.HandleEvent(model.EventVerdict, []byte(`{"packet_id":"p1","status":"malicious","confidence":0.92}`))

	resp, err := http.Get(srv.URL + "/api/v1/dashboard")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Status = %d", resp.StatusCode)
	}

	var snap model.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(snap.Packets) != 1 || len(snap.Alerts) != 1 {
		t.Errorf("Unexpected snapshot: %d packets, %d alerts", len(snap.Packets), len(snap.Alerts))
	}
	if snap.Counters.MaliciousCount != 1 {
		t.Errorf("Counters not reflected: %+v", snap.Counters)
	}
}

func TestDismissAlertEndpoint(t *testing.T) {
	srv, e, _ := newTestServer(t)
	e.HandleEvent(model.EventVerdict, []byte(`{"packet_id":"a1","status":"suspicious"}`))

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/alerts/a1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Status = %d, want 204", resp.StatusCode)
	}
	if got := len(e.Snapshot().Alerts); got != 0 {
		t.Errorf("Alert not dismissed, %d remain", got)
	}

	// Dismissing a missing id is also 204.
	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/alerts/gone", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Status for absent id = %d, want 204", resp.StatusCode)
	}
}

func TestPauseDoesNotStopIngestion(t *testing.T) {
	srv, e, gate := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/display/pause", "application/json", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if !gate.Paused() {
		t.Fatal("Gate should be paused")
	}

	// Events keep mutating state while the display is paused.
	e.HandleEvent(model.EventPacket, []byte(`{"src":"a","dst":"b","protocol":"TCP","length":64}`))
	e.HandleEvent(model.EventVerdict, []byte(`{"status":"malicious"}`))
	c := e.Counters()
	if c.TotalPackets != 1 || c.MaliciousCount != 1 {
		t.Errorf("Ingestion stalled while paused: %+v", c)
	}

	resp, err = http.Post(srv.URL+"/api/v1/display/resume", "application/json", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	resp.Body.Close()
	if gate.Paused() {
		t.Error("Gate should have resumed")
	}
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)
	for _, path := range []string{"/healthz", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s failed: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d", path, resp.StatusCode)
		}
	}
}
