// Package api exposes the read-only dashboard surface over HTTP: state
// snapshots, alert dismissal, the display pause toggle, health and
// metrics, plus the WebSocket upgrade endpoint.
package api

import (
	"Go2NetWatch/internal/engine"
	"Go2NetWatch/internal/ws"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler holds the dependencies for the API handlers.
type Handler struct {
	engine *engine.Engine
	gate   *ws.Gate
	hub    *ws.Hub
}

// NewRouter builds the HTTP router for the monitoring surface.
func NewRouter(e *engine.Engine, gate *ws.Gate, hub *ws.Hub) *mux.Router {
	h := &Handler{engine: e, gate: gate, hub: hub}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/dashboard", h.snapshotHandler).Methods("GET")
	r.HandleFunc("/api/v1/dashboard/counters", h.countersHandler).Methods("GET")
	r.HandleFunc("/api/v1/alerts/{id}", h.dismissAlertHandler).Methods("DELETE")
	r.HandleFunc("/api/v1/display", h.displayHandler).Methods("GET")
	r.HandleFunc("/api/v1/display/pause", h.pauseHandler).Methods("POST")
	r.HandleFunc("/api/v1/display/resume", h.resumeHandler).Methods("POST")
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWS(hub, w, req)
	})
	r.HandleFunc("/healthz", h.healthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// snapshotHandler returns the full dashboard snapshot.
func (h *Handler) snapshotHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.Snapshot())
}

// countersHandler returns just the aggregate counters.
func (h *Handler) countersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.Counters())
}

// dismissAlertHandler removes an alert by id. Dismissing an id that was
// already evicted is not an error; the response is 204 either way.
func (h *Handler) dismissAlertHandler(w http.ResponseWriter, r *http.Request) {
	h.engine.DismissAlert(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// displayHandler reports the current pause state of the live view.
func (h *Handler) displayHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]bool{"paused": h.gate.Paused()})
}

// pauseHandler freezes the live view. Ingestion is unaffected: only the
// display is paused, and state keeps accumulating underneath.
func (h *Handler) pauseHandler(w http.ResponseWriter, r *http.Request) {
	h.gate.Pause()
	writeJSON(w, map[string]bool{"paused": true})
}

// resumeHandler unfreezes the live view.
func (h *Handler) resumeHandler(w http.ResponseWriter, r *http.Request) {
	h.gate.Resume()
	writeJSON(w, map[string]bool{"paused": false})
}

func (h *Handler) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Write(data)
}
