// Package metrics exposes Prometheus instrumentation for the monitoring
// surface. Collectors are registered on the default registry and served
// from the API's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsTotal counts well-formed events accepted by the ingress
	// router, labeled by event kind.
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gnw_events_total",
		Help: "Events accepted by the ingress router, by kind.",
	}, []string{"kind"})

	// MalformedEventsTotal counts events dropped before dispatch.
	MalformedEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gnw_malformed_events_total",
		Help: "Events dropped because they failed decoding or shape checks.",
	})

	// CorrelationHitsTotal counts verdicts that found their packet still
	// present in the traffic ledger.
	CorrelationHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gnw_correlation_hits_total",
		Help: "Verdicts whose correlation key matched a ledger entry.",
	})

	// CorrelationMissesTotal counts verdicts whose packet was never seen
	// or already evicted from the bounded window.
	CorrelationMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gnw_correlation_misses_total",
		Help: "Verdicts whose correlation key matched no ledger entry.",
	})

	// AlertsCreatedTotal counts derived alerts, labeled by severity.
	AlertsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gnw_alerts_created_total",
		Help: "Alert records created from qualifying verdicts, by severity.",
	}, []string{"severity"})

	// DismissalsTotal counts user-initiated alert dismissals that removed
	// an alert. Dismissals of already-evicted ids are not counted.
	DismissalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gnw_alert_dismissals_total",
		Help: "Alerts removed by user dismissal.",
	})

	// WebsocketClients tracks currently connected dashboard clients.
	WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gnw_websocket_clients",
		Help: "Currently connected WebSocket dashboard clients.",
	})
)
