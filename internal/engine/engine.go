package engine

import (
	"Go2NetWatch/internal/config"
	"Go2NetWatch/internal/metrics"
	"Go2NetWatch/internal/model"
	"log"
	"sync"

	"github.com/goccy/go-json"
)

// Engine is the streaming state-reconciliation core. It owns the bounded
// traffic ledger, the alert sequence, the log sink and the aggregate
// counters, and mutates them one event at a time in delivery order.
//
// Mutations arrive on the single transport delivery goroutine; the mutex
// exists so the HTTP and WebSocket layers can take snapshots concurrently
// with ingestion, not to serialize event handlers against each other.
type Engine struct {
	mu       sync.RWMutex
	packets  []model.PacketRecord
	alerts   []model.AlertRecord
	logs     []model.SystemLogEntry
	counters model.Counters

	packetWindow int
	alertWindow  int
	logWindow    int

	estimate EstimatorFunc
	onUpdate func()
	onAlert  func(model.AlertRecord)
}

// New creates an Engine with the configured window sizes. Multiple engines
// never share state; tests can run independent instances side by side.
func New(cfg config.MonitorConfig) *Engine {
	e := &Engine{
		packetWindow: cfg.PacketWindow,
		alertWindow:  cfg.AlertWindow,
		logWindow:    cfg.LogWindow,
		estimate:     NewRandomWalkEstimator(),
	}
	e.counters.EstimatedActiveConnections = MinEstimatedConnections
	return e
}

// SetUpdateHook registers a callback invoked after every processed event.
// The presentation layer uses it to know a fresh snapshot is available.
// Must be called before events start flowing.
func (e *Engine) SetUpdateHook(fn func()) {
	e.onUpdate = fn
}

// SetAlertHook registers a callback invoked for every created AlertRecord.
// Must be called before events start flowing.
func (e *Engine) SetAlertHook(fn func(model.AlertRecord)) {
	e.onAlert = fn
}

// SetEstimator replaces the connection-count estimator. Tests inject a
// deterministic step function here.
func (e *Engine) SetEstimator(fn EstimatorFunc) {
	e.estimate = fn
}

// Reset discards all accumulated state, returning the engine to its
// just-constructed condition.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.packets = nil
	e.alerts = nil
	e.logs = nil
	e.counters = model.Counters{EstimatedActiveConnections: MinEstimatedConnections}
	e.mu.Unlock()
}

// HandleEvent is the ingress router: it decodes one tagged event from the
// transport and dispatches it to exactly one handler, synchronously, in
// arrival order. Malformed events are logged and dropped; nothing here may
// interrupt the stream.
func (e *Engine) HandleEvent(kind string, data []byte) {
	switch kind {
	case model.EventPacket:
		var p model.PacketObserved
		if err := json.Unmarshal(data, &p); err != nil {
			e.dropMalformed(kind, err)
			return
		}
		if err := p.Validate(); err != nil {
			e.dropMalformed(kind, err)
			return
		}
		metrics.EventsTotal.WithLabelValues(kind).Inc()
		e.RecordPacket(p)

	case model.EventVerdict:
		var c model.ClassificationReceived
		if err := json.Unmarshal(data, &c); err != nil {
			e.dropMalformed(kind, err)
			return
		}
		v, err := c.Verdict()
		if err != nil {
			e.dropMalformed(kind, err)
			return
		}
		metrics.EventsTotal.WithLabelValues(kind).Inc()
		e.ApplyVerdict(v)

	case model.EventSyslog:
		var l model.LogEmitted
		if err := json.Unmarshal(data, &l); err != nil {
			e.dropMalformed(kind, err)
			return
		}
		if err := l.Validate(); err != nil {
			e.dropMalformed(kind, err)
			return
		}
		metrics.EventsTotal.WithLabelValues(kind).Inc()
		e.RecordLog(l)

	default:
		e.dropMalformed(kind, nil)
	}
}

func (e *Engine) dropMalformed(kind string, err error) {
	metrics.MalformedEventsTotal.Inc()
	if err != nil {
		log.Printf("Dropping malformed '%s' event: %v", kind, err)
	} else {
		log.Printf("Dropping event with unknown kind '%s'", kind)
	}
}

func (e *Engine) notifyUpdate() {
	if e.onUpdate != nil {
		e.onUpdate()
	}
}
