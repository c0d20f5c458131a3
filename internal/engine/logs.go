package engine

import (
	"Go2NetWatch/internal/model"

	"github.com/google/uuid"
)

// RecordLog appends one system log line to the bounded log sink. Entries
// are kept most-recent-first and never mutated or correlated; the sink
// exists so operational context survives without unbounded growth.
func (e *Engine) RecordLog(l model.LogEmitted) {
	entry := model.SystemLogEntry{
		ID:        uuid.NewString(),
		Timestamp: model.EpochTime(l.Timestamp),
		Level:     model.ParseLogLevel(l.Level),
		Message:   l.Message,
	}

	e.mu.Lock()
	e.logs = append(e.logs, model.SystemLogEntry{})
	copy(e.logs[1:], e.logs)
	e.logs[0] = entry
	if len(e.logs) > e.logWindow {
		e.logs = e.logs[:e.logWindow]
	}
	e.mu.Unlock()

	e.notifyUpdate()
}
