package model

import (
	"time"
)

// Status is the classification verdict for a packet.
type Status string

const (
	StatusNormal     Status = "normal"
	StatusSuspicious Status = "suspicious"
	StatusMalicious  Status = "malicious"
)

// Qualifying reports whether this status should raise an alert.
func (s Status) Qualifying() bool {
	return s == StatusSuspicious || s == StatusMalicious
}

// Severity is the urgency tier of an alert, derived solely from the
// verdict status: malicious maps to high, suspicious to medium.
type Severity string

const (
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// LogLevel is the level of a system log line.
type LogLevel string

const (
	LevelInfo    LogLevel = "INFO"
	LevelWarning LogLevel = "WARNING"
	LevelError   LogLevel = "ERROR"
	LevelDebug   LogLevel = "DEBUG"
)

// PacketRecord is one observed packet in the traffic ledger. Status,
// Confidence and PredictionLabel are only ever set by a correlated
// classification verdict, never by the packet event itself.
type PacketRecord struct {
	ID              string    `json:"id"`
	CorrelationKey  string    `json:"packet_id,omitempty"`
	Source          string    `json:"src"`
	Destination     string    `json:"dst"`
	Protocol        string    `json:"protocol"`
	SizeBytes       int64     `json:"length"`
	ReceivedAt      time.Time `json:"received_at"`
	Status          Status    `json:"status"`
	Confidence      *float64  `json:"confidence,omitempty"`
	PredictionLabel string    `json:"prediction,omitempty"`
	DestinationPort int       `json:"destination_port,omitempty"`
}

// ClassificationVerdict is a transient event consumed by the engine. It is
// never retained: it mutates a matching PacketRecord, may spawn an
// AlertRecord, and updates the counters, then is discarded.
type ClassificationVerdict struct {
	CorrelationKey  string
	Status          Status
	Confidence      *float64
	PredictionLabel string
	Source          string
	DestinationPort int
	HasPort         bool
}

// AlertRecord is a security event derived from a qualifying verdict.
type AlertRecord struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Message        string    `json:"message"`
	Severity       Severity  `json:"severity"`
	Confidence     *float64  `json:"confidence,omitempty"`
	CorrelationKey string    `json:"packet_id,omitempty"`
}

// SystemLogEntry is one free-text log line from the pipeline.
type SystemLogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
}

// Counters holds running totals accumulated from the full event stream.
// They are deliberately independent of the bounded ledgers, so they stay
// correct after entries are evicted. All fields are monotonically
// non-decreasing except EstimatedActiveConnections, which is a bounded
// random-walk estimate, not a true connection count.
type Counters struct {
	TotalPackets               uint64 `json:"total_packets"`
	SuspiciousCount            uint64 `json:"suspicious_count"`
	MaliciousCount             uint64 `json:"malicious_count"`
	AlertCount                 uint64 `json:"alert_count"`
	EstimatedActiveConnections int    `json:"estimated_active_connections"`
	BandwidthBytes             uint64 `json:"bandwidth_bytes"`
}

// Snapshot is a read-only copy of the engine state handed to the
// presentation layer. The slices are deep copies; callers may mutate them
// freely without affecting the engine.
type Snapshot struct {
	Packets     []PacketRecord   `json:"packets"`
	Alerts      []AlertRecord    `json:"alerts"`
	Logs        []SystemLogEntry `json:"logs"`
	Counters    Counters         `json:"counters"`
	GeneratedAt time.Time        `json:"generated_at"`
}
