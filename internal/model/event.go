package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Event kinds as they appear on the wire. The transport uses them as the
// subject suffix, so the consumer can dispatch on the subject alone.
const (
	EventPacket  = "packet"
	EventVerdict = "verdict"
	EventSyslog  = "syslog"
)

// DefaultPacketSize is substituted when a packet event carries no usable
// length, so the bandwidth accumulation never sees a non-number.
const DefaultPacketSize = 1024

// FlexInt decodes a JSON field that producers send either as a number or as
// a numeric string. Unparsable input leaves Valid false instead of failing
// the whole event.
type FlexInt struct {
	Value int64
	Valid bool
}

// NewFlexInt returns a valid FlexInt holding v.
func NewFlexInt(v int64) FlexInt {
	return FlexInt{Value: v, Valid: true}
}

// UnmarshalJSON accepts numbers, numeric strings, and null. It never
// returns an error: a malformed length must not drop the packet event.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		f.Value = v
		f.Valid = true
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		f.Value = int64(v)
		f.Valid = true
	}
	return nil
}

// MarshalJSON emits the held value as a number, or null when unset.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// PacketObserved is the wire shape of one observed packet.
type PacketObserved struct {
	PacketID        string   `json:"packet_id,omitempty"`
	Src             string   `json:"src"`
	Dst             string   `json:"dst"`
	Protocol        string   `json:"protocol"`
	Length          FlexInt  `json:"length"`
	DestinationPort *int     `json:"destination_port,omitempty"`
	Timestamp       *float64 `json:"timestamp,omitempty"`
}

// Validate checks the required fields of the event shape.
func (p *PacketObserved) Validate() error {
	if p.Src == "" || p.Dst == "" {
		return fmt.Errorf("packet event missing src or dst")
	}
	if p.Protocol == "" {
		return fmt.Errorf("packet event missing protocol")
	}
	return nil
}

// SizeBytes returns the normalized packet length: the decoded value when it
// is a usable non-negative integer, DefaultPacketSize otherwise.
func (p *PacketObserved) SizeBytes() int64 {
	if p.Length.Valid && p.Length.Value >= 0 {
		return p.Length.Value
	}
	return DefaultPacketSize
}

// ClassificationReceived is the wire shape of one classification result
// from the detection backend.
type ClassificationReceived struct {
	Status          string   `json:"status,omitempty"`
	Prediction      *int     `json:"prediction,omitempty"`
	Confidence      *float64 `json:"confidence,omitempty"`
	PacketID        string   `json:"packet_id,omitempty"`
	DestinationPort *int     `json:"destination_port,omitempty"`
	Src             string   `json:"src,omitempty"`
}

// Verdict converts the wire event into a ClassificationVerdict. The status
// field wins when present; otherwise the numeric prediction is mapped the
// way the detection backend encodes it (0 benign, 1 malicious, any other
// class suspicious). An event carrying neither is malformed.
func (c *ClassificationReceived) Verdict() (ClassificationVerdict, error) {
	var v ClassificationVerdict

	switch Status(strings.ToLower(c.Status)) {
	case StatusNormal, StatusSuspicious, StatusMalicious:
		v.Status = Status(strings.ToLower(c.Status))
	default:
		if c.Prediction == nil {
			return v, fmt.Errorf("classification event missing status and prediction")
		}
		switch *c.Prediction {
		case 0:
			v.Status = StatusNormal
		case 1:
			v.Status = StatusMalicious
		default:
			v.Status = StatusSuspicious
		}
	}

	if c.Prediction != nil {
		v.PredictionLabel = strconv.Itoa(*c.Prediction)
	}
	if c.Confidence != nil {
		conf := *c.Confidence
		if conf < 0 {
			conf = 0
		} else if conf > 1 {
			conf = 1
		}
		v.Confidence = &conf
	}
	v.CorrelationKey = c.PacketID
	v.Source = c.Src
	if c.DestinationPort != nil {
		v.DestinationPort = *c.DestinationPort
		v.HasPort = true
	}
	return v, nil
}

// LogEmitted is the wire shape of one free-text system log line.
type LogEmitted struct {
	Level     string   `json:"level"`
	Message   string   `json:"message"`
	Timestamp *float64 `json:"timestamp,omitempty"`
}

// Validate checks the required fields of the event shape.
func (l *LogEmitted) Validate() error {
	if l.Message == "" {
		return fmt.Errorf("log event missing message")
	}
	return nil
}

// ParseLogLevel normalizes a wire level string. Unknown levels degrade to
// INFO rather than dropping the line.
func ParseLogLevel(s string) LogLevel {
	switch LogLevel(strings.ToUpper(s)) {
	case LevelInfo, LevelWarning, LevelError, LevelDebug:
		return LogLevel(strings.ToUpper(s))
	default:
		return LevelInfo
	}
}

// EpochTime converts an optional epoch-seconds wire timestamp (possibly
// fractional) into a time.Time, defaulting to now when absent.
func EpochTime(ts *float64) time.Time {
	if ts == nil {
		return time.Now()
	}
	sec, frac := int64(*ts), *ts-float64(int64(*ts))
	return time.Unix(sec, int64(frac*float64(time.Second)))
}
