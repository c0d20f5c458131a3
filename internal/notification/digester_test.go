package notification

import (
	"Go2NetWatch/internal/config"
	"Go2NetWatch/internal/model"
	"strings"
	"testing"
	"time"
)

type fakeNotifier struct {
	subjects []string
	bodies   []string
}

func (f *fakeNotifier) Send(subject, body string) error {
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

func TestDigesterFlushesObservedAlerts(t *testing.T) {
	fake := &fakeNotifier{}
	d, err := NewDigester(config.DigestConfig{Interval: "1m", MinSeverity: "high"}, fake)
	if err != nil {
		t.Fatalf("NewDigester failed: %v", err)
	}

	conf := 0.92
	d.Observe(model.AlertRecord{
		ID:         "a1",
		CreatedAt:  time.Now(),
		Message:    "Malicious traffic detected from 10.0.0.1 targeting port 443",
		Severity:   model.SeverityHigh,
		Confidence: &conf,
	})
	// Medium severity is filtered under the default threshold.
	d.Observe(model.AlertRecord{ID: "a2", Severity: model.SeverityMedium, Message: "suspicious"})

	d.Flush()

	if len(fake.subjects) != 1 {
		t.Fatalf("Expected one digest, got %d", len(fake.subjects))
	}
	if !strings.Contains(fake.subjects[0], "1 triggered") {
		t.Errorf("Subject should count one alert: %q", fake.subjects[0])
	}
	if !strings.Contains(fake.bodies[0], "Malicious traffic detected from 10.0.0.1") {
		t.Errorf("Body missing alert message: %q", fake.bodies[0])
	}
	if strings.Contains(fake.bodies[0], "suspicious") {
		t.Errorf("Medium alert should have been filtered: %q", fake.bodies[0])
	}

	// A second flush with nothing pending sends nothing.
	d.Flush()
	if len(fake.subjects) != 1 {
		t.Errorf("Empty flush should not send, got %d digests", len(fake.subjects))
	}
}

func TestDigesterMediumThresholdIncludesBoth(t *testing.T) {
	fake := &fakeNotifier{}
	d, err := NewDigester(config.DigestConfig{Interval: "1m", MinSeverity: "medium"}, fake)
	if err != nil {
		t.Fatalf("NewDigester failed: %v", err)
	}
	d.Observe(model.AlertRecord{ID: "a1", Severity: model.SeverityMedium, Message: "m1"})
	d.Observe(model.AlertRecord{ID: "a2", Severity: model.SeverityHigh, Message: "m2"})
	d.Flush()

	if len(fake.bodies) != 1 || !strings.Contains(fake.bodies[0], "m1") || !strings.Contains(fake.bodies[0], "m2") {
		t.Errorf("Both severities should be included: %v", fake.bodies)
	}
}

func TestDigesterRejectsBadInterval(t *testing.T) {
	if _, err := NewDigester(config.DigestConfig{Interval: "soon"}, &fakeNotifier{}); err == nil {
		t.Error("Expected an error for an unparsable interval")
	}
}
