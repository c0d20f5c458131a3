// Package notification delivers periodic consolidated alert digests by
// email, so operators hear about high-severity activity without watching
// the dashboard.
package notification

import (
	"Go2NetWatch/internal/config"
	"Go2NetWatch/internal/model"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gomarkdown/markdown"
)

// maxPending bounds the digest buffer; beyond it the oldest entries are
// dropped, mirroring how every other collection in the system is bounded.
const maxPending = 500

// Digester buffers alerts from the engine's alert hook and flushes a
// consolidated digest to the notifier on a fixed interval (and once more
// on shutdown).
type Digester struct {
	notifier    model.Notifier
	minSeverity model.Severity
	interval    time.Duration

	mu      sync.Mutex
	pending []model.AlertRecord

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewDigester creates a Digester from config. The notifier is typically an
// EmailNotifier but tests inject fakes.
func NewDigester(cfg config.DigestConfig, notifier model.Notifier) (*Digester, error) {
	interval, err := time.ParseDuration(cfg.Interval)
	if err != nil {
		return nil, fmt.Errorf("invalid digest interval: %w", err)
	}
	minSeverity := model.SeverityHigh
	if cfg.MinSeverity == string(model.SeverityMedium) {
		minSeverity = model.SeverityMedium
	}
	return &Digester{
		notifier:    notifier,
		minSeverity: minSeverity,
		interval:    interval,
		stopChan:    make(chan struct{}),
	}, nil
}

// Observe buffers one alert for the next digest. Safe to call from the
// engine's delivery goroutine.
func (d *Digester) Observe(a model.AlertRecord) {
	if d.minSeverity == model.SeverityHigh && a.Severity != model.SeverityHigh {
		return
	}
	d.mu.Lock()
	d.pending = append(d.pending, a)
	if len(d.pending) > maxPending {
		d.pending = d.pending[len(d.pending)-maxPending:]
	}
	d.mu.Unlock()
}

// Start begins the periodic flushing loop.
func (d *Digester) Start() {
	log.Printf("Alert digester started (interval %s, min severity %s)", d.interval, d.minSeverity)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				d.Flush()
			case <-d.stopChan:
				return
			}
		}
	}()
}

// Stop terminates the loop and flushes anything still pending.
func (d *Digester) Stop() {
	log.Println("Stopping alert digester...")
	close(d.stopChan)
	d.wg.Wait()
	d.Flush()
}

// Flush sends one digest covering everything observed since the previous
// flush. With nothing pending it does nothing.
func (d *Digester) Flush() {
	d.mu.Lock()
	batch := d.pending
	d.pending = nil
	d.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	subject := fmt.Sprintf("Go2NetWatch Alert Digest (%d triggered)", len(batch))
	body := string(markdown.ToHTML([]byte(digestMarkdown(batch)), nil, nil))

	if err := d.notifier.Send(subject, body); err != nil {
		log.Printf("ERROR: Failed to send alert digest: %v", err)
		return
	}
	log.Printf("Alert digest with %d alert(s) sent.", len(batch))
}

// digestMarkdown composes the digest body as markdown, one line per alert.
func digestMarkdown(batch []model.AlertRecord) string {
	var b strings.Builder
	b.WriteString("# Go2NetWatch Alert Digest\n\n")
	fmt.Fprintf(&b, "%d alert(s) were raised during the last period:\n\n", len(batch))
	for _, a := range batch {
		fmt.Fprintf(&b, "- **%s** %s — %s", a.Severity, a.CreatedAt.Format("15:04:05"), a.Message)
		if a.Confidence != nil {
			fmt.Fprintf(&b, " (confidence %.2f)", *a.Confidence)
		}
		b.WriteString("\n")
	}
	return b.String()
}
