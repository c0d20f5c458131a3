package transport

import (
	"Go2NetWatch/internal/config"
	"Go2NetWatch/internal/model"
	"log"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
)

// Publisher emits events onto the stream consumed by the monitor. Used by
// the probe, the replayer and the synthetic generator.
type Publisher struct {
	nc     *nats.Conn
	prefix string
}

// NewPublisher connects to the NATS server.
func NewPublisher(cfg config.TransportConfig) (*Publisher, error) {
	nc, err := nats.Connect(cfg.NATSURL, connectOptions()...)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.NATSURL)
	return &Publisher{nc: nc, prefix: cfg.SubjectPrefix}, nil
}

// PublishPacket emits one observed-packet event.
func (p *Publisher) PublishPacket(ev *model.PacketObserved) error {
	return p.publish(model.EventPacket, ev)
}

// PublishVerdict emits one classification event.
func (p *Publisher) PublishVerdict(ev *model.ClassificationReceived) error {
	return p.publish(model.EventVerdict, ev)
}

// PublishLog emits one system log event.
func (p *Publisher) PublishLog(ev *model.LogEmitted) error {
	return p.publish(model.EventSyslog, ev)
}

func (p *Publisher) publish(kind string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.nc.Publish(p.prefix+"."+kind, data)
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		log.Println("NATS connection drained and closed.")
	}
}
