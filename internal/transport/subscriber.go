package transport

import (
	"Go2NetWatch/internal/config"
	"log"
	"strings"

	"github.com/nats-io/nats.go"
)

// EventHandler processes one tagged event delivered by the transport. The
// kind is the subject suffix; the data is the raw JSON payload.
type EventHandler func(kind string, data []byte)

// Subscriber consumes the event stream from NATS. It uses a single
// wildcard subscription so the client delivers callbacks sequentially and
// events are handled strictly in arrival order.
type Subscriber struct {
	nc     *nats.Conn
	sub    *nats.Subscription
	prefix string
}

// NewSubscriber connects to the NATS server. Reconnection and backoff are
// owned here, not by the engine: a disconnect only pauses delivery and
// never clears accumulated state.
func NewSubscriber(cfg config.TransportConfig) (*Subscriber, error) {
	nc, err := nats.Connect(cfg.NATSURL, connectOptions()...)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.NATSURL)
	return &Subscriber{nc: nc, prefix: cfg.SubjectPrefix}, nil
}

// Start subscribes to all event subjects under the configured prefix and
// dispatches each message to the handler.
func (s *Subscriber) Start(handler EventHandler) error {
	sub, err := s.nc.Subscribe(s.prefix+".>", func(msg *nats.Msg) {
		handler(kindFromSubject(s.prefix, msg.Subject), msg.Data)
	})
	if err != nil {
		return err
	}
	s.sub = sub
	log.Printf("Subscribed to '%s.>'. Waiting for events...", s.prefix)
	return nil
}

// Close unsubscribes and closes the NATS connection.
func (s *Subscriber) Close() {
	if s.sub != nil {
		s.sub.Unsubscribe()
	}
	if s.nc != nil {
		s.nc.Close()
		log.Println("NATS connection closed.")
	}
}

// kindFromSubject extracts the event kind from a full subject, e.g.
// "gnw.events.packet" -> "packet" under the prefix "gnw.events".
func kindFromSubject(prefix, subject string) string {
	return strings.TrimPrefix(subject, prefix+".")
}

// connectOptions enables indefinite reconnection with logging. The stream
// consumer survives broker restarts without operator intervention.
func connectOptions() []nats.Option {
	return []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
	}
}
