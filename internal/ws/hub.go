// Package ws pushes dashboard snapshots to connected browsers over
// WebSocket. It is pure presentation: everything it sends is a read-only
// snapshot produced by the engine.
package ws

import (
	"Go2NetWatch/internal/metrics"
	"log"
)

// Hub maintains the set of connected dashboard clients and fans broadcast
// frames out to them. A client that cannot keep up is disconnected rather
// than allowed to block the hub.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a new Hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes client lifecycle and broadcast frames until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			metrics.WebsocketClients.Set(float64(len(h.clients)))
			log.Printf("Dashboard client connected (%d total)", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.WebsocketClients.Set(float64(len(h.clients)))
				log.Printf("Dashboard client disconnected (%d total)", len(h.clients))
			}

		case frame := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- frame:
				default:
					// Slow consumer; drop it so the stream keeps moving.
					delete(h.clients, client)
					close(client.send)
					metrics.WebsocketClients.Set(float64(len(h.clients)))
				}
			}

		case <-h.done:
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			metrics.WebsocketClients.Set(0)
			return
		}
	}
}

// Stop disconnects all clients and terminates the run loop.
func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast queues one frame for all connected clients. If the hub's queue
// is full the frame is dropped; a newer snapshot is always right behind.
func (h *Hub) Broadcast(frame []byte) {
	select {
	case h.broadcast <- frame:
	default:
	}
}
