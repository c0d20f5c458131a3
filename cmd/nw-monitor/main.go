package main

import (
	"Go2NetWatch/internal/api"
	"Go2NetWatch/internal/config"
	"Go2NetWatch/internal/engine"
	"Go2NetWatch/internal/model"
	"Go2NetWatch/internal/notification"
	"Go2NetWatch/internal/transport"
	"Go2NetWatch/internal/ws"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
)

func main() {
	log.Println("Starting nw-monitor...")

	// 1. Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize the reconciliation engine and the websocket hub
	eng := engine.New(cfg.Monitor)
	hub := ws.NewHub()
	gate := &ws.Gate{}
	go hub.Run()

	// 3. Optional alert digester (email summaries of triggered alerts)
	var digester *notification.Digester
	if cfg.Digest.Enabled {
		notifier := notification.NewEmailNotifier(cfg.SMTP)
		digester, err = notification.NewDigester(cfg.Digest, notifier)
		if err != nil {
			log.Fatalf("Failed to create alert digester: %v", err)
		}
		digester.Start()
		eng.SetAlertHook(func(a model.AlertRecord) {
			digester.Observe(a)
		})
		log.Println("Alert digester started.")
	}

	// 4. Push a fresh snapshot to connected clients after every applied
	// event, unless the display is paused. Ingestion is never paused.
	eng.SetUpdateHook(func() {
		if gate.Paused() {
			return
		}
		frame, err := json.Marshal(eng.Snapshot())
		if err != nil {
			log.Printf("Failed to encode snapshot: %v", err)
			return
		}
		hub.Broadcast(frame)
	})

	// 5. Subscribe to the event stream
	sub, err := transport.NewSubscriber(cfg.Transport)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	if err := sub.Start(eng.HandleEvent); err != nil {
		log.Fatalf("Subscriber failed to start: %v", err)
	}
	log.Printf("Subscribed to event stream at %s", cfg.Transport.NATSURL)

	// 6. Start HTTP server (REST API + websocket endpoint)
	server := &http.Server{
		Addr:    cfg.Monitor.ListenAddr,
		Handler: api.NewRouter(eng, gate, hub),
	}

	go func() {
		log.Printf("Monitor server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v", server.Addr, err)
		}
	}()

	// 7. Wait for a shutdown signal for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutdown signal received, stopping monitor...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if digester != nil {
		digester.Stop()
	}
	hub.Stop()
	log.Println("Shutdown complete.")
}
