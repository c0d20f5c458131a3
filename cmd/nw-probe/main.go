package main

import (
	"Go2NetWatch/internal/config"
	"Go2NetWatch/internal/probe"
	"Go2NetWatch/internal/transport"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	iface := flag.String("iface", "", "Interface to capture packets from (required).")
	flag.Parse()

	if *iface == "" {
		log.Println("Error: -iface flag is required.")
		flag.Usage()
		os.Exit(1)
	}

	// 1. Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize NATS publisher
	pub, err := transport.NewPublisher(cfg.Transport)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer pub.Close()

	// 3. Open device for live capture
	sniffer, err := probe.NewSniffer(*iface, pub)
	if err != nil {
		log.Fatalf("Error opening device %s: %v", *iface, err)
	}
	defer sniffer.Close()

	log.Printf("Starting nw-probe on interface: %s", *iface)
	go sniffer.Run()

	// 4. Wait for a shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
}
