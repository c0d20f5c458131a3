package main

import (
	"Go2NetWatch/internal/config"
	"Go2NetWatch/internal/model"
	"Go2NetWatch/internal/transport"
	"Go2NetWatch/pkg/pcap"
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

func main() {
	rate := flag.Int("rate", 100, "Replay rate in packets per second (0 for unthrottled).")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: nw-replay [-rate N] <path_to_pcap_file>")
		os.Exit(1)
	}
	pcapFilePath := flag.Arg(0)

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

	// 3. Open the capture file
	reader, err := pcap.NewReader(pcapFilePath)
	if err != nil {
		log.Fatalf("Failed to open pcap file: %v", err)
	}
	defer reader.Close()
	log.Printf("Replaying packets from '%s'...", pcapFilePath)

	var interval time.Duration
	if *rate > 0 {
		interval = time.Second / time.Duration(*rate)
	}

	// 4. Read packets and publish them as observed-packet events
	events := make(chan *model.PacketObserved, 256)
	go reader.ReadEvents(events)

	published := 0
	for ev := range events {
		if err := pub.PublishPacket(ev); err != nil {
			log.Printf("Failed to publish packet: %v", err)
			continue
		}
		published++
		if published%1000 == 0 {
			log.Printf("%d packets published...", published)
		}
		if interval > 0 {
			time.Sleep(interval)
		}
	}

	log.Printf("Finished replaying %d packets.", published)
}
