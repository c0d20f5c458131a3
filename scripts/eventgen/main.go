package main

import (
	"Go2NetWatch/internal/config"
	"Go2NetWatch/internal/model"
	"Go2NetWatch/internal/transport"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

var protocols = []string{"TCP", "UDP", "ICMP"}

var logMessages = []string{
	"Capture thread heartbeat OK",
	"Classifier model reloaded",
	"Flow table pruned",
	"Retransmission burst observed",
	"Queue depth above watermark",
}

var logLevels = []string{"INFO", "INFO", "INFO", "WARNING", "ERROR"}

// eventgen publishes a synthetic interleaved stream of packet, verdict
// and syslog events to NATS, for exercising nw-monitor without a live
// probe or classifier.
func main() {
	count := flag.Int("c", 500, "Number of packet events to generate")
	rate := flag.Int("rate", 20, "Events per second (0 for unthrottled)")
	flag.Parse()

	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pub, err := transport.NewPublisher(cfg.Transport)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer pub.Close()

	var interval time.Duration
	if *rate > 0 {
		interval = time.Second / time.Duration(*rate)
	}

	log.Printf("Generating %d packet events (plus verdicts and logs)...", *count)

	for i := 0; i < *count; i++ {
		ev := randomPacket()
		if err := pub.PublishPacket(ev); err != nil {
			log.Printf("Failed to publish packet: %v", err)
		}

		// Roughly a third of packets get a classification verdict.
		if rand.Intn(3) == 0 {
			if err := pub.PublishVerdict(randomVerdict(ev)); err != nil {
				log.Printf("Failed to publish verdict: %v", err)
			}
		}

		// Occasional system log line.
		if rand.Intn(10) == 0 {
			n := rand.Intn(len(logMessages))
			if err := pub.PublishLog(&model.LogEmitted{
				Level:   logLevels[n],
				Message: logMessages[n],
			}); err != nil {
				log.Printf("Failed to publish log: %v", err)
			}
		}

		if (i+1)%100 == 0 {
			log.Printf("%d packet events published...", i+1)
		}
		if interval > 0 {
			time.Sleep(interval)
		}
	}

	log.Println("Done.")
}

func randomPacket() *model.PacketObserved {
	port := rand.Intn(65535-1024) + 1024
	ts := float64(time.Now().UnixNano()) / float64(time.Second)
	return &model.PacketObserved{
		PacketID:        uuid.NewString(),
		Src:             randomIP(),
		Dst:             randomIP(),
		Protocol:        protocols[rand.Intn(len(protocols))],
		Length:          model.FlexInt{Value: int64(rand.Intn(1400) + 50), Valid: true},
		DestinationPort: &port,
		Timestamp:       &ts,
	}
}

func randomVerdict(pkt *model.PacketObserved) *model.ClassificationReceived {
	// Mostly normal traffic with a small malicious and suspicious tail.
	prediction := 0
	switch rand.Intn(10) {
	case 0:
		prediction = 1
	case 1:
		prediction = 2
	}
	confidence := 0.5 + rand.Float64()/2
	return &model.ClassificationReceived{
		Prediction:      &prediction,
		Confidence:      &confidence,
		PacketID:        pkt.PacketID,
		DestinationPort: pkt.DestinationPort,
		Src:             pkt.Src,
	}
}

func randomIP() string {
	return fmt.Sprintf("10.%d.%d.%d", rand.Intn(256), rand.Intn(256), rand.Intn(256))
}
