package probe

import (
	"Go2NetWatch/internal/model"
	"Go2NetWatch/internal/transport"
	"fmt"
	"log"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

const (
	snapshotLen int32 = 1600
	promiscuous       = true
)

// Sniffer captures packets from a live interface and publishes one event
// per IPv4 TCP/UDP packet.
type Sniffer struct {
	handle *pcap.Handle
	pub    *transport.Publisher
	iface  string
}

// NewSniffer opens the interface for live capture.
func NewSniffer(iface string, pub *transport.Publisher) (*Sniffer, error) {
	handle, err := pcap.OpenLive(iface, snapshotLen, promiscuous, pcap.BlockForever)
	if err != nil {
		return nil, fmt.Errorf("failed to open device %s: %w", iface, err)
	}
	return &Sniffer{handle: handle, pub: pub, iface: iface}, nil
}

// Run reads packets until the handle is closed, publishing a summary event
// for each. Non-IP packets are skipped silently; publish failures are
// logged and the capture continues.
func (s *Sniffer) Run() {
	s.publishLog(model.LevelInfo, fmt.Sprintf("packet capture started on %s", s.iface))

	packetSource := gopacket.NewPacketSource(s.handle, s.handle.LinkType())
	published := 0
	for packet := range packetSource.Packets() {
		ev, err := Summarize(packet.Data(), packet.Metadata().Timestamp)
		if err != nil {
			continue
		}
		if err := s.pub.PublishPacket(ev); err != nil {
			log.Printf("Failed to publish packet: %v", err)
			continue
		}
		published++
		if published%1000 == 0 {
			log.Printf("%d packets published...", published)
		}
	}

	s.publishLog(model.LevelInfo, fmt.Sprintf("packet capture stopped on %s", s.iface))
}

// Close terminates the capture; Run returns once the handle drains.
func (s *Sniffer) Close() {
	s.handle.Close()
}

// publishLog emits an operational syslog event onto the stream so the
// dashboard's log sink shows capture lifecycle transitions.
func (s *Sniffer) publishLog(level model.LogLevel, msg string) {
	if err := s.pub.PublishLog(&model.LogEmitted{Level: string(level), Message: msg}); err != nil {
		log.Printf("Failed to publish log event: %v", err)
	}
}
