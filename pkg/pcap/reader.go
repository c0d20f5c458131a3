package pcap

import (
	"Go2NetWatch/internal/model"
	"Go2NetWatch/internal/probe"
	"log"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

// Reader turns a capture file into the same observed-packet events the
// live probe would have published, so recorded traffic can be replayed
// through the monitor.
type Reader struct {
	handle *pcap.Handle
}

// NewReader opens a pcap file for reading.
func NewReader(filePath string) (*Reader, error) {
	handle, err := pcap.OpenOffline(filePath)
	if err != nil {
		return nil, err
	}
	return &Reader{handle: handle}, nil
}

// Close closes the pcap handle.
func (r *Reader) Close() {
	r.handle.Close()
}

// ReadEvents parses every packet in the file and sends the resulting
// events to the channel, closing it when the file is exhausted.
// Unsupported packet types are logged and skipped.
func (r *Reader) ReadEvents(out chan<- *model.PacketObserved) {
	defer close(out)

	packetSource := gopacket.NewPacketSource(r.handle, r.handle.LinkType())
	for packet := range packetSource.Packets() {
		ev, err := probe.Summarize(packet.Data(), packet.Metadata().Timestamp)
		if err != nil {
			log.Printf("Skipping packet: %v", err)
			continue
		}
		out <- ev
	}
}
