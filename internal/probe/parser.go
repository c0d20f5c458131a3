// Package probe captures live traffic and publishes observed-packet
// events onto the stream consumed by the monitor. Feature extraction and
// classification belong to the detection backend, not here: the probe only
// summarizes what it saw.
package probe

import (
	"Go2NetWatch/internal/model"
	"fmt"
	"strings"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/uuid"
)

// Summarize decodes a raw packet and builds the wire event for it. Each
// event gets a fresh correlation id so the detection backend's verdict can
// be matched back to this packet.
func Summarize(data []byte, captured time.Time) (*model.PacketObserved, error) {
	packet := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.Default)

	l := packet.Layer(layers.LayerTypeIPv4)
	if l == nil {
		return nil, fmt.Errorf("not an IPv4 packet")
	}
	ip := l.(*layers.IPv4)

	var protocol string
	var dstPort int
	if l := packet.Layer(layers.LayerTypeTCP); l != nil {
		protocol = "TCP"
		dstPort = int(l.(*layers.TCP).DstPort)
	} else if l := packet.Layer(layers.LayerTypeUDP); l != nil {
		protocol = "UDP"
		dstPort = int(l.(*layers.UDP).DstPort)
	} else {
		return nil, fmt.Errorf("not a TCP or UDP packet")
	}

	ts := float64(captured.UnixNano()) / float64(time.Second)
	ev := &model.PacketObserved{
		PacketID:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		Src:             ip.SrcIP.String(),
		Dst:             ip.DstIP.String(),
		Protocol:        protocol,
		Length:          model.NewFlexInt(int64(len(data))),
		DestinationPort: &dstPort,
		Timestamp:       &ts,
	}
	return ev, nil
}
