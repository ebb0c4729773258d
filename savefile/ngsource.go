package savefile

import (
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/timpalpant/go-pcapng/pcapng"
	"github.com/timpalpant/go-pcapng/pcapng/dlt"
)

// ngSource adapts a pcapng.Reader to gopacket.PacketDataSource, so the
// pcap-ng branch of Open can be handed to gopacket.NewPacketSource exactly
// like the classic-pcap branch.
type ngSource struct {
	r *pcapng.Reader
}

func (s *ngSource) LinkType() layers.LinkType {
	return dlt.ToLinkType(s.r.LinkType())
}

func (s *ngSource) ReadPacketData() (data []byte, ci gopacket.CaptureInfo, err error) {
	pkt, err := s.r.ReadPacket()
	if err != nil {
		return nil, gopacket.CaptureInfo{}, err
	}

	ci = gopacket.CaptureInfo{
		Timestamp:      time.Unix(int64(pkt.TimestampSec), int64(pkt.TimestampUsec)*1000),
		CaptureLength:  int(pkt.CapturedLength),
		Length:         int(pkt.Length),
		InterfaceIndex: int(pkt.InterfaceID),
	}
	return pkt.Data, ci, nil
}
