package savefile

import (
	"os"

	"github.com/google/gopacket"
)

// Handle is a capture-file handle: it owns the open file, dispatches it to
// the right format reader via Open, and hands dissected packets out
// through gopacket's PacketSource. This is the "higher-level capture
// handle lifecycle" SPEC_FULL.md names as an external collaborator.
type Handle struct {
	file         *os.File
	packetSource *gopacket.PacketSource
}

// OpenFile opens path and dispatches it through Open.
func OpenFile(path string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	src, err := Open(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &Handle{
		file:         f,
		packetSource: gopacket.NewPacketSource(src, src.LinkType()),
	}, nil
}

// NextPacket returns the next dissected packet, or io.EOF at end of file.
func (h *Handle) NextPacket() (gopacket.Packet, error) {
	return h.packetSource.NextPacket()
}

// Packets returns a channel of dissected packets, closed at end of file.
func (h *Handle) Packets() <-chan gopacket.Packet {
	return h.packetSource.Packets()
}

// Close releases the underlying file.
func (h *Handle) Close() error {
	return h.file.Close()
}
