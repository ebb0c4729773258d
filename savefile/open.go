// Package savefile dispatches a byte stream to the right capture-format
// reader: gzip-transparent, then classic pcap or pcap-ng depending on
// which magic the stream starts with. This is the "surrounding
// functionality" SPEC_FULL.md describes as an external collaborator of
// the pcapng package's core codec, not part of it.
package savefile

import (
	"bufio"
	"compress/gzip"
	"io"

	"github.com/golang/glog"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/timpalpant/go-pcapng/pcapng"
)

const (
	magicGzip1 byte = 0x1f
	magicGzip2 byte = 0x8b
)

// PacketDataSource is the interface a dispatched reader implements,
// whichever underlying capture format it decoded.
type PacketDataSource interface {
	gopacket.PacketDataSource
	LinkType() layers.LinkType
}

// Open sniffs r for a gzip wrapper, then for a classic pcap or pcap-ng
// magic, and returns a PacketDataSource for whichever format it finds.
func Open(r io.Reader) (PacketDataSource, error) {
	br := bufio.NewReader(r)

	if peek, err := br.Peek(2); err == nil && peek[0] == magicGzip1 && peek[1] == magicGzip2 {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		br = bufio.NewReader(gz)
	}

	ngReader, err := pcapng.NewReader(br)
	if err == nil {
		glog.V(1).Info("savefile: detected pcap-ng format")
		return &ngSource{r: ngReader}, nil
	}
	if err != pcapng.ErrNotPcapNG {
		return nil, err
	}

	classicReader, err := pcapgo.NewReader(br)
	if err != nil {
		return nil, err
	}
	glog.V(1).Info("savefile: detected classic pcap format")
	return classicReader, nil
}
