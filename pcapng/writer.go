package pcapng

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Writer emits a single-section, single-interface pcap-ng file: one
// Section Header Block, one Interface Description Block, then one
// Enhanced Packet Block per call to WritePacket. It always writes in
// little-endian byte order and never emits an Interface Statistics Block.
type Writer struct {
	w    io.Writer
	buf  []byte
	open bool
}

// order is the byte order this writer always uses. The format permits
// writing in either order; this writer follows the common convention (and
// RajeshGottlieb-go/pcapng's own writer) of always picking one rather than
// trying to detect a "host" order at compile time.
var order = binary.LittleEndian

// Open writes the Section Header Block and Interface Description Block
// preamble for a new file with the given link type and snapshot length,
// and returns a Writer ready to accept packets.
func Open(w io.Writer, linkType uint16, snapLen uint32) (*Writer, error) {
	wr := &Writer{w: w}

	shbBody := make([]byte, 16)
	order.PutUint32(shbBody[0:4], byteOrderMagic)
	order.PutUint16(shbBody[4:6], 1) // major
	order.PutUint16(shbBody[6:8], 0) // minor
	order.PutUint64(shbBody[8:16], 0xFFFFFFFFFFFFFFFF)
	if err := wr.writeBlock(blockTypeSHB, shbBody); err != nil {
		return nil, err
	}

	idbBody := make([]byte, 8)
	order.PutUint16(idbBody[0:2], linkType)
	order.PutUint16(idbBody[2:4], 0) // reserved
	order.PutUint32(idbBody[4:8], snapLen)
	if err := wr.writeBlock(blockTypeIDB, idbBody); err != nil {
		return nil, err
	}

	wr.open = true
	return wr, nil
}

// WritePacket emits an Enhanced Packet Block for one captured packet.
// timestampUsec is the number of microseconds since the Unix epoch; caplen and
// length are caller-supplied and not checked against any snapshot length
// (SPEC_FULL.md Open Questions: caller responsibility). comment, if
// non-empty, is written as a PCAPNG_OPT_COMMENT option.
func (w *Writer) WritePacket(timestampUsec uint64, caplen, length uint32, data []byte, comment string) error {
	if !w.open {
		return errors.New("pcapng: write to unopened writer")
	}
	if uint32(len(data)) < caplen {
		return errors.Errorf("pcapng: caplen %d exceeds supplied data length %d", caplen, len(data))
	}

	pad := (4 - caplen%4) % 4
	bodyLen := 20 + int(caplen) + int(pad)

	var commentBytes []byte
	if comment != "" {
		commentBytes = []byte(comment)
		commentPad := (4 - len(commentBytes)%4) % 4
		bodyLen += 4 + len(commentBytes) + commentPad // option header + value + pad
		bodyLen += 4                                  // end-of-options record
	}

	body := make([]byte, bodyLen)
	order.PutUint32(body[0:4], 0) // interface_id
	order.PutUint32(body[4:8], uint32(timestampUsec>>32))
	order.PutUint32(body[8:12], uint32(timestampUsec))
	order.PutUint32(body[12:16], caplen)
	order.PutUint32(body[16:20], length)
	copy(body[20:20+caplen], data[:caplen])

	off := 20 + int(caplen) + int(pad)
	if comment != "" {
		order.PutUint16(body[off:off+2], optComment)
		order.PutUint16(body[off+2:off+4], uint16(len(commentBytes)))
		copy(body[off+4:off+4+len(commentBytes)], commentBytes)
		off += 4 + len(commentBytes) + (4-len(commentBytes)%4)%4
		order.PutUint16(body[off:off+2], optEndOfOpt)
		order.PutUint16(body[off+2:off+4], 0)
	}

	return w.writeBlock(blockTypeEPB, body)
}

// Close flushes the underlying writer if it has a Flush method (such as
// *bufio.Writer) and releases it if it implements io.Closer. No Interface
// Statistics Block is emitted.
func (w *Writer) Close() error {
	if f, ok := w.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return errors.Wrap(err, "pcapng: flush")
		}
	}
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (w *Writer) writeBlock(blockType uint32, body []byte) error {
	totalLength := uint32(8 + len(body) + 4)

	if cap(w.buf) < int(totalLength) {
		w.buf = make([]byte, totalLength)
	} else {
		w.buf = w.buf[:totalLength]
	}

	order.PutUint32(w.buf[0:4], blockType)
	order.PutUint32(w.buf[4:8], totalLength)
	copy(w.buf[8:8+len(body)], body)
	order.PutUint32(w.buf[8+len(body):], totalLength)

	_, err := w.w.Write(w.buf)
	return errors.Wrap(err, "pcapng: write block")
}
