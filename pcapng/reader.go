package pcapng

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Reader decodes a pcap-ng byte stream one block and one packet at a time.
// It owns one input stream and one growable read buffer; packet data
// returned by ReadPacket is a view into that buffer and is only valid
// until the next call to ReadPacket or NextBlock.
//
// This codec assumes a little-endian host when deciding whether a
// section's byte order matches the host (relevant only to the optional
// per-link-type pseudo-header swap); every other part of decoding is
// fully determined by the section's own established byte order and does
// not depend on the host at all.
type Reader struct {
	r           *bufio.Reader
	sec         section
	hostSwapped bool

	buf    []byte  // reusable block body+trailer buffer
	rawHdr [8]byte // last block's raw header bytes, for NextBlock
	rawOut []byte  // reusable buffer for NextBlock's full raw block output
}

// NewReader probes r for a pcap-ng Section Header Block and, if found,
// reads forward through the bootstrap section until it finds the first
// Interface Description Block, establishing section state. It returns
// ErrNotPcapNG (not a failure) when the stream does not begin with a
// pcap-ng Section Header Block, so a dispatcher can try another format.
func NewReader(r io.Reader) (*Reader, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	peek, err := br.Peek(4)
	if err != nil {
		return nil, ErrNotPcapNG
	}
	// blockTypeSHB's bytes are a palindrome, so either endianness reads the
	// same 4 bytes here; no order has been established yet.
	if binary.LittleEndian.Uint32(peek) != blockTypeSHB {
		return nil, ErrNotPcapNG
	}

	var head12 [12]byte
	if _, err := io.ReadFull(br, head12[:]); err != nil {
		return nil, ErrNotPcapNG
	}

	magicBytes := head12[8:12]
	var order binary.ByteOrder
	switch {
	case binary.LittleEndian.Uint32(magicBytes) == byteOrderMagic:
		order = binary.LittleEndian
	case binary.BigEndian.Uint32(magicBytes) == byteOrderMagic:
		order = binary.BigEndian
	default:
		return nil, ErrNotPcapNG
	}

	totalLength := order.Uint32(head12[4:8])
	if totalLength < minSHBLength {
		return nil, errors.Wrapf(ErrBlockTooShort, "section header block length %d", totalLength)
	}
	if totalLength > maxBlockLength {
		return nil, errors.Wrapf(ErrBlockTooLarge, "section header block length %d", totalLength)
	}
	totalLength = roundUp4(totalLength)

	rest := int(totalLength) - 8
	buf := make([]byte, rest)
	copy(buf, head12[8:12])
	if rest > 4 {
		if _, err := io.ReadFull(br, buf[4:]); err != nil {
			return nil, errors.Wrap(ErrTruncated, "pcapng: read section header block")
		}
	}
	body := buf[:rest-4]

	prefix, _, err := decodeSHBPrefix(order, body)
	if err != nil {
		return nil, err
	}
	if prefix.versionMajor != 1 {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "major version %d", prefix.versionMajor)
	}

	rd := &Reader{
		r: br,
		sec: section{
			order:        order,
			versionMajor: prefix.versionMajor,
			versionMinor: prefix.versionMinor,
		},
		hostSwapped: order == binary.BigEndian,
	}
	rd.sec.resetForNewSection()

	for {
		bt, blockBody, err := rd.readBlock()
		if err == io.EOF {
			return nil, ErrNoInterface
		}
		if err != nil {
			return nil, err
		}

		switch bt {
		case blockTypeIDB:
			linkType, snapLen, opts, err := decodeIDBBody(rd.sec.order, blockBody)
			if err != nil {
				return nil, err
			}
			if err := rd.sec.acceptIDB(linkType, snapLen, opts); err != nil {
				return nil, err
			}
			return rd, nil
		case blockTypeEPB, blockTypeSPB, blockTypePB:
			return nil, ErrPacketBeforeIDB
		case blockTypeSHB:
			if err := rd.sec.acceptSHB(blockBody); err != nil {
				return nil, err
			}
		default:
			// NRB, ISB, or an unrecognized type: skip.
		}
	}
}

// LinkType returns the numeric link type recorded by the section's
// authoritative Interface Description Block.
func (r *Reader) LinkType() uint16 { return r.sec.linkType }

// SnapLen returns the snapshot length recorded by the section's
// authoritative Interface Description Block.
func (r *Reader) SnapLen() uint32 { return r.sec.snapLen }

// readBlockImpl reads one framed block: an 8-byte header, then
// total_length-8 bytes of body+trailer into the reusable buffer. It
// enforces the size bounds and alignment tolerance of the block loader.
// Clean end-of-stream (io.EOF) is only possible here, at the header read.
func (r *Reader) readBlockImpl() (blockType uint32, body []byte, totalLength uint32, err error) {
	n, err := io.ReadFull(r.r, r.rawHdr[:])
	if err != nil {
		if err == io.EOF && n == 0 {
			return 0, nil, 0, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return 0, nil, 0, ErrTruncated
		}
		return 0, nil, 0, errors.Wrap(err, "pcapng: read block header")
	}

	blockType = r.sec.order.Uint32(r.rawHdr[0:4])
	totalLength = r.sec.order.Uint32(r.rawHdr[4:8])

	// A Section Header Block written in the other byte order has a length
	// field that reads as garbage in the section's order, so its magic is
	// checked before the size bounds: the caller sees the byte-order change
	// rather than an oversized block.
	if blockType == blockTypeSHB {
		if magic, perr := r.r.Peek(4); perr == nil && r.sec.order.Uint32(magic) == swappedByteOrderMagic {
			return 0, nil, 0, ErrByteOrderChanged
		}
	}

	if totalLength < minBlockLength {
		return 0, nil, 0, errors.Wrapf(ErrBlockTooShort, "block type %#x length %d", blockType, totalLength)
	}
	if totalLength > maxBlockLength {
		return 0, nil, 0, errors.Wrapf(ErrBlockTooLarge, "block type %#x length %d", blockType, totalLength)
	}
	totalLength = roundUp4(totalLength)

	rest := int(totalLength) - 8
	if cap(r.buf) < rest {
		r.buf = make([]byte, rest)
	} else {
		r.buf = r.buf[:rest]
	}
	if _, err := io.ReadFull(r.r, r.buf); err != nil {
		return 0, nil, 0, errors.Wrap(ErrTruncated, "pcapng: read block body")
	}

	return blockType, r.buf[:rest-4], totalLength, nil
}

func (r *Reader) readBlock() (uint32, []byte, error) {
	bt, body, _, err := r.readBlockImpl()
	return bt, body, err
}
