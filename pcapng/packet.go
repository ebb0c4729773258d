package pcapng

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-pcapng/pcapng/linkswap"
)

// Packet is a decoded capture record. Data is a view into the Reader's
// internal buffer and is only valid until the next call to ReadPacket or
// NextBlock on the same Reader; Comment is a copy and stays valid.
type Packet struct {
	InterfaceID    uint32
	TimestampSec   uint64
	TimestampUsec  uint64
	CapturedLength uint32
	Length         uint32
	Data           []byte
	Comment        string
}

// RawBlock is an undecoded block returned by NextBlock, for a caller that
// wants to re-emit pcap-ng blocks rather than dissect their contents. Bytes
// is the block exactly as it appeared on the wire (header, body, trailer),
// in its original byte order; it is only valid until the next call to
// ReadPacket or NextBlock on the same Reader.
type RawBlock struct {
	Type        uint32
	TotalLength uint32
	Bytes       []byte
}

// ReadPacket reads blocks until it can return a packet, updating section
// state for Section Header and Interface Description Blocks along the
// way and skipping anything else. It returns io.EOF at clean end of
// stream.
func (r *Reader) ReadPacket() (Packet, error) {
	for {
		bt, body, err := r.readBlock()
		if err != nil {
			return Packet{}, err
		}

		switch bt {
		case blockTypeEPB, blockTypeSPB, blockTypePB:
			ifid, t, caplen, length, rest, err := decodePacketPrefix(r.sec.order, bt, body)
			if err != nil {
				return Packet{}, err
			}
			if bt == blockTypeSPB && caplen > r.sec.snapLen {
				caplen = r.sec.snapLen
			}
			return r.finalize(ifid, t, caplen, length, rest)
		case blockTypeIDB:
			linkType, snapLen, opts, err := decodeIDBBody(r.sec.order, body)
			if err != nil {
				return Packet{}, err
			}
			if err := r.sec.acceptIDB(linkType, snapLen, opts); err != nil {
				return Packet{}, err
			}
		case blockTypeSHB:
			if err := r.sec.acceptSHB(body); err != nil {
				return Packet{}, err
			}
		default:
			// NRB, ISB, or an unrecognized type: skip.
		}
	}
}

// NextBlock reads and returns the next block verbatim, still honoring the
// byte-order check, the section/IDB state updates, and the
// packet-before-IDB and unknown-interface rules, but without decoding
// packet data, padding, or the comment option the way ReadPacket does.
func (r *Reader) NextBlock() (RawBlock, error) {
	bt, body, totalLength, err := r.readBlockImpl()
	if err != nil {
		return RawBlock{}, err
	}

	switch bt {
	case blockTypeIDB:
		linkType, snapLen, opts, err := decodeIDBBody(r.sec.order, body)
		if err != nil {
			return RawBlock{}, err
		}
		if err := r.sec.acceptIDB(linkType, snapLen, opts); err != nil {
			return RawBlock{}, err
		}
	case blockTypeSHB:
		if err := r.sec.acceptSHB(body); err != nil {
			return RawBlock{}, err
		}
	case blockTypeEPB, blockTypeSPB, blockTypePB:
		// Reads from the same per-type prefix decode ReadPacket uses, so
		// the legacy PB case resolves its interface id from the PB layout
		// here too rather than guessing at an EPB-shaped one.
		ifid, _, _, _, _, err := decodePacketPrefix(r.sec.order, bt, body)
		if err != nil {
			return RawBlock{}, err
		}
		if ifid >= r.sec.ifCount {
			return RawBlock{}, ErrUnknownInterface
		}
	}

	need := 8 + len(r.buf)
	if cap(r.rawOut) < need {
		r.rawOut = make([]byte, need)
	} else {
		r.rawOut = r.rawOut[:need]
	}
	copy(r.rawOut[0:8], r.rawHdr[:])
	copy(r.rawOut[8:], r.buf)

	return RawBlock{Type: bt, TotalLength: totalLength, Bytes: r.rawOut}, nil
}

// decodePacketPrefix reads the fixed prefix fields of an EPB, SPB, or PB
// body and returns the remaining bytes (packet data, its padding and, for
// EPB/PB, options) for the caller to continue parsing. Both ReadPacket and NextBlock
// call this for every packet block type, so the legacy PB path always
// resolves its timestamp from the PB layout, never an EPB one.
func decodePacketPrefix(order binary.ByteOrder, blockType uint32, body []byte) (ifid uint32, t uint64, caplen, length uint32, rest []byte, err error) {
	c := &cursor{data: body, order: order}

	switch blockType {
	case blockTypeEPB:
		if ifid, err = c.takeUint32(); err != nil {
			return
		}
		var tsHigh, tsLow uint32
		if tsHigh, err = c.takeUint32(); err != nil {
			return
		}
		if tsLow, err = c.takeUint32(); err != nil {
			return
		}
		if caplen, err = c.takeUint32(); err != nil {
			return
		}
		if length, err = c.takeUint32(); err != nil {
			return
		}
		t = uint64(tsHigh)<<32 | uint64(tsLow)

	case blockTypeSPB:
		if length, err = c.takeUint32(); err != nil {
			return
		}
		caplen = length

	case blockTypePB:
		var ifid16 uint16
		if ifid16, err = c.takeUint16(); err != nil {
			return
		}
		if _, err = c.take(2); err != nil { // drops_count, ignored
			return
		}
		var tsHigh, tsLow uint32
		if tsHigh, err = c.takeUint32(); err != nil {
			return
		}
		if tsLow, err = c.takeUint32(); err != nil {
			return
		}
		if caplen, err = c.takeUint32(); err != nil {
			return
		}
		if length, err = c.takeUint32(); err != nil {
			return
		}
		t = uint64(tsHigh)<<32 | uint64(tsLow)
		ifid = uint32(ifid16)
	}

	rest = c.data
	return
}

// finalize computes the packet's timestamp, extracts its data and optional
// comment, and applies any pseudo-header byte swap the link type needs.
func (r *Reader) finalize(ifid uint32, t uint64, caplen, length uint32, rest []byte) (Packet, error) {
	if ifid >= r.sec.ifCount {
		return Packet{}, ErrUnknownInterface
	}

	if r.sec.tsResol == 0 {
		r.sec.tsResol = 1000000
	}
	secPart := t/r.sec.tsResol + r.sec.tsOffset
	frac := t % r.sec.tsResol
	var usec uint64
	if r.sec.tsResol > 1000000 {
		usec = frac / r.sec.tsScale
	} else {
		usec = frac * r.sec.tsScale
	}

	c := &cursor{data: rest, order: r.sec.order}
	data, err := c.take(int(caplen))
	if err != nil {
		return Packet{}, errors.Wrap(ErrTruncated, "pcapng: packet data")
	}

	pad := (4 - caplen%4) % 4
	if pad > 0 {
		if _, err := c.take(int(pad)); err != nil {
			return Packet{}, errors.Wrap(ErrTruncated, "pcapng: packet padding")
		}
	}

	var comment string
	if opt, ok, oerr := c.takeOption(); oerr == nil && ok && opt.code == optComment && len(opt.value) > 0 {
		v := opt.value
		if len(v) > maxCommentLength {
			v = v[:maxCommentLength]
		}
		comment = string(v)
	}

	linkswap.Apply(r.sec.linkType, r.hostSwapped, data)

	return Packet{
		InterfaceID:    ifid,
		TimestampSec:   secPart,
		TimestampUsec:  usec,
		CapturedLength: caplen,
		Length:         length,
		Data:           data,
		Comment:        comment,
	}, nil
}
