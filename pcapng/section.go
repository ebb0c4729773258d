package pcapng

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// section tracks the state established by a Section Header Block and its
// first Interface Description Block. A new SHB destroys this state and
// requires a fresh IDB before any more packets are valid.
type section struct {
	order        binary.ByteOrder
	versionMajor uint16
	versionMinor uint16
	ifCount      uint32

	haveIDB  bool
	tsResol  uint64
	tsOffset uint64
	tsScale  uint64
	linkType uint16
	snapLen  uint32
}

func (s *section) resetForNewSection() {
	s.ifCount = 0
	s.haveIDB = false
	s.tsResol = 1000000
	s.tsOffset = 0
	s.tsScale = 1
	s.linkType = 0
	s.snapLen = 0
}

// tsScaleFor computes the scale factor mapping sub-second ticks to
// microseconds, per the data model's definition of tsscale.
func tsScaleFor(tsResol uint64) uint64 {
	if tsResol > 1000000 {
		return tsResol / 1000000
	}
	return 1000000 / tsResol
}

// shbPrefix is the fixed portion of a Section Header Block's body.
type shbPrefix struct {
	magic        uint32
	versionMajor uint16
	versionMinor uint16
	// sectionLength is read but ignored, per §4.5.
	sectionLength int64
}

func decodeSHBPrefix(order binary.ByteOrder, body []byte) (shbPrefix, []byte, error) {
	c := &cursor{data: body, order: order}
	magic, err := c.takeUint32()
	if err != nil {
		return shbPrefix{}, nil, err
	}
	major, err := c.takeUint16()
	if err != nil {
		return shbPrefix{}, nil, err
	}
	minor, err := c.takeUint16()
	if err != nil {
		return shbPrefix{}, nil, err
	}
	lenBytes, err := c.take(8)
	if err != nil {
		return shbPrefix{}, nil, err
	}
	return shbPrefix{
		magic:         magic,
		versionMajor:  major,
		versionMinor:  minor,
		sectionLength: int64(order.Uint64(lenBytes)),
	}, c.data, nil
}

// acceptSHB validates a (non-bootstrap) Section Header Block against the
// section's already-established byte order, per §4.5, and resets section
// state for the new section on success.
func (s *section) acceptSHB(body []byte) error {
	prefix, _, err := decodeSHBPrefix(s.order, body)
	if err != nil {
		return err
	}

	switch prefix.magic {
	case byteOrderMagic:
		// Re-decoded with s.order and still forward: order hasn't moved.
	case swappedByteOrderMagic:
		// Re-decoded with s.order but comes out swapped: the writer's
		// actual byte order differs from the section's established one.
		return ErrByteOrderChanged
	default:
		return ErrBadMagic
	}

	if prefix.versionMajor != 1 {
		return errors.Wrapf(ErrUnsupportedVersion, "major version %d", prefix.versionMajor)
	}

	s.versionMajor = prefix.versionMajor
	s.versionMinor = prefix.versionMinor
	s.resetForNewSection()
	return nil
}

// idbOptions is the result of walking an Interface Description Block's
// options, per §4.4.
type idbOptions struct {
	tsResol  uint64
	tsOffset uint64
}

// decodeIDBBody parses an Interface Description Block's body prefix and
// options, per §4.4 and the IDB body layout in §6. It does not compare the
// result against existing section state; callers do that.
func decodeIDBBody(order binary.ByteOrder, body []byte) (linkType uint16, snapLen uint32, opts idbOptions, err error) {
	c := &cursor{data: body, order: order}

	linkType, err = c.takeUint16()
	if err != nil {
		return 0, 0, idbOptions{}, err
	}
	if _, err = c.take(2); err != nil { // reserved
		return 0, 0, idbOptions{}, err
	}
	snapLen, err = c.takeUint32()
	if err != nil {
		return 0, 0, idbOptions{}, err
	}

	opts = idbOptions{tsResol: 1000000, tsOffset: 0}
	var sawName, sawResol, sawOffset bool

optionLoop:
	for {
		opt, ok, err := c.takeOption()
		if err != nil {
			return 0, 0, idbOptions{}, err
		}
		if !ok {
			break
		}

		switch opt.code {
		case optEndOfOpt:
			if len(opt.value) != 0 {
				return 0, 0, idbOptions{}, errors.Wrap(ErrMalformedOption, "end-of-options with nonzero length")
			}
			break optionLoop
		case optIfName:
			if sawName {
				return 0, 0, idbOptions{}, errors.Wrap(ErrDuplicateOption, "if_name")
			}
			sawName = true
		case optIfTSResol:
			if sawResol {
				return 0, 0, idbOptions{}, errors.Wrap(ErrDuplicateOption, "if_tsresol")
			}
			if len(opt.value) != 1 {
				return 0, 0, idbOptions{}, errors.Wrap(ErrMalformedOption, "if_tsresol")
			}
			sawResol = true

			v := opt.value[0]
			if v&0x80 != 0 {
				opts.tsResol = 1 << (v & 0x7F)
			} else {
				var r uint64 = 1
				for i := 0; i < int(v); i++ {
					r *= 10
				}
				opts.tsResol = r
			}
			if opts.tsResol == 0 {
				return 0, 0, idbOptions{}, ErrResolutionTooHigh
			}
		case optIfTSOffset:
			if sawOffset {
				return 0, 0, idbOptions{}, errors.Wrap(ErrDuplicateOption, "if_tsoffset")
			}
			if len(opt.value) != 8 {
				return 0, 0, idbOptions{}, errors.Wrap(ErrMalformedOption, "if_tsoffset")
			}
			sawOffset = true
			opts.tsOffset = order.Uint64(opt.value)
		default:
			// recognized-but-unused, or entirely unrecognized: ignore.
		}
	}

	return linkType, snapLen, opts, nil
}

// acceptIDB validates a decoded IDB against existing section state (if any
// IDB has already been accepted this section) and installs it otherwise,
// per §4.4 and §4.7's IDB dispatch case.
func (s *section) acceptIDB(linkType uint16, snapLen uint32, opts idbOptions) error {
	if s.haveIDB {
		if opts.tsResol != s.tsResol || opts.tsOffset != s.tsOffset {
			return errors.Wrap(ErrInterfaceMismatch, "timestamp resolution or offset differs")
		}
		if linkType != s.linkType || snapLen != s.snapLen {
			return errors.Wrap(ErrInterfaceMismatch, "link type or snapshot length differs")
		}
	} else {
		s.linkType = linkType
		s.snapLen = snapLen
		s.tsResol = opts.tsResol
		s.tsOffset = opts.tsOffset
		s.haveIDB = true
	}

	s.tsScale = tsScaleFor(s.tsResol)
	s.ifCount++
	return nil
}
