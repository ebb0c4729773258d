package pcapng

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// cursor is a borrowed view over a block's body, between its header and
// its trailer. All reads advance the window and return sub-slices of the
// original borrow; nothing here ever copies. The cursor becomes invalid
// the moment the reader's buffer is reused by the next block read.
type cursor struct {
	data      []byte
	order     binary.ByteOrder
	blockType uint32
}

func (c *cursor) remaining() int {
	return len(c.data)
}

// take advances the cursor by n bytes and returns the prior n-byte window.
func (c *cursor) take(n int) ([]byte, error) {
	if n < 0 || n > len(c.data) {
		return nil, errors.Wrapf(ErrTruncated, "need %d bytes, have %d", n, len(c.data))
	}
	b := c.data[:n]
	c.data = c.data[n:]
	return b, nil
}

func (c *cursor) takeUint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(b), nil
}

func (c *cursor) takeUint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

func (c *cursor) takeUint64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return c.order.Uint64(b), nil
}

// option is one decoded TLV record from an options list.
type option struct {
	code  uint16
	value []byte
}

// takeOption reads one option record: a 2-byte code, a 2-byte length, and
// round_up(length, 4) bytes of value. It returns ok=false with a nil error
// when the cursor is exhausted (end of options by exhaustion, not by an
// explicit end-of-options record).
func (c *cursor) takeOption() (opt option, ok bool, err error) {
	if c.remaining() == 0 {
		return option{}, false, nil
	}

	code, err := c.takeUint16()
	if err != nil {
		return option{}, false, err
	}
	length, err := c.takeUint16()
	if err != nil {
		return option{}, false, err
	}

	padded := int(roundUp4(uint32(length)))
	raw, err := c.take(padded)
	if err != nil {
		return option{}, false, errors.Wrapf(ErrTruncated, "option %d value", code)
	}

	return option{code: code, value: raw[:length]}, true, nil
}
