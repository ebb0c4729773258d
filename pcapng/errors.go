package pcapng

import "github.com/pkg/errors"

// Error kinds, one discriminated sentinel per taxonomy entry. Call sites
// that need to attach context wrap one of these with errors.Wrapf so that
// errors.Cause still recovers the original kind.
var (
	// ErrTruncated indicates a short read mid-block or mid-field.
	ErrTruncated = errors.New("pcapng: truncated read")
	// ErrBlockTooLarge indicates a block's declared length exceeds the
	// maximum this codec will allocate for.
	ErrBlockTooLarge = errors.New("pcapng: block exceeds maximum size")
	// ErrBlockTooShort indicates a block's declared length is smaller than
	// a bare header+trailer.
	ErrBlockTooShort = errors.New("pcapng: block shorter than header and trailer")
	// ErrBadMagic indicates a Section Header Block whose byte_order_magic
	// field matches neither the forward nor the swapped magic.
	ErrBadMagic = errors.New("pcapng: bad byte-order magic")
	// ErrByteOrderChanged indicates a second Section Header Block within the
	// same stream whose byte order differs from the section's established
	// order.
	ErrByteOrderChanged = errors.New("pcapng: byte order changed mid-stream")
	// ErrUnsupportedVersion indicates a Section Header Block whose major
	// version is not 1.
	ErrUnsupportedVersion = errors.New("pcapng: unsupported major version")
	// ErrNoInterface indicates the stream ended (or a section closed)
	// before any Interface Description Block was seen.
	ErrNoInterface = errors.New("pcapng: no interface description block")
	// ErrPacketBeforeIDB indicates a packet block appeared before the
	// stream's first Interface Description Block, during NewReader's
	// bootstrap. A packet block after a later Section Header Block but
	// before its IDB is reported as ErrUnknownInterface instead.
	ErrPacketBeforeIDB = errors.New("pcapng: packet block before any interface description block")
	// ErrUnknownInterface indicates a packet block's interface_id is not
	// less than the section's interface count.
	ErrUnknownInterface = errors.New("pcapng: packet references unknown interface")
	// ErrInterfaceMismatch indicates a later Interface Description Block
	// contradicts the section's first (link type, snapshot length,
	// timestamp resolution, or timestamp offset).
	ErrInterfaceMismatch = errors.New("pcapng: interface description block contradicts section state")
	// ErrDuplicateOption indicates an option code that may appear at most
	// once appeared more than once in a single block.
	ErrDuplicateOption = errors.New("pcapng: option appears more than once")
	// ErrMalformedOption indicates an option whose length does not match
	// what its code requires.
	ErrMalformedOption = errors.New("pcapng: malformed option")
	// ErrResolutionTooHigh indicates an if_tsresol value that overflows the
	// resolution computation to zero.
	ErrResolutionTooHigh = errors.New("pcapng: timestamp resolution too high")
	// ErrNotPcapNG indicates the stream does not begin with a pcap-ng
	// Section Header Block; this is not a read failure, it tells a
	// dispatcher to try a different format.
	ErrNotPcapNG = errors.New("pcapng: not a pcap-ng stream")
)
