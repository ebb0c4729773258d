package pcapng

// Block type constants, per the recognized set in the format's data model.
// SHB's value is a palindrome in its 4 bytes so that a byte-swapped read
// still matches it; the section's actual endianness is revealed instead by
// the byte_order_magic field inside the block body.
const (
	blockTypeSHB uint32 = 0x0A0D0D0A
	blockTypeIDB uint32 = 0x00000001
	blockTypePB  uint32 = 0x00000002
	blockTypeSPB uint32 = 0x00000003
	blockTypeNRB uint32 = 0x00000004
	blockTypeISB uint32 = 0x00000005
	blockTypeEPB uint32 = 0x00000006
)

const (
	byteOrderMagic uint32 = 0x1A2B3C4D
	// swappedByteOrderMagic is byteOrderMagic with its bytes reversed; seeing
	// this value instead means the section is in the opposite endianness.
	swappedByteOrderMagic uint32 = 0x4D3C2B1A
)

const (
	minBlockLength = 12                // header + trailer, empty body
	maxBlockLength = 16 * 1024 * 1024  // 16 MiB ceiling
	minSHBLength   = 28                // header + SHB prefix(16) + trailer
)

// Option codes recognized by this codec. All other codes are read and
// discarded.
const (
	optEndOfOpt  uint16 = 0
	optComment   uint16 = 1
	optIfName    uint16 = 2
	optIfTSResol uint16 = 9
	optIfTSOffset uint16 = 14
)

// maxCommentLength bounds the comment copied out of a PCAPNG_OPT_COMMENT
// option, mirroring the fixed-size buffer the original C implementation
// copies into (see DESIGN.md, "Open Questions resolved" #2).
const maxCommentLength = 255

func roundUp4(n uint32) uint32 {
	return (n + 3) &^ 3
}
