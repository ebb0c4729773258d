// Package linkswap applies the per-link-type pseudo-header byte swap a
// pcap-ng reader must perform when a section's byte order differs from the
// host's: link types whose pseudo-header carries multi-byte fields
// recorded in the *capturing* host's order, not the section's, need those
// fields swapped back after the section-level decode is done.
//
// Only Linux's USB capture link types need this; every other link type's
// pseudo-header (if it has one at all) is either absent or already
// byte-order-neutral at this layer, so Apply is a no-op for them.
package linkswap

// Link-layer header type numbers, from the tcpdump.org link-layer header
// type registry.
const (
	DLTUSBLinux        uint16 = 189
	DLTUSBLinuxMMapped uint16 = 220
)

const (
	linuxUSBHeaderLen       = 48
	linuxUSBMMappedExtraLen = 16
)

// Apply byte-swaps a captured packet's pseudo-header in place if its link
// type needs it and swapped is true. It is a no-op otherwise.
func Apply(linkType uint16, swapped bool, data []byte) {
	if !swapped {
		return
	}

	switch linkType {
	case DLTUSBLinux:
		swapLinuxUSBHeader(data, false)
	case DLTUSBLinuxMMapped:
		swapLinuxUSBHeader(data, true)
	}
}

// swapLinuxUSBHeader swaps the multi-byte integer fields of the Linux USB
// capture pseudo-header the kernel prepends to each captured URB: an
// 8-byte id, a 2-byte bus id, a second-and-microsecond timestamp (4 bytes
// each), a 4-byte status, and 4-byte URB/data lengths. The mmapped variant
// appends four more 4-byte fields (interval, start frame, transfer flags,
// descriptor count) that get swapped too.
func swapLinuxUSBHeader(data []byte, mmapped bool) {
	need := linuxUSBHeaderLen
	if mmapped {
		need += linuxUSBMMappedExtraLen
	}
	if len(data) < need {
		return
	}

	swap8(data[0:8])   // id
	swap2(data[8:10])  // bus_id
	swap4(data[24:28]) // ts_sec
	swap4(data[28:32]) // ts_usec
	swap4(data[32:36]) // status
	swap4(data[36:40]) // urb_len
	swap4(data[40:44]) // data_len

	if mmapped {
		swap4(data[48:52]) // interval
		swap4(data[52:56]) // start_frame
		swap4(data[56:60]) // xfer_flags
		swap4(data[60:64]) // ndesc
	}
}

func swap2(b []byte) { b[0], b[1] = b[1], b[0] }

func swap4(b []byte) { b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0] }

func swap8(b []byte) {
	for i, j := 0, 7; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
