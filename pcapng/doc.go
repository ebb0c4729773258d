// Package pcapng reads and writes the pcap-ng ("next generation" packet
// capture) file format: a sequence of self-describing, length-prefixed,
// byte-order-sensitive blocks recording captured packets together with
// the interface metadata needed to interpret them.
//
// A Reader decodes one section at a time, tracking byte order, interface
// description, and timestamp resolution as section state; a Writer emits
// a single-section, single-interface file, always in little-endian byte
// order. Packet data
// returned by Reader.ReadPacket is borrowed from the reader's internal
// buffer and is only valid until the next call.
package pcapng
