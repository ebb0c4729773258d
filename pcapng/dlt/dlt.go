// Package dlt bridges this module's numeric link-type field (as stored in
// an Interface Description Block, per the tcpdump.org link-layer header
// type registry) and gopacket/layers.LinkType, which uses the same
// numbering. It exists so that consumers wiring a pcapng.Reader into
// gopacket (see the savefile package) never need to hand-cast between the
// two.
package dlt

import "github.com/google/gopacket/layers"

// ToLinkType converts a pcap-ng link type into gopacket's LinkType.
func ToLinkType(linkType uint16) layers.LinkType {
	return layers.LinkType(linkType)
}

// FromLinkType converts a gopacket LinkType into a pcap-ng link type, for
// callers constructing a pcapng.Writer from a gopacket-native value.
func FromLinkType(lt layers.LinkType) uint16 {
	return uint16(lt)
}
