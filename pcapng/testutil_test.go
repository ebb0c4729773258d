package pcapng

import "encoding/binary"

// buildBlock frames body as a complete block: an 8-byte header, the body
// itself, and a 4-byte trailer repeating the total length.
func buildBlock(order binary.ByteOrder, blockType uint32, body []byte) []byte {
	total := uint32(8 + len(body) + 4)
	buf := make([]byte, total)
	order.PutUint32(buf[0:4], blockType)
	order.PutUint32(buf[4:8], total)
	copy(buf[8:8+len(body)], body)
	order.PutUint32(buf[8+len(body):], total)
	return buf
}

func buildSHB(order binary.ByteOrder) []byte {
	body := make([]byte, 16)
	order.PutUint32(body[0:4], byteOrderMagic)
	order.PutUint16(body[4:6], 1) // major
	order.PutUint16(body[6:8], 0) // minor
	order.PutUint64(body[8:16], 0xFFFFFFFFFFFFFFFF)
	return buildBlock(order, blockTypeSHB, body)
}

func buildIDB(order binary.ByteOrder, linkType uint16, snapLen uint32, opts []byte) []byte {
	body := make([]byte, 8+len(opts))
	order.PutUint16(body[0:2], linkType)
	order.PutUint16(body[2:4], 0) // reserved
	order.PutUint32(body[4:8], snapLen)
	copy(body[8:], opts)
	return buildBlock(order, blockTypeIDB, body)
}

func buildOption(order binary.ByteOrder, code uint16, value []byte) []byte {
	padded := int(roundUp4(uint32(len(value))))
	buf := make([]byte, 4+padded)
	order.PutUint16(buf[0:2], code)
	order.PutUint16(buf[2:4], uint16(len(value)))
	copy(buf[4:4+len(value)], value)
	return buf
}

func buildEPB(order binary.ByteOrder, ifid uint32, tsHigh, tsLow, caplen, length uint32, data []byte, opts []byte) []byte {
	pad := roundUp4(uint32(len(data))) - uint32(len(data))
	body := make([]byte, 20+len(data)+int(pad)+len(opts))
	order.PutUint32(body[0:4], ifid)
	order.PutUint32(body[4:8], tsHigh)
	order.PutUint32(body[8:12], tsLow)
	order.PutUint32(body[12:16], caplen)
	order.PutUint32(body[16:20], length)
	copy(body[20:20+len(data)], data)
	copy(body[20+len(data)+int(pad):], opts)
	return buildBlock(order, blockTypeEPB, body)
}

func buildSPB(order binary.ByteOrder, length uint32, data []byte) []byte {
	pad := roundUp4(uint32(len(data))) - uint32(len(data))
	body := make([]byte, 4+len(data)+int(pad))
	order.PutUint32(body[0:4], length)
	copy(body[4:4+len(data)], data)
	return buildBlock(order, blockTypeSPB, body)
}

func buildPB(order binary.ByteOrder, ifid uint16, tsHigh, tsLow, caplen, length uint32, data []byte) []byte {
	pad := roundUp4(uint32(len(data))) - uint32(len(data))
	body := make([]byte, 20+len(data)+int(pad))
	order.PutUint16(body[0:2], ifid)
	order.PutUint16(body[2:4], 0) // drops_count
	order.PutUint32(body[4:8], tsHigh)
	order.PutUint32(body[8:12], tsLow)
	order.PutUint32(body[12:16], caplen)
	order.PutUint32(body[16:20], length)
	copy(body[20:20+len(data)], data)
	return buildBlock(order, blockTypePB, body)
}
