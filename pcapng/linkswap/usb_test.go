package linkswap

import (
	"bytes"
	"testing"
)

func TestApply_NotSwappedLeavesDataAlone(t *testing.T) {
	data := make([]byte, linuxUSBHeaderLen)
	for i := range data {
		data[i] = byte(i)
	}
	want := append([]byte(nil), data...)

	Apply(DLTUSBLinux, false, data)
	if !bytes.Equal(data, want) {
		t.Fatalf("Apply with swapped=false modified data")
	}
}

func TestApply_UnrelatedLinkTypeLeavesDataAlone(t *testing.T) {
	data := make([]byte, linuxUSBHeaderLen)
	for i := range data {
		data[i] = byte(i)
	}
	want := append([]byte(nil), data...)

	Apply(1, true, data) // DLT_EN10MB, not a USB link type
	if !bytes.Equal(data, want) {
		t.Fatalf("Apply on an unrelated link type modified data")
	}
}

func TestApply_TooShortLeavesDataAlone(t *testing.T) {
	data := make([]byte, linuxUSBHeaderLen-1)
	want := append([]byte(nil), data...)

	Apply(DLTUSBLinux, true, data)
	if !bytes.Equal(data, want) {
		t.Fatalf("Apply on a too-short buffer modified data")
	}
}

func TestApply_SwapsLinuxUSBHeader(t *testing.T) {
	data := make([]byte, linuxUSBHeaderLen)
	for i := range data {
		data[i] = byte(i)
	}

	Apply(DLTUSBLinux, true, data)

	// The id field (bytes 0-7) should be byte-reversed.
	for i, j := 0, 7; i < j; i, j = i+1, j-1 {
		if data[i] != byte(j) || data[j] != byte(i) {
			t.Fatalf("id field not swapped: % x", data[0:8])
		}
	}
	// bytes 16-23 (unaffected fields) must be untouched.
	for i := 16; i < 24; i++ {
		if data[i] != byte(i) {
			t.Fatalf("byte %d = %d, want untouched value %d", i, data[i], i)
		}
	}
}

func TestApply_SwapsMMappedExtraFields(t *testing.T) {
	data := make([]byte, linuxUSBHeaderLen+linuxUSBMMappedExtraLen)
	for i := range data {
		data[i] = byte(i)
	}

	Apply(DLTUSBLinuxMMapped, true, data)

	// bytes 48-51 should be byte-reversed.
	a, b, c, d := data[48], data[49], data[50], data[51]
	if a != 51 || b != 50 || c != 49 || d != 48 {
		t.Fatalf("mmapped extra field not swapped: % x", data[48:52])
	}
}
