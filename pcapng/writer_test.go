package pcapng

import (
	"bytes"
	"testing"
)

func TestWriter_OpenWritesSHBAndIDB(t *testing.T) {
	var buf bytes.Buffer
	w, err := Open(&buf, 1, 65535)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !w.open {
		t.Fatal("Open left writer not open")
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewReader(written SHB+IDB): %v", err)
	}
	if r.LinkType() != 1 || r.SnapLen() != 65535 {
		t.Fatalf("LinkType/SnapLen = (%d, %d), want (1, 65535)", r.LinkType(), r.SnapLen())
	}
}

func TestWriter_WritePacketRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := Open(&buf, 1, 65535)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	data := []byte{1, 2, 3, 4, 5}
	if err := w.WritePacket(1500000, uint32(len(data)), uint32(len(data)), data, "a note"); err != nil {
		t.Fatalf("WritePacket: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	pkt, err := r.ReadPacket()
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if pkt.TimestampSec != 1 || pkt.TimestampUsec != 500000 {
		t.Errorf("timestamp = (%d, %d), want (1, 500000)", pkt.TimestampSec, pkt.TimestampUsec)
	}
	if !bytes.Equal(pkt.Data, data) {
		t.Errorf("data = % x, want % x", pkt.Data, data)
	}
	if pkt.Comment != "a note" {
		t.Errorf("comment = %q, want %q", pkt.Comment, "a note")
	}
}

func TestWriter_WritePacketUnopened(t *testing.T) {
	w := &Writer{}
	if err := w.WritePacket(0, 0, 0, nil, ""); err == nil {
		t.Fatal("WritePacket on unopened writer should fail")
	}
}

func TestWriter_CaplenExceedsData(t *testing.T) {
	var buf bytes.Buffer
	w, err := Open(&buf, 1, 65535)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := w.WritePacket(0, 10, 10, []byte{1, 2, 3}, ""); err == nil {
		t.Fatal("WritePacket with caplen exceeding data length should fail")
	}
}

func TestWriter_OddLengthPacketIsPadded(t *testing.T) {
	var buf bytes.Buffer
	w, err := Open(&buf, 1, 65535)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	data := []byte{1, 2, 3} // not a multiple of 4
	if err := w.WritePacket(0, uint32(len(data)), uint32(len(data)), data, ""); err != nil {
		t.Fatalf("WritePacket: %v", err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	pkt, err := r.ReadPacket()
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if !bytes.Equal(pkt.Data, data) {
		t.Errorf("data = % x, want % x", pkt.Data, data)
	}
}
