package savefile

import (
	"bytes"
	"testing"

	"github.com/timpalpant/go-pcapng/pcapng"
)

func TestOpen_DispatchesPcapNG(t *testing.T) {
	var buf bytes.Buffer
	w, err := pcapng.Open(&buf, 1, 65535)
	if err != nil {
		t.Fatalf("pcapng.Open: %v", err)
	}
	data := []byte{1, 2, 3, 4}
	if err := w.WritePacket(0, uint32(len(data)), uint32(len(data)), data, ""); err != nil {
		t.Fatalf("WritePacket: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	src, err := Open(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	got, ci, err := src.ReadPacketData()
	if err != nil {
		t.Fatalf("ReadPacketData: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("data = % x, want % x", got, data)
	}
	if ci.CaptureLength != len(data) || ci.Length != len(data) {
		t.Errorf("CaptureInfo lengths = (%d, %d), want (%d, %d)", ci.CaptureLength, ci.Length, len(data), len(data))
	}
}

func TestOpen_NotACapture(t *testing.T) {
	if _, err := Open(bytes.NewReader([]byte("not a capture file"))); err == nil {
		t.Fatal("Open on garbage input should fail")
	}
}
