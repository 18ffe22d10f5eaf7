package oepl

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"
)

func TestCompressPayload(t *testing.T) {
	// a framebuffer-ish payload: long runs compress well
	raw := bytes.Repeat([]byte{0x00, 0xFF}, 2048)

	compressed, err := CompressPayload(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(compressed) >= len(raw) {
		t.Errorf("compressed %d bytes to %d", len(raw), len(compressed))
	}

	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatal(err)
	}
	inflated, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(inflated, raw) {
		t.Error("payload did not survive deflate/inflate")
	}
}
