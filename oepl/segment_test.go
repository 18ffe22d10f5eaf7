package oepl

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func patternPayload(n int) []byte {
	payload := make([]byte, n)
	for i := range payload {
		payload[i] = byte(i*7 + i>>8)
	}
	return payload
}

func TestBlockCount(t *testing.T) {
	cases := []struct {
		size, want int
	}{
		{1, 1},
		{4095, 1},
		{4096, 1},
		{4097, 2},
		{8192, 2},
		{5000, 2},
	}
	for _, c := range cases {
		if got := BlockCount(c.size); got != c.want {
			t.Errorf("BlockCount(%d) = %d, want %d", c.size, got, c.want)
		}
	}
}

func TestBlockPartCount(t *testing.T) {
	// A full block is header+4096 = 4100 bytes, 18 parts. A 5000 byte payload
	// leaves 904 bytes for block 1, with the header that is 908 bytes = 4 parts.
	payload := patternPayload(5000)
	if got := BlockPartCount(payload, 0); got != PARTS_PER_BLOCK {
		t.Errorf("parts in block 0 = %d, want %d", got, PARTS_PER_BLOCK)
	}
	if got := BlockPartCount(payload, 1); got != 4 {
		t.Errorf("parts in block 1 = %d, want 4", got)
	}
	if got := BlockPartCount(payload, 2); got != 0 {
		t.Errorf("parts in block 2 = %d, want 0", got)
	}
}

func TestBuildBlockPartLayout(t *testing.T) {
	payload := patternPayload(5000)
	part := BuildBlockPart(payload, 0, 0)

	if len(part) != BLOCK_PART_LEN {
		t.Fatalf("part length = %d, want %d", len(part), BLOCK_PART_LEN)
	}
	if part[1] != 0 || part[2] != 0 {
		t.Errorf("part ids = %d/%d, want 0/0", part[1], part[2])
	}
	if got := Sum8(part[1:]); got != part[0] {
		t.Errorf("part CRC = %#02x, computed %#02x", part[0], got)
	}

	// Part 0 of a full block opens with the block header.
	if got := binary.LittleEndian.Uint16(part[3:5]); got != BLOCK_DATA_SIZE {
		t.Errorf("header length = %d, want %d", got, BLOCK_DATA_SIZE)
	}
	if got, want := binary.LittleEndian.Uint16(part[5:7]), Sum16(payload[:BLOCK_DATA_SIZE]); got != want {
		t.Errorf("header checksum = %#04x, want %#04x", got, want)
	}
	if !bytes.Equal(part[7:], payload[:BLOCK_PART_DATA_SIZE-BLOCK_HEADER_LEN]) {
		t.Error("part 0 data does not match payload start")
	}
}

func TestBuildBlockPartZeroPadding(t *testing.T) {
	payload := patternPayload(5000)
	// Block 1 carries 904 bytes, so part 3 holds unit bytes 690..907 and the
	// remaining 12 data bytes must be zero.
	part := BuildBlockPart(payload, 1, 3)
	used := (BLOCK_HEADER_LEN + 904) - 3*BLOCK_PART_DATA_SIZE
	for i := used; i < BLOCK_PART_DATA_SIZE; i++ {
		if part[3+i] != 0 {
			t.Fatalf("padding byte %d = %#02x, want 0", i, part[3+i])
		}
	}
	if got := Sum8(part[1:]); got != part[0] {
		t.Errorf("part CRC = %#02x, computed %#02x", part[0], got)
	}
}

// reassemble reverses the segmentation: strip CRCs and headers, concatenate
// the data of every part of every block.
func reassemble(t *testing.T, payload []byte) []byte {
	t.Helper()
	var out []byte
	for blockID := 0; blockID < BlockCount(len(payload)); blockID++ {
		var unit []byte
		for partID := 0; partID < BlockPartCount(payload, blockID); partID++ {
			part := BuildBlockPart(payload, blockID, partID)
			if got := Sum8(part[1:]); got != part[0] {
				t.Fatalf("block %d part %d: bad CRC", blockID, partID)
			}
			if int(part[1]) != blockID || int(part[2]) != partID {
				t.Fatalf("block %d part %d: ids %d/%d", blockID, partID, part[1], part[2])
			}
			unit = append(unit, part[3:]...)
		}
		length := int(binary.LittleEndian.Uint16(unit[0:2]))
		crc := binary.LittleEndian.Uint16(unit[2:4])
		data := unit[BLOCK_HEADER_LEN : BLOCK_HEADER_LEN+length]
		if got := Sum16(data); got != crc {
			t.Fatalf("block %d: data checksum %#04x, header says %#04x", blockID, got, crc)
		}
		out = append(out, data...)
	}
	return out
}

func TestSegmentationRoundTrip(t *testing.T) {
	for _, n := range []int{1, 230, 4096, 5000, 8192, 10*BLOCK_DATA_SIZE + 1} {
		payload := patternPayload(n)
		if got := reassemble(t, payload); !bytes.Equal(got, payload) {
			t.Errorf("%d byte payload did not survive the round trip", n)
		}
	}
}

func TestPartMask(t *testing.T) {
	mask := MaskFromParts([]int{0, 2, 5, 17})
	want := []byte{0x25, 0x00, 0x02, 0x00, 0x00, 0x00}
	if !bytes.Equal(mask[:], want) {
		t.Fatalf("mask = % 02x, want % 02x", mask, want)
	}

	parts := PartsFromMask(mask[:])
	if len(parts) != 4 || parts[0] != 0 || parts[1] != 2 || parts[2] != 5 || parts[3] != 17 {
		t.Errorf("parts = %v, want [0 2 5 17]", parts)
	}

	// Bits beyond part 17 are not meaningful.
	full := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	if got := len(PartsFromMask(full)); got != PARTS_PER_BLOCK {
		t.Errorf("all-ones mask yields %d parts, want %d", got, PARTS_PER_BLOCK)
	}
}
