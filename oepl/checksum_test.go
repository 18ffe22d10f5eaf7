package oepl

import "testing"

func TestSum8(t *testing.T) {
	if got := Sum8(nil); got != 0 {
		t.Errorf("Sum8(nil) = %d, want 0", got)
	}
	if got := Sum8([]byte{1, 2, 3}); got != 6 {
		t.Errorf("Sum8([1 2 3]) = %d, want 6", got)
	}
	// wraps modulo 256
	if got := Sum8([]byte{0xFF, 0x02}); got != 0x01 {
		t.Errorf("Sum8([ff 02]) = %#02x, want 0x01", got)
	}
}

func TestSum16(t *testing.T) {
	if got := Sum16(nil); got != 0 {
		t.Errorf("Sum16(nil) = %d, want 0", got)
	}
	data := make([]byte, 300)
	for i := range data {
		data[i] = 0xFF
	}
	// 300 * 255 = 76500, mod 65536 = 10964
	if got := Sum16(data); got != 10964 {
		t.Errorf("Sum16(300*0xff) = %d, want 10964", got)
	}
}

func TestDataVersion(t *testing.T) {
	// IEEE CRC32 check value
	if got := DataVersion([]byte("123456789")); got != 0xCBF43926 {
		t.Errorf("DataVersion = %#x, want 0xcbf43926", got)
	}
	if got := DataVersion([]byte("123456789")); got>>32 != 0 {
		t.Errorf("DataVersion high bits set: %#x", got)
	}
}
