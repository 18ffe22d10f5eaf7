package oepl

import (
	"errors"
	"reflect"
	"testing"
)

func TestDynamicConfigRoundTrip(t *testing.T) {
	epd := &EPDPinout{MOSI: 9, CLK: 10, CS: 11, DC: 12, RST: 13, BUSY: 14}
	led := &LEDPinout{LED1: 1, LED2: 2, LED3: 3}
	nfc := &NFCPinout{SDA: 4, SCL: 5, CSN: 6, IRQ: 7}
	flash := &FlashPinout{MOSI: 15, MISO: 16, CLK: 17, CS: 18}

	// every combination of present/absent records
	for flags := 0; flags <= int(configFlagsKnown); flags++ {
		cfg := DynamicConfig{DisplayType: 0x0021, Width: 250, Height: 122}
		if flags&CONFIG_FLAG_EPD != 0 {
			cfg.EPD = epd
		}
		if flags&CONFIG_FLAG_LED != 0 {
			cfg.LED = led
		}
		if flags&CONFIG_FLAG_NFC != 0 {
			cfg.NFC = nfc
		}
		if flags&CONFIG_FLAG_FLASH != 0 {
			cfg.Flash = flash
		}

		wire := cfg.ToWire()
		if wire[0] != byte(flags) {
			t.Fatalf("flags %#02x: wire flags %#02x", flags, wire[0])
		}

		var parsed DynamicConfig
		if err := parsed.FromWire(wire); err != nil {
			t.Fatalf("flags %#02x: %v", flags, err)
		}
		if !reflect.DeepEqual(parsed, cfg) {
			t.Errorf("flags %#02x: round trip mismatch\n got %+v\nwant %+v", flags, parsed, cfg)
		}
	}
}

func TestDynamicConfigRejects(t *testing.T) {
	var mfe *MalformedFrameError
	var cfg DynamicConfig

	// short prefix
	if err := cfg.FromWire([]byte{0x00, 0x01, 0x02}); !errors.As(err, &mfe) {
		t.Errorf("short prefix: got %v", err)
	}
	// unknown flag bit
	if err := cfg.FromWire([]byte{0x10, 0, 0, 0, 0, 0, 0}); !errors.As(err, &mfe) {
		t.Errorf("unknown flag: got %v", err)
	}
	// EPD flag set but record truncated
	if err := cfg.FromWire([]byte{0x01, 0, 0, 0, 0, 0, 0, 9, 10}); !errors.As(err, &mfe) {
		t.Errorf("truncated record: got %v", err)
	}
	// trailing garbage
	if err := cfg.FromWire([]byte{0x00, 0, 0, 0, 0, 0, 0, 0xAA}); !errors.As(err, &mfe) {
		t.Errorf("trailing bytes: got %v", err)
	}
}
