package oepl

import (
	"errors"
	"testing"
)

func TestDispatchSimpleEvents(t *testing.T) {
	cases := []struct {
		raw  []byte
		want EventType
	}{
		{[]byte{0x00, 0x63}, EvCommandAck},
		{[]byte{0x00, 0xC4}, EvPartError},
		{[]byte{0x00, 0xC5}, EvPartAck},
		{[]byte{0x00, 0xC7}, EvUploadComplete},
		{[]byte{0x00, 0xC8}, EvDataPresent},
		{[]byte{0x00, 0xC9}, EvFwUpdateAck},
		{[]byte{0x00, 0xCA}, EvLutReadStart},
		{[]byte{0x00, 0xCB, 0x01, 0x02}, EvLutPart},
		{[]byte{0x00, 0xCC}, EvLutReadDone},
		{[]byte{0x00, 0xCE}, EvConfigOK},
		{[]byte{0x00, 0xCF, 0x07}, EvConfigError},
		{[]byte{0xFF, 0xFF, 0xDE, 0xAD}, EvGenericError},
	}
	for _, c := range cases {
		ev, err := Dispatch(c.raw)
		if err != nil {
			t.Fatalf("% 02x: %v", c.raw, err)
		}
		if ev.Type != c.want {
			t.Errorf("% 02x: type %s, want %s", c.raw, ev.Type, c.want)
		}
	}
}

func TestDispatchBlockRequest(t *testing.T) {
	req := BlockRequest{Version: 42, BlockID: 1, PartsMask: MaskFromParts([]int{0, 1})}
	ev, err := Dispatch(Frame(CommandID(RSP_BLOCK_REQUEST), req.ToWire()))
	if err != nil {
		t.Fatal(err)
	}
	if ev.Type != EvBlockRequest || ev.BlockRequest == nil {
		t.Fatalf("event = %s", ev)
	}
	if ev.BlockRequest.Version != 42 || ev.BlockRequest.BlockID != 1 {
		t.Errorf("decoded request %+v", ev.BlockRequest)
	}
}

func TestDispatchScreenInfo(t *testing.T) {
	info := ScreenInfo{Width: 250, Height: 122, ColorScheme: 1, DisplayType: 3, BatteryMv: 2980}
	ev, err := Dispatch(Frame(CommandID(RSP_SCREEN_INFO), info.ToWire()))
	if err != nil {
		t.Fatal(err)
	}
	if ev.Type != EvScreenInfo || ev.ScreenInfo == nil || *ev.ScreenInfo != info {
		t.Fatalf("event = %s, info %+v", ev, ev.ScreenInfo)
	}
}

func TestDispatchUnrecognized(t *testing.T) {
	// Unknown IDs are tolerated so firmware variants do not kill transfers.
	ev, err := Dispatch([]byte{0x00, 0xEE, 0x01})
	if err != nil {
		t.Fatal(err)
	}
	if ev.Type != EvUnrecognized {
		t.Errorf("type = %s, want Unrecognized", ev.Type)
	}
}

func TestDispatchMalformed(t *testing.T) {
	var mfe *MalformedFrameError
	// Known ID with a truncated payload is fatal.
	if _, err := Dispatch([]byte{0x00, 0xC6, 0x01}); !errors.As(err, &mfe) {
		t.Errorf("truncated BlockRequest: got %v, want MalformedFrameError", err)
	}
	if _, err := Dispatch([]byte{0x00}); !errors.As(err, &mfe) {
		t.Errorf("one byte frame: got %v, want MalformedFrameError", err)
	}
}
