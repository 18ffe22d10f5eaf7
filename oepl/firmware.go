package oepl

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/sigurn/crc16"
)

// Firmware images built for these displays may carry a 6 byte trailer:
// the magic "OEPL" followed by a little endian CRC16 (CCITT-FALSE) over
// everything before the trailer. Images without a trailer are accepted,
// but only images with a valid trailer are verified.

const (
	firmwareTrailerLen = 6
	firmwareMagic      = "OEPL"
)

type Firmware struct {
	Data       []byte // image as sent to the device, trailer included
	CRC        uint16
	HasTrailer bool
}

func (f Firmware) String() string {
	if !f.HasTrailer {
		return fmt.Sprintf("firmware image, %d bytes, unverified (no trailer)", len(f.Data))
	}
	return fmt.Sprintf("firmware image, %d bytes, CRC %#04x", len(f.Data), f.CRC)
}

// ParseFirmware loads a firmware image from disk and validates its trailer.
func ParseFirmware(path string) (*Firmware, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFirmwareBytes(data)
}

// ParseFirmwareBytes validates a firmware image held in memory.
func ParseFirmwareBytes(data []byte) (*Firmware, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("firmware image of %d bytes exceeds the announceable size", len(data))
	}
	fw := &Firmware{Data: data}

	if len(data) < firmwareTrailerLen || string(data[len(data)-firmwareTrailerLen:len(data)-2]) != firmwareMagic {
		return fw, nil
	}
	fw.HasTrailer = true
	fw.CRC = binary.LittleEndian.Uint16(data[len(data)-2:])

	table := crc16.MakeTable(crc16.CRC16_CCITT_FALSE)
	if sum := crc16.Checksum(data[:len(data)-firmwareTrailerLen], table); sum != fw.CRC {
		return nil, &FirmwareCRCError{Want: fw.CRC, Got: sum}
	}
	return fw, nil
}
