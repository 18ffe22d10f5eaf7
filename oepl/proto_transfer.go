package oepl

import (
	"encoding/binary"
	"fmt"
)

const (
	AVAIL_DATA_INFO_LEN = 17
	BLOCK_REQUEST_LEN   = 17
	SCREEN_INFO_LEN     = 8
	DEBUG_STATUS_LEN    = 10
)

// AvailDataInfo announces a pending transfer to the device. All multi byte
// fields are little endian on the wire, after the big endian command ID.
type AvailDataInfo struct {
	Checksum         byte // constant 0xFF
	DataVersion      uint64
	DataSize         uint32
	DataType         DataType
	DataTypeArgument byte
	NextCheckIn      uint16
}

// NewAvailDataInfo fills in the announcement for a payload: version is the
// CRC32 of the bytes, size their exact length.
func NewAvailDataInfo(payload []byte, dataType DataType) AvailDataInfo {
	return AvailDataInfo{
		Checksum:    0xFF,
		DataVersion: DataVersion(payload),
		DataSize:    uint32(len(payload)),
		DataType:    dataType,
	}
}

func (a *AvailDataInfo) ToWire() []byte {
	payload := make([]byte, AVAIL_DATA_INFO_LEN)
	payload[0] = a.Checksum
	binary.LittleEndian.PutUint64(payload[1:9], a.DataVersion)
	binary.LittleEndian.PutUint32(payload[9:13], a.DataSize)
	payload[13] = byte(a.DataType)
	payload[14] = a.DataTypeArgument
	binary.LittleEndian.PutUint16(payload[15:17], a.NextCheckIn)
	return payload
}

func (a *AvailDataInfo) FromWire(payload []byte) error {
	if len(payload) != AVAIL_DATA_INFO_LEN {
		return &MalformedFrameError{What: "AvailDataInfo", Got: len(payload), Want: AVAIL_DATA_INFO_LEN}
	}
	a.Checksum = payload[0]
	a.DataVersion = binary.LittleEndian.Uint64(payload[1:9])
	a.DataSize = binary.LittleEndian.Uint32(payload[9:13])
	a.DataType = DataType(payload[13])
	a.DataTypeArgument = payload[14]
	a.NextCheckIn = binary.LittleEndian.Uint16(payload[15:17])
	return nil
}

func (a *AvailDataInfo) String() string {
	return fmt.Sprintf("AvailDataInfo ver %#016x size %d type %s", a.DataVersion, a.DataSize, a.DataType)
}

// BlockRequest is the device's demand for (a subset of) the parts of one
// block. PartsMask is an LSB first bitmask over the 18 part IDs.
type BlockRequest struct {
	Checksum  byte
	Version   uint64
	BlockID   byte
	Type      DataType
	PartsMask [6]byte
}

func (r *BlockRequest) FromWire(payload []byte) error {
	if len(payload) < BLOCK_REQUEST_LEN {
		return &MalformedFrameError{What: "BlockRequest", Got: len(payload), Want: BLOCK_REQUEST_LEN}
	}
	r.Checksum = payload[0]
	r.Version = binary.LittleEndian.Uint64(payload[1:9])
	r.BlockID = payload[9]
	r.Type = DataType(payload[10])
	copy(r.PartsMask[:], payload[11:17])
	return nil
}

func (r *BlockRequest) ToWire() []byte {
	payload := make([]byte, BLOCK_REQUEST_LEN)
	payload[0] = r.Checksum
	binary.LittleEndian.PutUint64(payload[1:9], r.Version)
	payload[9] = r.BlockID
	payload[10] = byte(r.Type)
	copy(payload[11:17], r.PartsMask[:])
	return payload
}

// RequestedParts lists the part IDs set in the mask, in ascending order.
func (r *BlockRequest) RequestedParts() []int {
	return PartsFromMask(r.PartsMask[:])
}

func (r *BlockRequest) String() string {
	return fmt.Sprintf("BlockRequest ver %#016x block %d parts %v", r.Version, r.BlockID, r.RequestedParts())
}

// ScreenInfo describes the attached panel, reported via 0x0005.
type ScreenInfo struct {
	Width       uint16
	Height      uint16
	ColorScheme byte
	DisplayType byte
	BatteryMv   uint16
}

func (s *ScreenInfo) FromWire(payload []byte) error {
	if len(payload) < SCREEN_INFO_LEN {
		return &MalformedFrameError{What: "ScreenInfo", Got: len(payload), Want: SCREEN_INFO_LEN}
	}
	s.Width = binary.LittleEndian.Uint16(payload[0:2])
	s.Height = binary.LittleEndian.Uint16(payload[2:4])
	s.ColorScheme = payload[4]
	s.DisplayType = payload[5]
	s.BatteryMv = binary.LittleEndian.Uint16(payload[6:8])
	return nil
}

func (s *ScreenInfo) ToWire() []byte {
	payload := make([]byte, SCREEN_INFO_LEN)
	binary.LittleEndian.PutUint16(payload[0:2], s.Width)
	binary.LittleEndian.PutUint16(payload[2:4], s.Height)
	payload[4] = s.ColorScheme
	payload[5] = s.DisplayType
	binary.LittleEndian.PutUint16(payload[6:8], s.BatteryMv)
	return payload
}

func (s *ScreenInfo) String() string {
	return fmt.Sprintf("Screen %dx%d color scheme %#02x display type %#02x battery %dmV",
		s.Width, s.Height, s.ColorScheme, s.DisplayType, s.BatteryMv)
}

// DebugStatus is the device health snapshot reported via 0x00D1.
type DebugStatus struct {
	BatteryMv   uint16
	Temperature int8
	WakeReason  byte
	BootCount   uint32
	LastError   uint16
}

func (d *DebugStatus) FromWire(payload []byte) error {
	if len(payload) < DEBUG_STATUS_LEN {
		return &MalformedFrameError{What: "DebugStatus", Got: len(payload), Want: DEBUG_STATUS_LEN}
	}
	d.BatteryMv = binary.LittleEndian.Uint16(payload[0:2])
	d.Temperature = int8(payload[2])
	d.WakeReason = payload[3]
	d.BootCount = binary.LittleEndian.Uint32(payload[4:8])
	d.LastError = binary.LittleEndian.Uint16(payload[8:10])
	return nil
}

func (d *DebugStatus) ToWire() []byte {
	payload := make([]byte, DEBUG_STATUS_LEN)
	binary.LittleEndian.PutUint16(payload[0:2], d.BatteryMv)
	payload[2] = byte(d.Temperature)
	payload[3] = d.WakeReason
	binary.LittleEndian.PutUint32(payload[4:8], d.BootCount)
	binary.LittleEndian.PutUint16(payload[8:10], d.LastError)
	return payload
}

func (d *DebugStatus) String() string {
	return fmt.Sprintf("Battery %dmV temp %d°C wake reason %#02x boots %d last error %#04x",
		d.BatteryMv, d.Temperature, d.WakeReason, d.BootCount, d.LastError)
}
