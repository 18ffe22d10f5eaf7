package oepl

import (
	"encoding/binary"
	"fmt"
)

// Every frame on the single GATT characteristic starts with a big endian
// u16 command ID, followed by a command specific payload.

type CommandID uint16

const (
	CMD_DEBUG               CommandID = 0x0001
	CMD_ACK_READY           CommandID = 0x0002
	CMD_TRANSFER_COMPLETE   CommandID = 0x0003
	CMD_SET_DISPLAY_TYPE    CommandID = 0x0004
	CMD_READ_SCREEN_INFO    CommandID = 0x0005
	CMD_ENABLE_OEPL         CommandID = 0x0006
	CMD_DISABLE_OEPL        CommandID = 0x0007
	CMD_SET_ADV_INTERVAL    CommandID = 0x0008
	CMD_SET_CUSTOM_MAC      CommandID = 0x0009
	CMD_RESET_CONFIG        CommandID = 0x000A
	CMD_SET_CLOCK_MODE      CommandID = 0x000B
	CMD_DISABLE_CLOCK_MODE  CommandID = 0x000C
	CMD_READ_LUT            CommandID = 0x000D
	CMD_REQUEST_LUT_PART    CommandID = 0x000E
	CMD_TEST_DYNAMIC_CONFIG CommandID = 0x000F
	CMD_SAVE_DYNAMIC_CONFIG CommandID = 0x0010
	CMD_READ_DYNAMIC_CONFIG CommandID = 0x0011
	CMD_DISABLE_BLE         CommandID = 0x0012
	CMD_DEEP_SLEEP          CommandID = 0x0014
	CMD_READ_DEBUG_STATUS   CommandID = 0x0016
	CMD_START_DATA_TRANSFER CommandID = 0x0064
	CMD_SEND_BLOCK_PART     CommandID = 0x0065
)

func (c CommandID) String() string {
	switch c {
	case CMD_DEBUG:
		return "DEBUG"
	case CMD_ACK_READY:
		return "ACK READY"
	case CMD_TRANSFER_COMPLETE:
		return "TRANSFER COMPLETE"
	case CMD_SET_DISPLAY_TYPE:
		return "SET DISPLAY TYPE"
	case CMD_READ_SCREEN_INFO:
		return "READ SCREEN INFO"
	case CMD_ENABLE_OEPL:
		return "ENABLE OEPL"
	case CMD_DISABLE_OEPL:
		return "DISABLE OEPL"
	case CMD_SET_ADV_INTERVAL:
		return "SET ADV INTERVAL"
	case CMD_SET_CUSTOM_MAC:
		return "SET CUSTOM MAC"
	case CMD_RESET_CONFIG:
		return "RESET CONFIG"
	case CMD_SET_CLOCK_MODE:
		return "SET CLOCK MODE"
	case CMD_DISABLE_CLOCK_MODE:
		return "DISABLE CLOCK MODE"
	case CMD_READ_LUT:
		return "READ LUT"
	case CMD_REQUEST_LUT_PART:
		return "REQUEST LUT PART"
	case CMD_TEST_DYNAMIC_CONFIG:
		return "TEST DYNAMIC CONFIG"
	case CMD_SAVE_DYNAMIC_CONFIG:
		return "SAVE DYNAMIC CONFIG"
	case CMD_READ_DYNAMIC_CONFIG:
		return "READ DYNAMIC CONFIG"
	case CMD_DISABLE_BLE:
		return "DISABLE BLE"
	case CMD_DEEP_SLEEP:
		return "DEEP SLEEP"
	case CMD_READ_DEBUG_STATUS:
		return "READ DEBUG STATUS"
	case CMD_START_DATA_TRANSFER:
		return "START DATA TRANSFER"
	case CMD_SEND_BLOCK_PART:
		return "SEND BLOCK PART"
	}
	return fmt.Sprintf("Unknown command %#04x", uint16(c))
}

type ResponseID uint16

const (
	RSP_SCREEN_INFO     ResponseID = 0x0005
	RSP_COMMAND_ACK     ResponseID = 0x0063
	RSP_PART_ERROR      ResponseID = 0x00C4
	RSP_PART_ACK        ResponseID = 0x00C5
	RSP_BLOCK_REQUEST   ResponseID = 0x00C6
	RSP_UPLOAD_COMPLETE ResponseID = 0x00C7
	RSP_DATA_PRESENT    ResponseID = 0x00C8
	RSP_FW_UPDATE_ACK   ResponseID = 0x00C9
	RSP_LUT_READ_START  ResponseID = 0x00CA
	RSP_LUT_PART        ResponseID = 0x00CB
	RSP_LUT_READ_DONE   ResponseID = 0x00CC
	RSP_CONFIG_DATA     ResponseID = 0x00CD
	RSP_CONFIG_OK       ResponseID = 0x00CE
	RSP_CONFIG_ERROR    ResponseID = 0x00CF
	RSP_DEBUG_STATUS    ResponseID = 0x00D1
	RSP_ERROR           ResponseID = 0xFFFF
)

func (r ResponseID) String() string {
	switch r {
	case RSP_SCREEN_INFO:
		return "SCREEN INFO"
	case RSP_COMMAND_ACK:
		return "COMMAND ACK"
	case RSP_PART_ERROR:
		return "PART ERROR"
	case RSP_PART_ACK:
		return "PART ACK"
	case RSP_BLOCK_REQUEST:
		return "BLOCK REQUEST"
	case RSP_UPLOAD_COMPLETE:
		return "UPLOAD COMPLETE"
	case RSP_DATA_PRESENT:
		return "DATA PRESENT"
	case RSP_FW_UPDATE_ACK:
		return "FW UPDATE ACK"
	case RSP_LUT_READ_START:
		return "LUT READ START"
	case RSP_LUT_PART:
		return "LUT PART"
	case RSP_LUT_READ_DONE:
		return "LUT READ DONE"
	case RSP_CONFIG_DATA:
		return "CONFIG DATA"
	case RSP_CONFIG_OK:
		return "CONFIG OK"
	case RSP_CONFIG_ERROR:
		return "CONFIG ERROR"
	case RSP_DEBUG_STATUS:
		return "DEBUG STATUS"
	case RSP_ERROR:
		return "ERROR"
	}
	return fmt.Sprintf("Unknown response %#04x", uint16(r))
}

// DataType selects how the device interprets an uploaded payload.
type DataType byte

const (
	DATA_TYPE_FIRMWARE    DataType = 0x03
	DATA_TYPE_CUSTOM_LUT  DataType = 0x07
	DATA_TYPE_RAW_BW      DataType = 0x20
	DATA_TYPE_RAW_BWR_BWY DataType = 0x21
	DATA_TYPE_ZLIB        DataType = 0x30
)

func (d DataType) String() string {
	switch d {
	case DATA_TYPE_FIRMWARE:
		return "firmware"
	case DATA_TYPE_CUSTOM_LUT:
		return "custom LUT"
	case DATA_TYPE_RAW_BW:
		return "raw B/W image"
	case DATA_TYPE_RAW_BWR_BWY:
		return "raw B/W/R or B/W/Y image"
	case DATA_TYPE_ZLIB:
		return "zlib compressed image"
	}
	return fmt.Sprintf("unknown data type %#02x", byte(d))
}

// Frame builds a wire frame for a host to device command.
func Frame(id CommandID, payload []byte) []byte {
	frame := make([]byte, 2+len(payload))
	binary.BigEndian.PutUint16(frame, uint16(id))
	copy(frame[2:], payload)
	return frame
}

// ParseFrame splits a raw notification into its response ID and payload.
func ParseFrame(raw []byte) (ResponseID, []byte, error) {
	if len(raw) < 2 {
		return 0, nil, &MalformedFrameError{What: "notification", Got: len(raw), Want: 2}
	}
	return ResponseID(binary.BigEndian.Uint16(raw)), raw[2:], nil
}
