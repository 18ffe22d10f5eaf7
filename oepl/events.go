package oepl

import "fmt"

// The dispatcher turns one raw notification buffer into one typed event. It
// holds no state and retries nothing; all protocol decisions live in the
// transfer engine.

type EventType int

const (
	EvUnrecognized EventType = iota
	EvScreenInfo
	EvCommandAck
	EvPartError
	EvPartAck
	EvBlockRequest
	EvUploadComplete
	EvDataPresent
	EvFwUpdateAck
	EvLutReadStart
	EvLutPart
	EvLutReadDone
	EvConfigData
	EvConfigOK
	EvConfigError
	EvDebugStatus
	EvGenericError
)

func (t EventType) String() string {
	switch t {
	case EvScreenInfo:
		return "ScreenInfo"
	case EvCommandAck:
		return "CommandAck"
	case EvPartError:
		return "PartError"
	case EvPartAck:
		return "PartAck"
	case EvBlockRequest:
		return "BlockRequest"
	case EvUploadComplete:
		return "UploadComplete"
	case EvDataPresent:
		return "DataPresent"
	case EvFwUpdateAck:
		return "FwUpdateAck"
	case EvLutReadStart:
		return "LutReadStart"
	case EvLutPart:
		return "LutPart"
	case EvLutReadDone:
		return "LutReadDone"
	case EvConfigData:
		return "ConfigData"
	case EvConfigOK:
		return "ConfigOK"
	case EvConfigError:
		return "ConfigError"
	case EvDebugStatus:
		return "DebugStatus"
	case EvGenericError:
		return "GenericError"
	}
	return "Unrecognized"
}

// Event is one decoded notification. Exactly one of the typed fields is set,
// matching Type; Payload carries the raw payload for events whose content is
// opaque (LUT chunks, error details).
type Event struct {
	Type         EventType
	ID           ResponseID
	BlockRequest *BlockRequest
	ScreenInfo   *ScreenInfo
	DebugStatus  *DebugStatus
	Config       *DynamicConfig
	Payload      []byte
}

func (e Event) String() string {
	return fmt.Sprintf("%s (%s)", e.Type, e.ID)
}

// Dispatch decodes a raw notification into a typed event. An unrecognized
// command ID yields an EvUnrecognized event and no error, since firmware
// variants emit undocumented IDs. A known ID with a bad payload shape fails
// with *MalformedFrameError.
func Dispatch(raw []byte) (Event, error) {
	id, payload, err := ParseFrame(raw)
	if err != nil {
		return Event{}, err
	}
	ev := Event{ID: id, Payload: payload}

	switch id {
	case RSP_SCREEN_INFO:
		info := &ScreenInfo{}
		if err := info.FromWire(payload); err != nil {
			return Event{}, err
		}
		ev.Type = EvScreenInfo
		ev.ScreenInfo = info
	case RSP_COMMAND_ACK:
		ev.Type = EvCommandAck
	case RSP_PART_ERROR:
		ev.Type = EvPartError
	case RSP_PART_ACK:
		ev.Type = EvPartAck
	case RSP_BLOCK_REQUEST:
		req := &BlockRequest{}
		if err := req.FromWire(payload); err != nil {
			return Event{}, err
		}
		ev.Type = EvBlockRequest
		ev.BlockRequest = req
	case RSP_UPLOAD_COMPLETE:
		ev.Type = EvUploadComplete
	case RSP_DATA_PRESENT:
		ev.Type = EvDataPresent
	case RSP_FW_UPDATE_ACK:
		ev.Type = EvFwUpdateAck
	case RSP_LUT_READ_START:
		ev.Type = EvLutReadStart
	case RSP_LUT_PART:
		ev.Type = EvLutPart
	case RSP_LUT_READ_DONE:
		ev.Type = EvLutReadDone
	case RSP_CONFIG_DATA:
		cfg := &DynamicConfig{}
		if err := cfg.FromWire(payload); err != nil {
			return Event{}, err
		}
		ev.Type = EvConfigData
		ev.Config = cfg
	case RSP_CONFIG_OK:
		ev.Type = EvConfigOK
	case RSP_CONFIG_ERROR:
		ev.Type = EvConfigError
	case RSP_DEBUG_STATUS:
		status := &DebugStatus{}
		if err := status.FromWire(payload); err != nil {
			return Event{}, err
		}
		ev.Type = EvDebugStatus
		ev.DebugStatus = status
	case RSP_ERROR:
		ev.Type = EvGenericError
	default:
		ev.Type = EvUnrecognized
	}
	return ev, nil
}
