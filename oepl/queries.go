package oepl

import (
	"context"
	"encoding/binary"
)

// Auxiliary flows: short request/response exchanges sharing the engine's
// transport, timeouts and error handling, without block segmentation.

// ReadScreenInfo queries panel geometry and battery level.
func (e *Engine) ReadScreenInfo(ctx context.Context) (*ScreenInfo, error) {
	ev, err := e.query(ctx, CMD_READ_SCREEN_INFO, nil, EvScreenInfo, "screen info")
	if err != nil {
		return nil, err
	}
	return ev.ScreenInfo, nil
}

// ReadDebugStatus queries the device health snapshot.
func (e *Engine) ReadDebugStatus(ctx context.Context) (*DebugStatus, error) {
	ev, err := e.query(ctx, CMD_READ_DEBUG_STATUS, []byte{0x00, 0x00}, EvDebugStatus, "debug status")
	if err != nil {
		return nil, err
	}
	return ev.DebugStatus, nil
}

// ReadLUT pulls the waveform LUT from the device: after the read-start
// notification, each RequestLUTPart yields one chunk until LUTReadDone.
func (e *Engine) ReadLUT(ctx context.Context) ([]byte, error) {
	if err := e.send(CMD_READ_LUT, nil); err != nil {
		return nil, err
	}
	if _, err := e.await(ctx, EvLutReadStart, "LUT read start"); err != nil {
		return nil, err
	}

	var lut []byte
	for {
		if err := e.send(CMD_REQUEST_LUT_PART, nil); err != nil {
			return nil, err
		}
		for received := false; !received; {
			ev, err := e.next(ctx, "LUT part")
			if err != nil {
				return nil, err
			}
			switch ev.Type {
			case EvLutPart:
				lut = append(lut, ev.Payload...)
				received = true
			case EvLutReadDone:
				e.cfg.logger.WithField("bytes", len(lut)).Info("LUT read done")
				return lut, nil
			case EvCommandAck:
				// stale
			case EvGenericError, EvConfigError:
				return nil, &DeviceError{ID: ev.ID, Payload: ev.Payload}
			default:
				e.cfg.logger.WithField("event", ev.String()).Debug("ignoring notification")
			}
		}
	}
}

// ReadDynamicConfig fetches the device's current dynamic configuration.
func (e *Engine) ReadDynamicConfig(ctx context.Context) (*DynamicConfig, error) {
	ev, err := e.query(ctx, CMD_READ_DYNAMIC_CONFIG, nil, EvConfigData, "dynamic config")
	if err != nil {
		return nil, err
	}
	return ev.Config, nil
}

// TestDynamicConfig applies a configuration without persisting it.
func (e *Engine) TestDynamicConfig(ctx context.Context, cfg *DynamicConfig) error {
	_, err := e.query(ctx, CMD_TEST_DYNAMIC_CONFIG, cfg.ToWire(), EvConfigOK, "test dynamic config")
	return err
}

// SaveDynamicConfig persists a configuration on the device.
func (e *Engine) SaveDynamicConfig(ctx context.Context, cfg *DynamicConfig) error {
	_, err := e.query(ctx, CMD_SAVE_DYNAMIC_CONFIG, cfg.ToWire(), EvConfigOK, "save dynamic config")
	return err
}

func (e *Engine) Debug(ctx context.Context) error {
	return e.sendAcked(ctx, CMD_DEBUG, nil, "debug")
}

func (e *Engine) SetDisplayType(ctx context.Context, displayType uint16) error {
	payload := make([]byte, 2)
	binary.LittleEndian.PutUint16(payload, displayType)
	return e.sendAcked(ctx, CMD_SET_DISPLAY_TYPE, payload, "set display type")
}

func (e *Engine) EnableOEPL(ctx context.Context) error {
	return e.sendAcked(ctx, CMD_ENABLE_OEPL, nil, "enable OEPL")
}

func (e *Engine) DisableOEPL(ctx context.Context) error {
	return e.sendAcked(ctx, CMD_DISABLE_OEPL, nil, "disable OEPL")
}

// SetAdvInterval sets the advertising interval. Big endian on the wire,
// unlike the other u16 fields.
func (e *Engine) SetAdvInterval(ctx context.Context, interval uint16) error {
	payload := make([]byte, 2)
	binary.BigEndian.PutUint16(payload, interval)
	return e.sendAcked(ctx, CMD_SET_ADV_INTERVAL, payload, "set adv interval")
}

func (e *Engine) SetCustomMAC(ctx context.Context, mac [8]byte) error {
	return e.sendAcked(ctx, CMD_SET_CUSTOM_MAC, mac[:], "set custom MAC")
}

// ResetConfig wipes the device configuration. Guarded by a magic word so a
// stray frame cannot trigger it.
func (e *Engine) ResetConfig(ctx context.Context) error {
	payload := make([]byte, 2)
	binary.LittleEndian.PutUint16(payload, 0x1234)
	return e.sendAcked(ctx, CMD_RESET_CONFIG, payload, "reset config")
}

func (e *Engine) SetClockMode(ctx context.Context, epoch uint32, mode byte) error {
	payload := make([]byte, 5)
	binary.LittleEndian.PutUint32(payload, epoch)
	payload[4] = mode
	return e.sendAcked(ctx, CMD_SET_CLOCK_MODE, payload, "set clock mode")
}

func (e *Engine) DisableClockMode(ctx context.Context) error {
	return e.sendAcked(ctx, CMD_DISABLE_CLOCK_MODE, nil, "disable clock mode")
}

// DisableBLE and DeepSleep are fire and forget: the device drops the link or
// powers down, so no ack can be expected.
func (e *Engine) DisableBLE(ctx context.Context) error {
	return e.send(CMD_DISABLE_BLE, nil)
}

func (e *Engine) DeepSleep(ctx context.Context) error {
	return e.send(CMD_DEEP_SLEEP, nil)
}

// query sends one command and waits for one specific event type.
func (e *Engine) query(ctx context.Context, id CommandID, payload []byte, want EventType, op string) (Event, error) {
	if err := e.send(id, payload); err != nil {
		return Event{}, err
	}
	return e.await(ctx, want, op)
}

func (e *Engine) sendAcked(ctx context.Context, id CommandID, payload []byte, op string) error {
	_, err := e.query(ctx, id, payload, EvCommandAck, op)
	return err
}

// await consumes notifications until the wanted event type arrives, a device
// error aborts the operation, or the step timeout fires.
func (e *Engine) await(ctx context.Context, want EventType, op string) (Event, error) {
	for {
		ev, err := e.next(ctx, op)
		if err != nil {
			return Event{}, err
		}
		switch {
		case ev.Type == want:
			return ev, nil
		case ev.Type == EvGenericError || ev.Type == EvConfigError:
			return Event{}, &DeviceError{ID: ev.ID, Payload: ev.Payload}
		case ev.Type == EvCommandAck || ev.Type == EvPartAck || ev.Type == EvPartError:
			// stale
		default:
			e.cfg.logger.WithField("event", ev.String()).Debug("ignoring notification")
		}
	}
}
