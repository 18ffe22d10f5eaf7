package oepl

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPayload     = errors.New("payload is empty, nothing to transfer")
	ErrTransferInFlight = errors.New("a transfer is already in flight on this engine")
)

// MalformedFrameError reports a frame whose length does not match the fixed
// layout expected for its command ID.
type MalformedFrameError struct {
	What string
	Got  int
	Want int
}

func (e *MalformedFrameError) Error() string {
	return fmt.Sprintf("malformed %s frame: got %d bytes, want at least %d", e.What, e.Got, e.Want)
}

// UnknownCommandError reports an unrecognized command ID. Firmware variants
// emit undocumented IDs, so callers treat this as non-fatal.
type UnknownCommandError struct {
	ID uint16
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command ID %#04x", e.ID)
}

// VersionMismatchError reports a BlockRequest whose echoed data version does
// not match the version the host announced. The request refers to a stale or
// foreign transfer; the engine aborts rather than guessing.
type VersionMismatchError struct {
	Announced uint64
	Requested uint64
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("device requested data version %#016x, announced %#016x", e.Requested, e.Announced)
}

// PartRetryExceededError reports that the device rejected the same part more
// times than the configured retry limit allows.
type PartRetryExceededError struct {
	BlockID  int
	PartID   int
	Attempts int
}

func (e *PartRetryExceededError) Error() string {
	return fmt.Sprintf("part error for block %d part %d after %d attempts", e.BlockID, e.PartID, e.Attempts)
}

// TimeoutError reports that no notification arrived within the configured
// per step deadline, with the engine state at the time for diagnostics.
type TimeoutError struct {
	State State
	Op    string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out waiting for notification during %s (state %s)", e.Op, e.State)
}

// FirmwareCRCError reports a firmware image whose trailer CRC does not match
// the image contents.
type FirmwareCRCError struct {
	Want uint16
	Got  uint16
}

func (e *FirmwareCRCError) Error() string {
	return fmt.Sprintf("firmware CRC mismatch: trailer says %#04x, image sums to %#04x", e.Want, e.Got)
}

// DeviceError reports a fatal error notification from the device, either the
// generic protocol error (0xFFFF) or a config error (0x00CF).
type DeviceError struct {
	ID      ResponseID
	Payload []byte
}

func (e *DeviceError) Error() string {
	if len(e.Payload) == 0 {
		return fmt.Sprintf("device reported %s", e.ID)
	}
	return fmt.Sprintf("device reported %s: % 02x", e.ID, e.Payload)
}
