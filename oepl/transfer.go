package oepl

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Transport is the caller supplied BLE collaborator: write-without-response
// frame delivery plus a stream of device notifications, one buffer per
// notification, in device send order.
type Transport interface {
	WriteFrame(p []byte) error
	ReceiveNotification(ctx context.Context) ([]byte, error)
}

// State of the transfer engine.
type State int

const (
	StateIdle State = iota
	StateAnnounced
	StateAwaitingBlockRequest
	StateSendingParts
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnnounced:
		return "announced"
	case StateAwaitingBlockRequest:
		return "awaiting block request"
	case StateSendingParts:
		return "sending parts"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Engine drives one operation at a time against one device connection. It is
// strictly single flow: the device has no receive buffer beyond one part, so
// every frame is gated by the notification that answers it. The engine holds
// the only mutable transfer state (payload, announced version, progress) and
// must not be shared between concurrent operations.
type Engine struct {
	transport Transport
	cfg       config

	state    State
	payload  []byte
	version  uint64
	curBlock int
	curPart  int
}

func NewEngine(transport Transport, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{transport: transport, cfg: cfg}
}

func (e *Engine) State() State {
	return e.state
}

// Upload pushes one payload to the device and drives the transfer to
// completion or terminal failure. The device decides which blocks and which
// parts of them it wants; every BlockRequest bitmask is authoritative,
// including re-requests of blocks served earlier.
func (e *Engine) Upload(ctx context.Context, payload []byte, dataType DataType) error {
	if len(payload) == 0 {
		return ErrEmptyPayload
	}
	switch e.state {
	case StateAnnounced, StateAwaitingBlockRequest, StateSendingParts:
		return ErrTransferInFlight
	}

	e.payload = payload
	e.version = DataVersion(payload)
	e.curBlock, e.curPart = 0, 0
	totalBlocks := BlockCount(len(payload))

	avail := NewAvailDataInfo(payload, dataType)
	e.cfg.logger.WithFields(log.Fields{
		"size":    len(payload),
		"blocks":  totalBlocks,
		"type":    dataType.String(),
		"version": fmt.Sprintf("%#016x", e.version),
	}).Info("announcing transfer")

	if err := e.send(CMD_START_DATA_TRANSFER, avail.ToWire()); err != nil {
		return e.fail(err)
	}
	e.state = StateAwaitingBlockRequest

	// An early main-loop event received while waiting for a lower level ack
	// is carried here instead of being dropped.
	var pending *Event
	for {
		var ev Event
		if pending != nil {
			ev = *pending
			pending = nil
		} else {
			var err error
			ev, err = e.next(ctx, "transfer")
			if err != nil {
				return e.fail(err)
			}
		}

		switch ev.Type {
		case EvBlockRequest:
			req := ev.BlockRequest
			if req.Version != e.version {
				return e.fail(&VersionMismatchError{Announced: e.version, Requested: req.Version})
			}
			if int(req.BlockID) >= totalBlocks {
				return e.fail(fmt.Errorf("device requested out-of-range block %d of %d", req.BlockID, totalBlocks))
			}
			carried, err := e.serveBlockRequest(ctx, req)
			if err != nil {
				return e.fail(err)
			}
			pending = carried

		case EvDataPresent:
			e.cfg.logger.Info("device already holds this data version")
			fallthrough
		case EvUploadComplete, EvFwUpdateAck:
			if err := e.send(CMD_TRANSFER_COMPLETE, nil); err != nil {
				return e.fail(err)
			}
			e.state = StateComplete
			e.cfg.logger.Info("transfer complete")
			return nil

		case EvCommandAck, EvPartAck, EvPartError:
			// stale echo of the previous exchange

		case EvGenericError, EvConfigError:
			return e.fail(&DeviceError{ID: ev.ID, Payload: ev.Payload})

		default:
			e.cfg.logger.WithField("event", ev.String()).Debug("ignoring notification")
		}
	}
}

// serveBlockRequest acks readiness and transmits exactly the requested parts
// in ascending order. A main-loop event arriving mid block (the device moved
// on) is returned for the upload loop to handle.
func (e *Engine) serveBlockRequest(ctx context.Context, req *BlockRequest) (*Event, error) {
	parts := req.RequestedParts()
	e.curBlock = int(req.BlockID)
	e.cfg.logger.WithFields(log.Fields{"block": req.BlockID, "parts": len(parts)}).Info("serving block request")

	if err := e.send(CMD_ACK_READY, nil); err != nil {
		return nil, err
	}
	carried, err := e.awaitReadyAck(ctx)
	if err != nil || carried != nil {
		return carried, err
	}

	e.state = StateSendingParts
	defer func() { e.state = StateAwaitingBlockRequest }()

	for _, partID := range parts {
		carried, err := e.sendPart(ctx, int(req.BlockID), partID)
		if err != nil {
			return nil, err
		}
		if carried != nil {
			return carried, nil
		}
	}
	return nil, nil
}

// awaitReadyAck waits for the CommandAck answering AckReady. Part level
// notifications are stale here; main-loop events are carried back.
func (e *Engine) awaitReadyAck(ctx context.Context) (*Event, error) {
	for {
		ev, err := e.next(ctx, "ready ack")
		if err != nil {
			return nil, err
		}
		switch ev.Type {
		case EvCommandAck:
			return nil, nil
		case EvBlockRequest, EvUploadComplete, EvDataPresent, EvFwUpdateAck:
			return &ev, nil
		case EvPartAck, EvPartError:
			// stale
		case EvGenericError, EvConfigError:
			return nil, &DeviceError{ID: ev.ID, Payload: ev.Payload}
		default:
			e.cfg.logger.WithField("event", ev.String()).Debug("ignoring notification")
		}
	}
}

// sendPart transmits one part and waits for its PartAck, retransmitting on
// PartError up to the configured limit.
func (e *Engine) sendPart(ctx context.Context, blockID, partID int) (*Event, error) {
	e.curPart = partID
	frame := BuildBlockPart(e.payload, blockID, partID)

	for attempt := 1; ; attempt++ {
		if err := e.send(CMD_SEND_BLOCK_PART, frame); err != nil {
			return nil, err
		}
		retry := false
		for !retry {
			ev, err := e.next(ctx, fmt.Sprintf("ack for block %d part %d", blockID, partID))
			if err != nil {
				return nil, err
			}
			switch ev.Type {
			case EvPartAck:
				return nil, nil
			case EvPartError:
				if attempt >= e.cfg.partRetryLimit {
					return nil, &PartRetryExceededError{BlockID: blockID, PartID: partID, Attempts: attempt}
				}
				e.cfg.logger.WithFields(log.Fields{"block": blockID, "part": partID, "attempt": attempt}).Warn("part rejected, retransmitting")
				retry = true
			case EvCommandAck:
				// stale
			case EvBlockRequest, EvUploadComplete, EvDataPresent, EvFwUpdateAck:
				return &ev, nil
			case EvGenericError, EvConfigError:
				return nil, &DeviceError{ID: ev.ID, Payload: ev.Payload}
			default:
				e.cfg.logger.WithField("event", ev.String()).Debug("ignoring notification")
			}
		}
	}
}

func (e *Engine) send(id CommandID, payload []byte) error {
	if err := e.transport.WriteFrame(Frame(id, payload)); err != nil {
		return fmt.Errorf("write %s: %w", id, err)
	}
	return nil
}

// next receives and dispatches one notification, bounded by the per step
// timeout. Malformed frames are fatal; unrecognized IDs are not.
func (e *Engine) next(ctx context.Context, op string) (Event, error) {
	stepCtx, cancel := context.WithTimeout(ctx, e.cfg.stepTimeout)
	defer cancel()

	raw, err := e.transport.ReceiveNotification(stepCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return Event{}, &TimeoutError{State: e.state, Op: op}
		}
		return Event{}, err
	}
	return Dispatch(raw)
}

func (e *Engine) fail(err error) error {
	e.state = StateFailed
	e.cfg.logger.WithFields(log.Fields{"block": e.curBlock, "part": e.curPart}).WithError(err).Error("transfer failed")
	return err
}
