package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"

	"eplflash/oepl"
)

// The device exposes a single GATT service with a single characteristic,
// UUID 0x1337 for both. Commands are written without response; replies
// arrive as notifications on the same characteristic.

var (
	serviceUUID        = bluetooth.New16BitUUID(0x1337)
	characteristicUUID = bluetooth.New16BitUUID(0x1337)
)

var ErrNotFound = errors.New("device not found during scan")

const notificationQueueLen = 32

// Display is a connected e-paper display. It implements oepl.Transport.
type Display struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	char    bluetooth.DeviceCharacteristic

	notifications chan []byte
	sniff         bool
}

// Connect scans for the display with the given MAC address, connects and
// subscribes to notifications. These displays only advertise in short
// windows between sleep cycles, so the whole sequence is retried until
// the context expires.
func Connect(ctx context.Context, address string) (*Display, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("enabling BLE adapter: %v", err)
	}

	d := &Display{
		adapter:       adapter,
		notifications: make(chan []byte, notificationQueueLen),
	}

	attempt := 0
	for {
		attempt++
		err := d.connectOnce(ctx, address)
		if err == nil {
			log.WithFields(log.Fields{"address": address, "attempt": attempt}).Info("connected")
			return d, nil
		}
		log.WithFields(log.Fields{"attempt": attempt, "error": err}).Debug("connect attempt failed")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("giving up on %s after %d attempts: %v", address, attempt, err)
		case <-time.After(200 * time.Millisecond):
		}
	}
}

func (d *Display) connectOnce(ctx context.Context, address string) error {
	result, err := d.scan(ctx, address)
	if err != nil {
		return err
	}

	device, err := d.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return err
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return err
	}
	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{characteristicUUID})
	if err != nil {
		device.Disconnect()
		return err
	}
	d.device = device
	d.char = chars[0]

	err = d.char.EnableNotifications(func(buf []byte) {
		frame := make([]byte, len(buf))
		copy(frame, buf)
		if d.sniff {
			log.Infof("notification < % 02x", frame)
		}
		select {
		case d.notifications <- frame:
		default:
			log.Warn("notification queue full, dropping frame")
		}
	})
	if err != nil {
		device.Disconnect()
		return err
	}
	return nil
}

// scan runs a single scan window and returns the first advertisement whose
// address matches. The window ends when the target is seen or after 1200ms.
func (d *Display) scan(ctx context.Context, address string) (bluetooth.ScanResult, error) {
	var found bluetooth.ScanResult
	seen := false

	stop := time.AfterFunc(1200*time.Millisecond, func() { d.adapter.StopScan() })
	defer stop.Stop()
	cancel := context.AfterFunc(ctx, func() { d.adapter.StopScan() })
	defer cancel()

	err := d.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
		if strings.EqualFold(result.Address.String(), address) {
			found = result
			seen = true
			adapter.StopScan()
		}
	})
	if err != nil {
		return found, err
	}
	if !seen {
		return found, ErrNotFound
	}
	return found, nil
}

// SetSniff toggles logging of raw frames in both directions.
func (d *Display) SetSniff(on bool) {
	d.sniff = on
}

// WriteFrame sends one command frame to the control characteristic.
func (d *Display) WriteFrame(p []byte) error {
	if d.sniff {
		log.Infof("command      > % 02x", p)
	}
	_, err := d.char.WriteWithoutResponse(p)
	return err
}

// ReceiveNotification returns the next queued notification frame.
func (d *Display) ReceiveNotification(ctx context.Context) ([]byte, error) {
	select {
	case frame := <-d.notifications:
		return frame, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close tears down the BLE connection.
func (d *Display) Close() {
	log.Debug("disconnecting")
	if err := d.device.Disconnect(); err != nil {
		log.WithField("error", err).Debug("disconnect failed")
	}
}

var _ oepl.Transport = (*Display)(nil)
