package oepl

import "fmt"

// DynamicConfig describes display geometry and pin assignments. The wire
// layout is a fixed prefix followed by optional pinout records, each gated by
// a flag bit, in flag bit order. The transfer engine only cares that it
// round trips; field meaning is between the firmware and its board.

const (
	CONFIG_FLAG_EPD   = 0x01
	CONFIG_FLAG_LED   = 0x02
	CONFIG_FLAG_NFC   = 0x04
	CONFIG_FLAG_FLASH = 0x08

	configFlagsKnown = CONFIG_FLAG_EPD | CONFIG_FLAG_LED | CONFIG_FLAG_NFC | CONFIG_FLAG_FLASH
	configPrefixLen  = 7
)

type EPDPinout struct {
	MOSI, CLK, CS, DC, RST, BUSY byte
}

type LEDPinout struct {
	LED1, LED2, LED3 byte
}

type NFCPinout struct {
	SDA, SCL, CSN, IRQ byte
}

type FlashPinout struct {
	MOSI, MISO, CLK, CS byte
}

type DynamicConfig struct {
	DisplayType uint16
	Width       uint16
	Height      uint16

	// Optional records; nil means absent (flag bit clear on the wire).
	EPD   *EPDPinout
	LED   *LEDPinout
	NFC   *NFCPinout
	Flash *FlashPinout
}

func (c *DynamicConfig) flags() byte {
	var flags byte
	if c.EPD != nil {
		flags |= CONFIG_FLAG_EPD
	}
	if c.LED != nil {
		flags |= CONFIG_FLAG_LED
	}
	if c.NFC != nil {
		flags |= CONFIG_FLAG_NFC
	}
	if c.Flash != nil {
		flags |= CONFIG_FLAG_FLASH
	}
	return flags
}

func (c *DynamicConfig) ToWire() []byte {
	payload := make([]byte, 0, configPrefixLen+6+3+4+4)
	payload = append(payload, c.flags())
	payload = append(payload, byte(c.DisplayType), byte(c.DisplayType>>8))
	payload = append(payload, byte(c.Width), byte(c.Width>>8))
	payload = append(payload, byte(c.Height), byte(c.Height>>8))
	if c.EPD != nil {
		payload = append(payload, c.EPD.MOSI, c.EPD.CLK, c.EPD.CS, c.EPD.DC, c.EPD.RST, c.EPD.BUSY)
	}
	if c.LED != nil {
		payload = append(payload, c.LED.LED1, c.LED.LED2, c.LED.LED3)
	}
	if c.NFC != nil {
		payload = append(payload, c.NFC.SDA, c.NFC.SCL, c.NFC.CSN, c.NFC.IRQ)
	}
	if c.Flash != nil {
		payload = append(payload, c.Flash.MOSI, c.Flash.MISO, c.Flash.CLK, c.Flash.CS)
	}
	return payload
}

func (c *DynamicConfig) FromWire(payload []byte) error {
	if len(payload) < configPrefixLen {
		return &MalformedFrameError{What: "DynamicConfig", Got: len(payload), Want: configPrefixLen}
	}
	flags := payload[0]
	if flags&^byte(configFlagsKnown) != 0 {
		return &MalformedFrameError{What: "DynamicConfig flags", Got: int(flags), Want: configFlagsKnown}
	}

	c.DisplayType = uint16(payload[1]) | uint16(payload[2])<<8
	c.Width = uint16(payload[3]) | uint16(payload[4])<<8
	c.Height = uint16(payload[5]) | uint16(payload[6])<<8
	c.EPD, c.LED, c.NFC, c.Flash = nil, nil, nil, nil

	rest := payload[configPrefixLen:]
	take := func(n int, what string) ([]byte, error) {
		if len(rest) < n {
			return nil, &MalformedFrameError{What: what, Got: len(rest), Want: n}
		}
		record := rest[:n]
		rest = rest[n:]
		return record, nil
	}

	if flags&CONFIG_FLAG_EPD != 0 {
		record, err := take(6, "DynamicConfig EPD pinout")
		if err != nil {
			return err
		}
		c.EPD = &EPDPinout{MOSI: record[0], CLK: record[1], CS: record[2], DC: record[3], RST: record[4], BUSY: record[5]}
	}
	if flags&CONFIG_FLAG_LED != 0 {
		record, err := take(3, "DynamicConfig LED pinout")
		if err != nil {
			return err
		}
		c.LED = &LEDPinout{LED1: record[0], LED2: record[1], LED3: record[2]}
	}
	if flags&CONFIG_FLAG_NFC != 0 {
		record, err := take(4, "DynamicConfig NFC pinout")
		if err != nil {
			return err
		}
		c.NFC = &NFCPinout{SDA: record[0], SCL: record[1], CSN: record[2], IRQ: record[3]}
	}
	if flags&CONFIG_FLAG_FLASH != 0 {
		record, err := take(4, "DynamicConfig flash pinout")
		if err != nil {
			return err
		}
		c.Flash = &FlashPinout{MOSI: record[0], MISO: record[1], CLK: record[2], CS: record[3]}
	}

	if len(rest) != 0 {
		return &MalformedFrameError{What: "DynamicConfig trailing bytes", Got: len(payload), Want: len(payload) - len(rest)}
	}
	return nil
}

func (c *DynamicConfig) String() string {
	res := fmt.Sprintf("DynamicConfig display type %#04x %dx%d flags %#02x", c.DisplayType, c.Width, c.Height, c.flags())
	if c.EPD != nil {
		res += fmt.Sprintf("\n  EPD  MOSI=%d CLK=%d CS=%d DC=%d RST=%d BUSY=%d", c.EPD.MOSI, c.EPD.CLK, c.EPD.CS, c.EPD.DC, c.EPD.RST, c.EPD.BUSY)
	}
	if c.LED != nil {
		res += fmt.Sprintf("\n  LED  %d %d %d", c.LED.LED1, c.LED.LED2, c.LED.LED3)
	}
	if c.NFC != nil {
		res += fmt.Sprintf("\n  NFC  SDA=%d SCL=%d CSN=%d IRQ=%d", c.NFC.SDA, c.NFC.SCL, c.NFC.CSN, c.NFC.IRQ)
	}
	if c.Flash != nil {
		res += fmt.Sprintf("\n  FLASH MOSI=%d MISO=%d CLK=%d CS=%d", c.Flash.MOSI, c.Flash.MISO, c.Flash.CLK, c.Flash.CS)
	}
	return res
}
