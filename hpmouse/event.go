package hpmouse

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

// Protocol consistency violations surfaced by the event iterator. Each
// resets reassembly to idle, so a desynced stream costs packets, not the
// whole decode session. Test with errors.Is.
var (
	ErrPacketOverrun  = errors.New("new packet started while another is incomplete")
	ErrPacketMismatch = errors.New("continuation does not belong to the packet in progress")
	ErrSequenceGap    = errors.New("continuation sequence out of order")
)

// Event is one decoded vendor packet. The set of implementations is
// closed: FirmwareEvent, BatteryEvent, ButtonsEvent, MouseEvent.
type Event interface {
	fmt.Stringer
	event()
}

type FirmwareVersion struct {
	Major uint16
	Minor uint16
	Patch uint16
}

func (v FirmwareVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// FirmwareEvent reports firmware identity (packet kind 1).
type FirmwareEvent struct {
	Version FirmwareVersion
	Device  string
	Serial  string
}

func (e *FirmwareEvent) event() {}

func (e *FirmwareEvent) String() string {
	return fmt.Sprintf("Firmware: version %s, device %q, serial %q", e.Version, e.Device, e.Serial)
}

// BatteryEvent reports battery status and thresholds (packet kind 6).
type BatteryEvent struct {
	LowLevel        uint8
	CritLevel       uint8
	PowerOffTimeout uint8
	AutoReportDelay uint8
	Level           uint8
}

func (e *BatteryEvent) event() {}

func (e *BatteryEvent) String() string {
	return fmt.Sprintf("Battery: %d%% (low %d%%, critical %d%%, power off %ds, auto report %ds)",
		e.Level, e.LowLevel, e.CritLevel, e.PowerOffTimeout, e.AutoReportDelay)
}

// ButtonsEvent reports button configuration capabilities and the currently
// programmed buttons (packet kind 14).
type ButtonsEvent struct {
	TotalButtons      uint8
	ProgrammedButtons uint8
	HostId            uint8

	SupportLongPress   bool
	SupportDoublePress bool
	SupportDownUpPress bool
	SupportSimulate    bool
	SupportProgramStop bool

	Buttons []Button
}

func (e *ButtonsEvent) event() {}

func (e *ButtonsEvent) String() string {
	res := fmt.Sprintf("Buttons: %d total, %d programmed, host %d", e.TotalButtons, e.ProgrammedButtons, e.HostId)
	res += fmt.Sprintf("\n\tlong press: %v, double press: %v, down/up press: %v, simulate: %v, program stop: %v",
		e.SupportLongPress, e.SupportDoublePress, e.SupportDownUpPress, e.SupportSimulate, e.SupportProgramStop)
	for _, b := range e.Buttons {
		res += "\n\t" + b.String()
	}
	return res
}

// MouseEvent reports pointer and sensor settings (packet kind 18). A
// NbSensitivityWheel of 0 means the wheel is absent.
type MouseEvent struct {
	MaxDPI  uint16
	MinDPI  uint16
	DPI     uint16
	StepDPI uint16

	NbSensitivityWheel1 uint8
	SensitivityWheel1   uint8
	NbSensitivityWheel2 uint8
	SensitivityWheel2   uint8

	HostId    uint8
	CutOffMax uint8
	CutOff    uint8

	SupportLeftHanded    bool
	LeftHanded           bool
	SupportNoSaveToFlash bool
}

func (e *MouseEvent) event() {}

func (e *MouseEvent) String() string {
	res := fmt.Sprintf("Mouse: dpi %d (min %d, max %d, step %d), host %d, cut off %d/%d",
		e.DPI, e.MinDPI, e.MaxDPI, e.StepDPI, e.HostId, e.CutOff, e.CutOffMax)
	if e.NbSensitivityWheel1 > 0 {
		res += fmt.Sprintf("\n\twheel 1 sensitivity %d of %d", e.SensitivityWheel1, e.NbSensitivityWheel1)
	}
	if e.NbSensitivityWheel2 > 0 {
		res += fmt.Sprintf("\n\twheel 2 sensitivity %d of %d", e.SensitivityWheel2, e.NbSensitivityWheel2)
	}
	res += fmt.Sprintf("\n\tleft handed: %v (supported: %v), no save to flash supported: %v",
		e.LeftHanded, e.SupportLeftHanded, e.SupportNoSaveToFlash)
	return res
}

func decodeFirmware(data []byte) Event {
	if len(data) <= 3 {
		return nil
	}

	version := u16FromBytes(data[0], data[1])

	// After the version word and a reserved byte, the payload holds
	// length prefixed strings: device name, then serial number.
	var items [][]byte
	i := 4 // version word plus two reserved bytes
	for i < len(data) {
		size := int(data[i])
		i++
		end := i + size
		if end > len(data) {
			end = len(data)
		}
		items = append(items, data[i:end])
		i = end
	}
	if len(items) < 2 || !utf8.Valid(items[0]) || !utf8.Valid(items[1]) {
		return nil
	}

	return &FirmwareEvent{
		Version: FirmwareVersion{
			Major: version / 1000,
			Minor: (version % 1000) / 10,
			Patch: version % 10,
		},
		Device: string(items[0]),
		Serial: string(items[1]),
	}
}

func decodeBattery(data []byte) Event {
	if len(data) <= 4 {
		return nil
	}

	return &BatteryEvent{
		LowLevel:        data[0],
		CritLevel:       data[1],
		PowerOffTimeout: data[2],
		AutoReportDelay: data[3],
		Level:           data[4],
	}
}

func decodeButtons(data []byte) Event {
	// Leading command discriminator, 0x00 on device to host reads.
	if len(data) == 0 || data[0] != 0 {
		return nil
	}
	if len(data) <= 4 {
		return nil
	}

	flags := data[4]
	event := &ButtonsEvent{
		TotalButtons:      data[1],
		ProgrammedButtons: data[2],
		HostId:            data[3],

		SupportLongPress:   flags&(1<<0) != 0,
		SupportDoublePress: flags&(1<<1) != 0,
		SupportDownUpPress: flags&(1<<2) != 0,
		SupportSimulate:    flags&(1<<3) != 0,
		SupportProgramStop: flags&(1<<4) != 0,
	}

	event.Buttons = make([]Button, 0, event.ProgrammedButtons)
	i := 5
	for len(event.Buttons) < int(event.ProgrammedButtons) {
		if len(data) <= i+3 {
			// Truncated record, stop without a partial entry.
			break
		}

		size := int(data[i+3])
		button := Button{
			Id:        data[i],
			HostId:    data[i+1],
			PressType: data[i+2],
		}
		i += 4

		end := i + size
		if end > len(data) {
			end = len(data)
		}
		button.Action = append([]byte{}, data[i:end]...)
		i = end

		event.Buttons = append(event.Buttons, button)
	}

	// Diagnostic only, action decode failures never fail the event.
	for _, button := range event.Buttons {
		ops, err := DecodeAction(button.Action)
		if err != nil {
			log.Debugf("button %d: undecodable action % 02x: %v", button.Id, button.Action, err)
			continue
		}
		log.Debugf("button %d action: %v", button.Id, ops)
	}

	return event
}

func decodeMouse(data []byte) Event {
	if len(data) == 0 || data[0] != 0 {
		return nil
	}
	if len(data) <= 14 {
		return nil
	}

	flags := data[14]
	return &MouseEvent{
		MaxDPI:  u16FromBytes(data[1], data[2]),
		MinDPI:  u16FromBytes(data[3], data[4]),
		DPI:     u16FromBytes(data[5], data[6]),
		StepDPI: u16FromBytes(data[7], data[8]),

		NbSensitivityWheel1: data[9] & 0x0f,
		SensitivityWheel1:   data[9] >> 4,
		NbSensitivityWheel2: data[10] & 0x0f,
		SensitivityWheel2:   data[10] >> 4,

		HostId:    data[11],
		CutOffMax: data[12],
		CutOff:    data[13],

		SupportLeftHanded:    flags&(1<<0) != 0,
		LeftHanded:           flags&(1<<1) != 0,
		SupportNoSaveToFlash: flags&(1<<2) != 0,
	}
}

// Transport supplies raw HID reports. Read blocks until a report arrives
// and returns 0 bytes at end of stream. LocalUSBMouse implements it; tests
// feed canned frames.
type Transport interface {
	Read(p []byte) (n int, err error)
}

// Events is a pull based decoder over a transport. It owns the reassembly
// state for multi frame packets; exactly one Events must pull from a given
// transport at a time.
type Events struct {
	dev Transport
	buf []byte

	accumulating bool
	incoming     []byte
	header       Header
}

// ReadEvents returns an event iterator over dev.
func ReadEvents(dev Transport) *Events {
	return &Events{
		dev: dev,
		buf: make([]byte, 4096),
	}
}

// Next blocks until the next decoded event. It returns io.EOF once the
// transport reports end of stream and passes transport errors through;
// after either, the iterator is exhausted. Protocol violations come back
// as ErrPacketOverrun, ErrPacketMismatch or ErrSequenceGap with the
// reassembly state reset, and Next may keep being called.
func (e *Events) Next() (Event, error) {
	for {
		n, err := e.dev.Read(e.buf)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, io.EOF
		}
		log.Debugf("HID read %d bytes: % 02x", n, e.buf[:n])

		if e.buf[0] != REPORT_TYPE_VENDOR {
			// Report type not handled.
			continue
		}

		event, err := e.vendorReport(e.buf[1:n])
		if err != nil {
			return nil, err
		}
		if event != nil {
			return event, nil
		}
	}
}

func (e *Events) reset() {
	e.accumulating = false
	e.incoming = e.incoming[:0]
	e.header = Header{}
}

// vendorReport feeds one report-1 frame through the reassembly state
// machine and, on packet completion, the kind decoder. It returns nil, nil
// for frames that neither complete a packet nor violate the protocol.
func (e *Events) vendorReport(data []byte) (Event, error) {
	header, ok := ParseHeader(data)
	if !ok {
		return nil, nil
	}

	kind, ok := header.Kind()
	log.Debugf("frame: %s", header)
	if !ok {
		// Not a vendor packet signature, ignore.
		return nil, nil
	}

	if header.Sequence == 0 {
		if e.accumulating {
			e.reset()
			return nil, fmt.Errorf("%w: %s", ErrPacketOverrun, header)
		}
		e.accumulating = true
		e.header = header
	} else {
		if !e.accumulating || header.Signature != e.header.Signature || header.Length != e.header.Length {
			e.reset()
			return nil, fmt.Errorf("%w: %s", ErrPacketMismatch, header)
		}
		if header.Sequence != e.header.Sequence+1 {
			e.reset()
			return nil, fmt.Errorf("%w: got %d, want %d", ErrSequenceGap, header.Sequence, e.header.Sequence+1)
		}
		e.header.Sequence++
	}

	e.incoming = append(e.incoming, data[HEADER_LEN:]...)

	if len(e.incoming) < header.Length {
		// Wait for the next frame.
		return nil, nil
	}

	packet := make([]byte, header.Length)
	copy(packet, e.incoming)
	e.reset()

	switch kind {
	case PACKET_KIND_FIRMWARE:
		return decodeFirmware(packet), nil
	case PACKET_KIND_BATTERY:
		return decodeBattery(packet), nil
	case PACKET_KIND_BUTTONS:
		return decodeButtons(packet), nil
	case PACKET_KIND_MOUSE:
		return decodeMouse(packet), nil
	}

	// Unrecognized kind, drop the completed packet.
	return nil, nil
}
