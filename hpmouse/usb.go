package hpmouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/gousb"
	log "github.com/sirupsen/logrus"
)

var eNoMouse = errors.New("no supported HP mouse found")

const (
	VID gousb.ID = 0x03f0 // HP

	PID_HP_930_CREATOR gousb.ID = 0x554a // 930 Creator wireless mouse
	PID_HP_935_CREATOR gousb.ID = 0x594a // 935 Creator wireless mouse
)

// Command discriminators for outgoing button/mouse packets. Reads echo
// back with COMMAND_READ, which is why the decoders require a zero first
// byte.
const (
	COMMAND_READ            byte = 0x00
	COMMAND_WRITE           byte = 0x01
	COMMAND_SET_LEFT_HANDED byte = 0x02
)

// LocalUSBMouse is the production Transport over a locally attached HP
// mouse (or its wireless dongle). The handle may be shared, but only one
// Events iterator should pull from it at a time.
type LocalUSBMouse struct {
	UsbCtx      *gousb.Context
	Dev         *gousb.Device
	Config      *gousb.Config
	IfaceVendor *gousb.Interface
	EpInVendor  *gousb.InEndpoint

	ctx    context.Context
	cancel context.CancelFunc

	showInOut bool
}

func NewLocalUSBMouse() (res *LocalUSBMouse, err error) {
	res = &LocalUSBMouse{}

	res.UsbCtx = gousb.NewContext()

	if res.Dev, err = res.UsbCtx.OpenDeviceWithVIDPID(VID, PID_HP_930_CREATOR); err == nil && res.Dev != nil {
		log.Info("HP 930 Creator mouse found")
	} else if res.Dev, err = res.UsbCtx.OpenDeviceWithVIDPID(VID, PID_HP_935_CREATOR); err == nil && res.Dev != nil {
		log.Info("HP 935 Creator mouse found")
	} else {
		res.Close()
		return nil, eNoMouse
	}

	res.Config, err = res.Dev.Config(1)
	if err != nil {
		res.Close()
		return nil, errors.New("couldn't retrieve config 1 of mouse")
	}

	log.Debug("Using USB config: ", res.Config.Desc.String())

	res.Dev.SetAutoDetach(true)

Outer:
	for _, ifaceDesc := range res.Config.Desc.Interfaces {
		for _, ifaceSettings := range ifaceDesc.AltSettings {
			for _, epDesc := range ifaceSettings.Endpoints {
				if epDesc.Direction != gousb.EndpointDirectionIn || epDesc.TransferType != gousb.TransferTypeInterrupt {
					continue
				}
				if epDesc.MaxPacketSize < REPORT_1_FRAME_LEN {
					continue
				}
				// This is the vendor protocol EP
				res.IfaceVendor, err = res.Config.Interface(ifaceSettings.Number, ifaceSettings.Alternate)
				if err != nil {
					res.Close()
					return nil, errors.New("couldn't access vendor USB interface")
				}
				log.Debug("Vendor interface: ", res.IfaceVendor.String())

				res.EpInVendor, err = res.IfaceVendor.InEndpoint(epDesc.Number)
				if err != nil {
					res.Close()
					return nil, errors.New("couldn't access vendor USB interface IN endpoint")
				}
				log.Debug("Vendor interface IN endpoint: ", res.EpInVendor.String())
				break Outer
			}
		}
	}

	if res.EpInVendor == nil {
		res.Close()
		return nil, errors.New("couldn't find EP for vendor input reports")
	}

	res.ctx, res.cancel = context.WithCancel(context.Background())

	return res, nil
}

// SetShowInOut toggles dumping of raw traffic to stdout.
func (u *LocalUSBMouse) SetShowInOut(show bool) {
	u.showInOut = show
}

// Read blocks until the next HID report and copies it into p. A zero
// count without error signals end of stream.
func (u *LocalUSBMouse) Read(p []byte) (n int, err error) {
	n, err = u.EpInVendor.ReadContext(u.ctx, p)
	if err != nil {
		return 0, err
	}
	if u.showInOut {
		fmt.Printf("In: % #x\n", p[:n])
	}
	return n, nil
}

// SendReport writes one raw HID output report via SET_REPORT.
func (u *LocalUSBMouse) SendReport(frame []byte) (err error) {
	if u.showInOut {
		fmt.Printf("Out: % #x\n", frame)
	}
	_, err = u.Dev.Control(
		0x21,                                 //bit7: Host to device, bit6..5: Class: 0x1, bit4..0: Interface
		0x09,                                 //request: 0x09 SET_REPORT
		0x0200|uint16(frame[0]),              //Output report, report ID from first byte
		uint16(u.IfaceVendor.Setting.Number), //interface index
		frame,                                //payload
	)
	return err
}

// WriteReport1 sends a report-1 packet, splitting the payload across as
// many frames as the 10 bit length requires.
func (u *LocalUSBMouse) WriteReport1(kind PacketKind, payload []byte) (err error) {
	frames, err := EncodeReport1(kind, payload)
	if err != nil {
		return err
	}
	for _, frame := range frames {
		if err = u.SendReport(frame); err != nil {
			return err
		}
	}
	return nil
}

// QueryFirmware requests a FIRMWARE INFO packet.
func (u *LocalUSBMouse) QueryFirmware() error {
	return u.WriteReport1(PACKET_KIND_FIRMWARE, nil)
}

// QueryBattery requests a BATTERY STATUS packet.
func (u *LocalUSBMouse) QueryBattery() error {
	return u.WriteReport1(PACKET_KIND_BATTERY, nil)
}

// QueryButtons requests a BUTTON CONFIG packet for the given host slot.
func (u *LocalUSBMouse) QueryButtons(hostId byte) error {
	return u.WriteReport1(PACKET_KIND_BUTTONS, []byte{COMMAND_READ, hostId})
}

// QueryMouse requests a MOUSE SETTINGS packet for the given host slot.
func (u *LocalUSBMouse) QueryMouse(hostId byte) error {
	return u.WriteReport1(PACKET_KIND_MOUSE, []byte{COMMAND_READ, hostId})
}

// SetDPI writes the sensor resolution.
func (u *LocalUSBMouse) SetDPI(dpi uint16) error {
	return u.WriteReport1(PACKET_KIND_MOUSE, []byte{COMMAND_WRITE, byte(dpi), byte(dpi >> 8)})
}

// SetLeftHanded switches the handedness mode.
func (u *LocalUSBMouse) SetLeftHanded(enabled bool) error {
	flag := byte(0)
	if enabled {
		flag = 1
	}
	return u.WriteReport1(PACKET_KIND_MOUSE, []byte{COMMAND_SET_LEFT_HANDED, flag})
}

// SetButton programs one button record, action bytes included.
func (u *LocalUSBMouse) SetButton(b Button) error {
	payload := []byte{COMMAND_WRITE, b.Id, b.HostId, b.PressType, byte(len(b.Action))}
	payload = append(payload, b.Action...)
	return u.WriteReport1(PACKET_KIND_BUTTONS, payload)
}

func (u *LocalUSBMouse) Close() {
	if u.cancel != nil {
		u.cancel()
	}

	if u.IfaceVendor != nil {
		u.IfaceVendor.Close()
	}

	if u.Config != nil {
		u.Config.Close()
	}

	if u.Dev != nil {
		u.Dev.SetAutoDetach(false)
		u.Dev.Close()
	}

	if u.UsbCtx != nil {
		u.UsbCtx.Close()
	}
}
