package hpmouse

import (
	"errors"
	"fmt"
)

var (
	ePayloadTooLong = errors.New("payload exceeds 10 bit length field")
	eTooManyFrames  = errors.New("payload exceeds 6 bit sequence space")
)

const (
	// Vendor protocol packets are carried in HID reports tagged with
	// report type 0x01. Reports with any other leading byte are regular
	// input reports and not handled here.
	REPORT_TYPE_VENDOR byte = 0x01

	// Signature base shared with the mouse firmware. The offset of a
	// packet signature from this base selects the packet kind.
	HP_SIGNATURE uint16 = 0x0fa0

	HEADER_LEN = 4

	// Each frame of an outgoing report-1 packet, header included.
	REPORT_1_FRAME_LEN = 20

	MAX_PACKET_LEN   = 0x3ff // 10 bit length field
	MAX_SEQUENCE     = 0x3f  // 6 bit sequence field
	MAX_COMPOSITE_ID = 0x0f  // 4 bit composite device field
)

type PacketKind uint16

const (
	PACKET_KIND_FIRMWARE PacketKind = 1
	PACKET_KIND_BATTERY  PacketKind = 6
	PACKET_KIND_BUTTONS  PacketKind = 14
	PACKET_KIND_MOUSE    PacketKind = 18
)

func (k PacketKind) String() string {
	switch k {
	case PACKET_KIND_FIRMWARE:
		return "FIRMWARE INFO"
	case PACKET_KIND_BATTERY:
		return "BATTERY STATUS"
	case PACKET_KIND_BUTTONS:
		return "BUTTON CONFIG"
	case PACKET_KIND_MOUSE:
		return "MOUSE SETTINGS"
	}
	return fmt.Sprintf("Unknown packet kind %d", uint16(k))
}

func u16FromBytes(low, high byte) uint16 {
	return uint16(low) | uint16(high)<<8
}

// Header is the 4 byte packet header at the start of every report-1 frame:
//
//	byte 0      signature low byte
//	byte 1      bits 0..3 signature high nibble, bits 4..7 composite device id
//	byte 2      length low byte
//	byte 3      bits 0..1 length high bits, bits 2..7 sequence number
//
// Length counts logical payload bytes across all frames of the packet,
// sequence numbers the frames within it.
type Header struct {
	Signature       uint16
	CompositeDevice byte
	Length          int
	Sequence        byte
}

// ParseHeader reads a header from the first 4 bytes of data. ok is false
// when fewer than 4 bytes are available.
func ParseHeader(data []byte) (h Header, ok bool) {
	if len(data) < HEADER_LEN {
		return Header{}, false
	}
	h.Signature = u16FromBytes(data[0], data[1]&0x0f)
	h.CompositeDevice = (data[1] >> 4) & 0x0f
	h.Length = int(u16FromBytes(data[2], data[3]&0x03))
	h.Sequence = (data[3] >> 2) & 0x3f
	return h, true
}

// Kind derives the packet kind from the signature offset. ok is false for
// signatures below the device base; such reports are not vendor packets
// and must be ignored.
func (h Header) Kind() (kind PacketKind, ok bool) {
	if h.Signature < HP_SIGNATURE {
		return 0, false
	}
	return PacketKind(h.Signature - HP_SIGNATURE), true
}

func (h Header) toWire() [HEADER_LEN]byte {
	return [HEADER_LEN]byte{
		byte(h.Signature),
		byte(h.Signature>>8)&0x0f | (h.CompositeDevice&0x0f)<<4,
		byte(h.Length),
		byte(h.Length>>8)&0x03 | h.Sequence<<2,
	}
}

func (h Header) String() string {
	kindStr := "below signature base"
	if kind, ok := h.Kind(); ok {
		kindStr = kind.String()
	}
	return fmt.Sprintf("signature %#04x (%s) composite device %d length %d sequence %d",
		h.Signature, kindStr, h.CompositeDevice, h.Length, h.Sequence)
}

// EncodeReport1 splits payload into one or more report-1 frames of
// REPORT_1_FRAME_LEN bytes, each prefixed with the report type tag and a
// header carrying the full payload length and an incrementing sequence
// number. The device reassembles them by the same rules as Events does
// for inbound traffic.
func EncodeReport1(kind PacketKind, payload []byte) (frames [][]byte, err error) {
	if len(payload) > MAX_PACKET_LEN {
		return nil, ePayloadTooLong
	}

	h := Header{
		Signature: HP_SIGNATURE + uint16(kind),
		Length:    len(payload),
	}

	// Frames are always full size, the declared length tells the device
	// where the padding starts.
	chunkLen := REPORT_1_FRAME_LEN - HEADER_LEN - 1
	for {
		chunk := payload
		if len(chunk) > chunkLen {
			chunk = chunk[:chunkLen]
		}
		payload = payload[len(chunk):]

		frame := make([]byte, REPORT_1_FRAME_LEN)
		frame[0] = REPORT_TYPE_VENDOR
		hdr := h.toWire()
		copy(frame[1:], hdr[:])
		copy(frame[1+HEADER_LEN:], chunk)
		frames = append(frames, frame)

		if len(payload) == 0 {
			return frames, nil
		}
		if h.Sequence == MAX_SEQUENCE {
			return nil, eTooManyFrames
		}
		h.Sequence++
	}
}
