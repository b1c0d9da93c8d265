package hpmouse

import (
	"errors"
	"fmt"
	"strings"
)

var (
	eBadOpCode       = errors.New("unknown action opcode")
	eTruncatedAction = errors.New("truncated action byte sequence")
)

// Button is one programmed button record inside a BUTTON CONFIG packet.
// Action carries the encoded op sequence; the packet decoder treats it as
// opaque bytes, DecodeAction turns it into something readable.
type Button struct {
	Id        uint8
	HostId    uint8
	PressType uint8
	Action    []byte
}

func (b Button) String() string {
	res := fmt.Sprintf("button %d (host %d, press type %#02x)", b.Id, b.HostId, b.PressType)
	ops, err := DecodeAction(b.Action)
	if err != nil {
		return res + fmt.Sprintf(": undecodable action % 02x", b.Action)
	}
	if len(ops) == 0 {
		return res + ": no action"
	}
	strs := make([]string, len(ops))
	for i, op := range ops {
		strs[i] = op.String()
	}
	return res + ": " + strings.Join(strs, ", ")
}

type opCode byte

const (
	OP_CODE_KILL  opCode = 0x00
	OP_CODE_MOUSE opCode = 0x01
	OP_CODE_KEY   opCode = 0x02
	OP_CODE_MEDIA opCode = 0x03

	// Bit 7 of the opcode byte marks an auto-release op.
	opAutoFlag byte = 0x80
)

// Op is one step of a button action: a mouse action, a key combo, a media
// key, or kill (button disabled). The set is closed.
type Op interface {
	fmt.Stringer
	appendWire(dst []byte) []byte
}

// KillOp disables the button entirely.
type KillOp struct{}

func (KillOp) String() string { return "KILL" }

func (KillOp) appendWire(dst []byte) []byte {
	return append(dst, byte(OP_CODE_KILL))
}

// MouseOp presses mouse buttons and/or moves the pointer and wheels.
type MouseOp struct {
	Auto    bool
	Buttons byte
	DX      int8
	DY      int8
	WheelV  int8
	WheelH  int8
}

func (o MouseOp) String() string {
	return fmt.Sprintf("MOUSE auto=%v buttons=%#02x dx=%d dy=%d wheelV=%d wheelH=%d",
		o.Auto, o.Buttons, o.DX, o.DY, o.WheelV, o.WheelH)
}

func (o MouseOp) appendWire(dst []byte) []byte {
	dst = append(dst, opByte(OP_CODE_MOUSE, o.Auto))
	return append(dst, o.Buttons, byte(o.DX), byte(o.DY), byte(o.WheelV), byte(o.WheelH))
}

// KeyOp presses a keyboard combo, given as HID keyboard usage ids.
type KeyOp struct {
	Auto  bool
	Codes []uint16
}

func (o KeyOp) String() string {
	return fmt.Sprintf("KEY auto=%v codes=%#04x", o.Auto, o.Codes)
}

func (o KeyOp) appendWire(dst []byte) []byte {
	dst = append(dst, opByte(OP_CODE_KEY, o.Auto))
	return appendCodes(dst, o.Codes)
}

// MediaOp presses a media key, given as HID consumer page usage ids.
type MediaOp struct {
	Auto  bool
	Codes []uint16
}

func (o MediaOp) String() string {
	return fmt.Sprintf("MEDIA auto=%v codes=%#04x", o.Auto, o.Codes)
}

func (o MediaOp) appendWire(dst []byte) []byte {
	dst = append(dst, opByte(OP_CODE_MEDIA, o.Auto))
	return appendCodes(dst, o.Codes)
}

func opByte(code opCode, auto bool) byte {
	b := byte(code)
	if auto {
		b |= opAutoFlag
	}
	return b
}

func appendCodes(dst []byte, codes []uint16) []byte {
	dst = append(dst, byte(len(codes)))
	for _, c := range codes {
		dst = append(dst, byte(c), byte(c>>8))
	}
	return dst
}

// EncodeAction serializes an op sequence into the wire form stored in a
// button record. An empty op list encodes to an empty byte sequence.
func EncodeAction(ops []Op) []byte {
	var out []byte
	for _, op := range ops {
		out = op.appendWire(out)
	}
	return out
}

// DecodeAction parses a button action byte sequence. It is the inverse of
// EncodeAction. An empty sequence decodes to no ops.
func DecodeAction(data []byte) (ops []Op, err error) {
	for len(data) > 0 {
		auto := data[0]&opAutoFlag != 0
		code := opCode(data[0] &^ opAutoFlag)
		data = data[1:]

		switch code {
		case OP_CODE_KILL:
			ops = append(ops, KillOp{})
		case OP_CODE_MOUSE:
			if len(data) < 5 {
				return nil, eTruncatedAction
			}
			ops = append(ops, MouseOp{
				Auto:    auto,
				Buttons: data[0],
				DX:      int8(data[1]),
				DY:      int8(data[2]),
				WheelV:  int8(data[3]),
				WheelH:  int8(data[4]),
			})
			data = data[5:]
		case OP_CODE_KEY, OP_CODE_MEDIA:
			if len(data) < 1 {
				return nil, eTruncatedAction
			}
			n := int(data[0])
			data = data[1:]
			if len(data) < 2*n {
				return nil, eTruncatedAction
			}
			codes := make([]uint16, n)
			for i := 0; i < n; i++ {
				codes[i] = u16FromBytes(data[2*i], data[2*i+1])
			}
			data = data[2*n:]
			if code == OP_CODE_KEY {
				ops = append(ops, KeyOp{Auto: auto, Codes: codes})
			} else {
				ops = append(ops, MediaOp{Auto: auto, Codes: codes})
			}
		default:
			return nil, eBadOpCode
		}
	}
	return ops, nil
}
