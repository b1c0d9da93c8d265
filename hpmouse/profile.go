package hpmouse

import (
	"errors"
	"fmt"
	"os"

	"github.com/sigurn/crc16"
)

var (
	eProfileMagic     = errors.New("not a profile file, magic bytes missing")
	eProfileVersion   = errors.New("unsupported profile file version")
	eProfileTruncated = errors.New("profile file truncated")
	eProfileCRC       = errors.New("profile file has wrong CRC")
)

const (
	profileMagic   = "HPMP"
	profileVersion = 0x01
)

var profileCRCTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// Profile is a saved mouse configuration. Button records use the same
// id/host/press/action layout as BUTTON CONFIG packets, so a loaded
// profile can be replayed through SetButton directly.
type Profile struct {
	DPI        uint16
	LeftHanded bool
	Buttons    []Button
}

func (p *Profile) String() string {
	res := fmt.Sprintf("Profile: dpi %d, left handed %v, %d buttons", p.DPI, p.LeftHanded, len(p.Buttons))
	for _, b := range p.Buttons {
		res += "\n\t" + b.String()
	}
	return res
}

// Encode serializes the profile: magic, version, fields, button records,
// and a trailing CRC16-CCITT (FALSE) over everything before the trailer.
func (p *Profile) Encode() []byte {
	out := []byte(profileMagic)
	out = append(out, profileVersion)
	out = append(out, byte(p.DPI), byte(p.DPI>>8))
	if p.LeftHanded {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = append(out, byte(len(p.Buttons)))
	for _, b := range p.Buttons {
		out = append(out, b.Id, b.HostId, b.PressType, byte(len(b.Action)))
		out = append(out, b.Action...)
	}

	crc := crc16.Checksum(out, profileCRCTable)
	return append(out, byte(crc), byte(crc>>8))
}

// DecodeProfile parses and validates a profile blob.
func DecodeProfile(raw []byte) (p *Profile, err error) {
	if len(raw) < len(profileMagic)+2 {
		return nil, eProfileTruncated
	}
	if string(raw[:len(profileMagic)]) != profileMagic {
		return nil, eProfileMagic
	}

	body, trailer := raw[:len(raw)-2], raw[len(raw)-2:]
	crc := u16FromBytes(trailer[0], trailer[1])
	if crc16.Checksum(body, profileCRCTable) != crc {
		return nil, eProfileCRC
	}

	data := body[len(profileMagic):]
	if len(data) < 5 {
		return nil, eProfileTruncated
	}
	if data[0] != profileVersion {
		return nil, eProfileVersion
	}

	p = &Profile{
		DPI:        u16FromBytes(data[1], data[2]),
		LeftHanded: data[3] != 0,
	}
	count := int(data[4])
	data = data[5:]

	for i := 0; i < count; i++ {
		if len(data) < 4 {
			return nil, eProfileTruncated
		}
		size := int(data[3])
		b := Button{Id: data[0], HostId: data[1], PressType: data[2]}
		data = data[4:]
		if len(data) < size {
			return nil, eProfileTruncated
		}
		b.Action = append([]byte{}, data[:size]...)
		data = data[size:]
		p.Buttons = append(p.Buttons, b)
	}

	return p, nil
}

// SaveProfile writes the profile to a file.
func SaveProfile(p *Profile, path string) error {
	return os.WriteFile(path, p.Encode(), 0644)
}

// LoadProfile reads and validates a profile file.
func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeProfile(raw)
}

// Apply replays the profile onto the device.
func (p *Profile) Apply(u *LocalUSBMouse) error {
	if err := u.SetDPI(p.DPI); err != nil {
		return err
	}
	if err := u.SetLeftHanded(p.LeftHanded); err != nil {
		return err
	}
	for _, b := range p.Buttons {
		if err := u.SetButton(b); err != nil {
			return err
		}
	}
	return nil
}
