package hpmouse_test

import (
	"path/filepath"
	"testing"

	"github.com/hpperiph/hpmctl/hpmouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *hpmouse.Profile {
	return &hpmouse.Profile{
		DPI:        1200,
		LeftHanded: true,
		Buttons: []hpmouse.Button{
			{Id: 0, HostId: 0, PressType: 1, Action: hpmouse.EncodeAction(hpmouse.PRESET_RIGHT_CLICK.Entry().Binding)},
			{Id: 6, HostId: 0, PressType: 1, Action: hpmouse.EncodeAction(hpmouse.PRESET_COPY.Entry().Binding)},
			{Id: 2, HostId: 0, PressType: 1, Action: nil},
		},
	}
}

func TestProfileRoundTrip(t *testing.T) {
	p := testProfile()

	decoded, err := hpmouse.DecodeProfile(p.Encode())
	require.NoError(t, err)

	assert.Equal(t, p.DPI, decoded.DPI)
	assert.Equal(t, p.LeftHanded, decoded.LeftHanded)
	require.Len(t, decoded.Buttons, len(p.Buttons))
	for i := range p.Buttons {
		assert.Equal(t, p.Buttons[i].Id, decoded.Buttons[i].Id)
		assert.Equal(t, p.Buttons[i].PressType, decoded.Buttons[i].PressType)
		assert.Equal(t, append([]byte{}, p.Buttons[i].Action...), decoded.Buttons[i].Action)
	}
}

func TestProfileDetectsCorruption(t *testing.T) {
	raw := testProfile().Encode()
	raw[6] ^= 0x01 // flip a bit in the DPI field

	_, err := hpmouse.DecodeProfile(raw)
	assert.Error(t, err)
}

func TestProfileRejectsWrongMagic(t *testing.T) {
	raw := testProfile().Encode()
	raw[0] = 'X'

	_, err := hpmouse.DecodeProfile(raw)
	assert.Error(t, err)
}

func TestProfileRejectsTruncated(t *testing.T) {
	raw := testProfile().Encode()

	_, err := hpmouse.DecodeProfile(raw[:3])
	assert.Error(t, err)
}

func TestProfileFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mouse.hpmp")

	p := testProfile()
	require.NoError(t, hpmouse.SaveProfile(p, path))

	loaded, err := hpmouse.LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, p.DPI, loaded.DPI)
	assert.Equal(t, p.LeftHanded, loaded.LeftHanded)
	assert.Len(t, loaded.Buttons, len(p.Buttons))
}
