package hpmouse_test

import (
	"testing"

	"github.com/hpperiph/hpmctl/hpmouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvertibleBindings(t *testing.T) {
	for _, category := range hpmouse.Bindings {
		for _, entry := range category.Entries {
			ops, err := hpmouse.DecodeAction(hpmouse.EncodeAction(entry.Binding))
			require.NoError(t, err, "entry %q", entry.Id)
			assert.Equal(t, entry.Binding, ops, "entry %q", entry.Id)
		}
	}
}

func TestDecodeActionEmpty(t *testing.T) {
	ops, err := hpmouse.DecodeAction(nil)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestDecodeActionErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "unknown opcode", data: []byte{0x7f}},
		{name: "mouse op cut short", data: []byte{0x01, 0x02}},
		{name: "key op missing count", data: []byte{0x02}},
		{name: "key op missing codes", data: []byte{0x02, 0x02, 0xe0, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hpmouse.DecodeAction(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestDecodeActionMixedSequence(t *testing.T) {
	ops := []hpmouse.Op{
		hpmouse.MouseOp{Auto: true, Buttons: 8},
		hpmouse.KeyOp{Auto: true, Codes: []uint16{hpmouse.MOD_Ctrl, hpmouse.KEY_C}},
		hpmouse.MediaOp{Codes: []uint16{hpmouse.MEDIA_Mute}},
		hpmouse.KillOp{},
	}

	decoded, err := hpmouse.DecodeAction(hpmouse.EncodeAction(ops))
	require.NoError(t, err)
	assert.Equal(t, ops, decoded)
}

func TestEntryForBinding(t *testing.T) {
	entry := hpmouse.EntryForBinding([]hpmouse.Op{hpmouse.MouseOp{Auto: true, Buttons: 2}})
	require.NotNil(t, entry)
	assert.Equal(t, hpmouse.PRESET_RIGHT_CLICK, entry.Id)

	assert.Nil(t, hpmouse.EntryForBinding([]hpmouse.Op{hpmouse.MouseOp{Auto: true, Buttons: 0x42}}))
}

func TestDefaultBindings(t *testing.T) {
	for _, b := range hpmouse.HardwareButtons() {
		entry := b.DefaultBinding()
		require.NotNil(t, entry, "button %s", b)
		assert.NotEmpty(t, entry.Binding, "button %s", b)
	}
}

func TestPresetEntryLookup(t *testing.T) {
	entry := hpmouse.PRESET_PLAY_PAUSE.Entry()
	require.NotNil(t, entry)
	assert.Equal(t, "Play / Pause", entry.Label)

	assert.Nil(t, hpmouse.PresetBinding("no-such-preset").Entry())
}
