package hpmouse_test

import (
	"testing"

	"github.com/hpperiph/hpmctl/hpmouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want hpmouse.Header
		ok   bool
	}{
		{
			name: "plain",
			// signature 0x0fa1, composite 0, length 5, sequence 0
			data: []byte{0xa1, 0x0f, 0x05, 0x00},
			want: hpmouse.Header{Signature: 0x0fa1, Length: 5},
			ok:   true,
		},
		{
			name: "composite device in high nibble",
			data: []byte{0xa6, 0x3f, 0x05, 0x00},
			want: hpmouse.Header{Signature: 0x0fa6, CompositeDevice: 3, Length: 5},
			ok:   true,
		},
		{
			name: "length spans both bytes",
			// length 0x2ff = 767, sequence 2
			data: []byte{0xa1, 0x0f, 0xff, 0x0a},
			want: hpmouse.Header{Signature: 0x0fa1, Length: 0x2ff, Sequence: 2},
			ok:   true,
		},
		{
			name: "max sequence",
			data: []byte{0xa1, 0x0f, 0x00, 0xfc},
			want: hpmouse.Header{Signature: 0x0fa1, Sequence: 63},
			ok:   true,
		},
		{
			name: "short buffer",
			data: []byte{0xa1, 0x0f, 0x05},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ok := hpmouse.ParseHeader(tt.data)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, h)
		})
	}
}

func TestHeaderKind(t *testing.T) {
	h := hpmouse.Header{Signature: hpmouse.HP_SIGNATURE + 6}
	kind, ok := h.Kind()
	assert.True(t, ok)
	assert.Equal(t, hpmouse.PACKET_KIND_BATTERY, kind)

	h = hpmouse.Header{Signature: hpmouse.HP_SIGNATURE - 1}
	_, ok = h.Kind()
	assert.False(t, ok)
}

func TestEncodeReport1SingleFrame(t *testing.T) {
	payload := []byte{10, 5, 30, 60, 85}
	frames, err := hpmouse.EncodeReport1(hpmouse.PACKET_KIND_BATTERY, payload)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Len(t, frames[0], hpmouse.REPORT_1_FRAME_LEN)
	assert.Equal(t, hpmouse.REPORT_TYPE_VENDOR, frames[0][0])

	h, ok := hpmouse.ParseHeader(frames[0][1:])
	require.True(t, ok)
	assert.Equal(t, hpmouse.HP_SIGNATURE+6, h.Signature)
	assert.Equal(t, len(payload), h.Length)
	assert.Equal(t, byte(0), h.Sequence)
	assert.Equal(t, payload, frames[0][5:10])
}

func TestEncodeReport1MultiFrame(t *testing.T) {
	payload := make([]byte, 40)
	for i := range payload {
		payload[i] = byte(i)
	}

	frames, err := hpmouse.EncodeReport1(hpmouse.PACKET_KIND_BUTTONS, payload)
	require.NoError(t, err)
	require.Len(t, frames, 3)

	for i, frame := range frames {
		h, ok := hpmouse.ParseHeader(frame[1:])
		require.True(t, ok)
		assert.Equal(t, byte(i), h.Sequence)
		assert.Equal(t, len(payload), h.Length)
		assert.Equal(t, hpmouse.HP_SIGNATURE+14, h.Signature)
	}
}

func TestEncodeReport1TooLong(t *testing.T) {
	_, err := hpmouse.EncodeReport1(hpmouse.PACKET_KIND_FIRMWARE, make([]byte, hpmouse.MAX_PACKET_LEN+1))
	assert.Error(t, err)
}
