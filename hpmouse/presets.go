package hpmouse

import "fmt"

// HID usage ids used by the preset catalog. Key and modifier codes are
// keyboard page usages, MEDIA_* are consumer page usages.
const (
	KEY_A   uint16 = 0x04
	KEY_C   uint16 = 0x06
	KEY_F   uint16 = 0x09
	KEY_V   uint16 = 0x19
	KEY_X   uint16 = 0x1b
	KEY_Y   uint16 = 0x1c
	KEY_Z   uint16 = 0x1d
	KEY_Tab uint16 = 0x2b

	MOD_Ctrl  uint16 = 0xe0
	MOD_Super uint16 = 0xe3

	MEDIA_NextSong     uint16 = 0xb5
	MEDIA_PreviousSong uint16 = 0xb6
	MEDIA_PlayPause    uint16 = 0xcd
	MEDIA_Mute         uint16 = 0xe2
	MEDIA_VolumeUp     uint16 = 0xe9
	MEDIA_VolumeDown   uint16 = 0xea
)

// HardwareButton identifies a physical button by the id the firmware
// reports in button records.
type HardwareButton uint8

const (
	BUTTON_RIGHT HardwareButton = iota
	BUTTON_MIDDLE
	BUTTON_LEFT_BOTTOM
	BUTTON_LEFT_TOP
	BUTTON_SCROLL_LEFT
	BUTTON_SCROLL_RIGHT
	BUTTON_LEFT_CENTER

	numHardwareButtons
)

func (b HardwareButton) String() string {
	switch b {
	case BUTTON_RIGHT:
		return "Right"
	case BUTTON_MIDDLE:
		return "Middle"
	case BUTTON_LEFT_BOTTOM:
		return "Left Bottom"
	case BUTTON_LEFT_TOP:
		return "Left Top"
	case BUTTON_SCROLL_LEFT:
		return "Scroll Left"
	case BUTTON_SCROLL_RIGHT:
		return "Scroll Right"
	case BUTTON_LEFT_CENTER:
		return "Left Center"
	}
	return fmt.Sprintf("Unknown button %d", uint8(b))
}

// HardwareButtons lists all physical buttons in firmware id order.
func HardwareButtons() []HardwareButton {
	buttons := make([]HardwareButton, numHardwareButtons)
	for i := range buttons {
		buttons[i] = HardwareButton(i)
	}
	return buttons
}

type PresetBinding string

const (
	PRESET_RIGHT_CLICK    PresetBinding = "right-click"
	PRESET_LEFT_CLICK     PresetBinding = "left-click"
	PRESET_MIDDLE_CLICK   PresetBinding = "middle-click"
	PRESET_SCROLL_LEFT    PresetBinding = "scroll-left"
	PRESET_SCROLL_RIGHT   PresetBinding = "scroll-right"
	PRESET_BACK           PresetBinding = "back"
	PRESET_FORWARD        PresetBinding = "forward"
	PRESET_SWITCH_APP     PresetBinding = "switch-app"
	PRESET_DISABLED       PresetBinding = "disabled"
	PRESET_VOLUME_DOWN    PresetBinding = "volume-down"
	PRESET_VOLUME_UP      PresetBinding = "volume-up"
	PRESET_NEXT_TRACK     PresetBinding = "next-track"
	PRESET_PREVIOUS_TRACK PresetBinding = "previous-track"
	PRESET_PLAY_PAUSE     PresetBinding = "play-pause"
	PRESET_MUTE           PresetBinding = "mute"
	PRESET_COPY           PresetBinding = "copy"
	PRESET_CUT            PresetBinding = "cut"
	PRESET_PASTE          PresetBinding = "paste"
	PRESET_UNDO           PresetBinding = "undo"
	PRESET_REDO           PresetBinding = "redo"
	PRESET_SELECT_ALL     PresetBinding = "select-all"
	PRESET_FIND           PresetBinding = "find"
)

// Entry is one assignable preset: a label for the UI and the canonical op
// sequence written to the device.
type Entry struct {
	Id      PresetBinding
	Label   string
	Binding []Op
	Keybind string
}

type Category struct {
	Label   string
	Entries []Entry
}

func keyCombo(codes ...uint16) []Op {
	return []Op{KeyOp{Auto: true, Codes: codes}}
}

func mediaKey(code uint16) []Op {
	return []Op{MediaOp{Auto: true, Codes: []uint16{code}}}
}

func mouseClick(buttons byte) []Op {
	return []Op{MouseOp{Auto: true, Buttons: buttons}}
}

// Bindings is the preset catalog, grouped the way the configuration UI
// presents it.
var Bindings = []Category{
	{
		Label: "Mouse Controls",
		Entries: []Entry{
			{Id: PRESET_RIGHT_CLICK, Label: "Right Click", Binding: mouseClick(2)},
			{Id: PRESET_LEFT_CLICK, Label: "Left Click", Binding: mouseClick(1)},
			{Id: PRESET_MIDDLE_CLICK, Label: "Middle Click", Binding: mouseClick(4)},
			{Id: PRESET_SCROLL_LEFT, Label: "Scroll Left", Binding: []Op{MouseOp{WheelH: -1}}},
			{Id: PRESET_SCROLL_RIGHT, Label: "Scroll Right", Binding: []Op{MouseOp{WheelH: 1}}},
			{Id: PRESET_BACK, Label: "Back", Binding: mouseClick(8)},
			{Id: PRESET_FORWARD, Label: "Forward", Binding: mouseClick(16)},
			{Id: PRESET_SWITCH_APP, Label: "Switch App", Binding: keyCombo(MOD_Super, KEY_Tab)},
			{Id: PRESET_DISABLED, Label: "Disabled", Binding: []Op{KillOp{}}},
		},
	},
	{
		Label: "Media Controls",
		Entries: []Entry{
			{Id: PRESET_VOLUME_DOWN, Label: "Volume Down", Binding: mediaKey(MEDIA_VolumeDown)},
			{Id: PRESET_VOLUME_UP, Label: "Volume Up", Binding: mediaKey(MEDIA_VolumeUp)},
			{Id: PRESET_NEXT_TRACK, Label: "Next Track", Binding: mediaKey(MEDIA_NextSong)},
			{Id: PRESET_PREVIOUS_TRACK, Label: "Previous Track", Binding: mediaKey(MEDIA_PreviousSong)},
			{Id: PRESET_PLAY_PAUSE, Label: "Play / Pause", Binding: mediaKey(MEDIA_PlayPause)},
			{Id: PRESET_MUTE, Label: "Mute", Binding: mediaKey(MEDIA_Mute)},
		},
	},
	{
		Label: "Edit Features",
		Entries: []Entry{
			{Id: PRESET_COPY, Label: "Copy", Binding: keyCombo(MOD_Ctrl, KEY_C), Keybind: "Ctrl+C"},
			{Id: PRESET_CUT, Label: "Cut", Binding: keyCombo(MOD_Ctrl, KEY_X), Keybind: "Ctrl+X"},
			{Id: PRESET_PASTE, Label: "Paste", Binding: keyCombo(MOD_Ctrl, KEY_V), Keybind: "Ctrl+V"},
			{Id: PRESET_UNDO, Label: "Undo", Binding: keyCombo(MOD_Ctrl, KEY_Z), Keybind: "Ctrl+Z"},
			{Id: PRESET_REDO, Label: "Redo", Binding: keyCombo(MOD_Ctrl, KEY_Y), Keybind: "Ctrl+Y"},
			{Id: PRESET_SELECT_ALL, Label: "Select All", Binding: keyCombo(MOD_Ctrl, KEY_A), Keybind: "Ctrl+A"},
			{Id: PRESET_FIND, Label: "Find", Binding: keyCombo(MOD_Ctrl, KEY_F), Keybind: "Ctrl+F"},
		},
	},
}

var (
	entryForPreset  = map[PresetBinding]*Entry{}
	entryForBinding = map[string]*Entry{}
)

func init() {
	for i := range Bindings {
		for j := range Bindings[i].Entries {
			entry := &Bindings[i].Entries[j]
			entryForPreset[entry.Id] = entry
			entryForBinding[string(EncodeAction(entry.Binding))] = entry
		}
	}
}

// Entry resolves a preset id to its catalog entry, nil for unknown ids.
func (b PresetBinding) Entry() *Entry {
	return entryForPreset[b]
}

// EntryForBinding finds the preset whose canonical op sequence matches
// ops, nil when the action is not a known preset.
func EntryForBinding(ops []Op) *Entry {
	return entryForBinding[string(EncodeAction(ops))]
}

// DefaultBinding is the factory assignment for a physical button.
func (b HardwareButton) DefaultBinding() *Entry {
	switch b {
	case BUTTON_RIGHT:
		return PRESET_RIGHT_CLICK.Entry()
	case BUTTON_MIDDLE:
		return PRESET_MIDDLE_CLICK.Entry()
	case BUTTON_LEFT_BOTTOM:
		return PRESET_BACK.Entry()
	case BUTTON_LEFT_TOP:
		return PRESET_FORWARD.Entry()
	case BUTTON_SCROLL_LEFT:
		return PRESET_SCROLL_LEFT.Entry()
	case BUTTON_SCROLL_RIGHT:
		return PRESET_SCROLL_RIGHT.Entry()
	case BUTTON_LEFT_CENTER:
		return PRESET_SWITCH_APP.Entry()
	}
	return nil
}
