package ppu

// ButtonName identifies one of the eight NES controller buttons, used by
// the pacing channel's Button messages (spec §5, §6) and by internal/input
// and internal/display to name key-to-button mappings.
type ButtonName int

const (
	ButtonA ButtonName = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

func (b ButtonName) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonSelect:
		return "Select"
	case ButtonStart:
		return "Start"
	case ButtonUp:
		return "Up"
	case ButtonDown:
		return "Down"
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	default:
		return "Unknown"
	}
}
