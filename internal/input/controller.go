// Package input maps physical keyboard keys onto the eight NES controller
// buttons (spec §6). The PPU owns the actual latched button state
// (ppu.PPU.SetButton/GetJoypadState); this package only names the fixed
// mapping table a display backend consults when translating key events
// into ppu.ButtonName values for the pacing channel's Button messages.
package input

import "nesppu/internal/ppu"

// Key identifies a physical key, backend-agnostic (a display backend
// translates its own key-event type into this before calling Lookup).
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyA
	KeyW
	KeyS
	KeyD
	KeyX
	KeyZ
	KeyEnter
	KeyShift
)

// keyMap is the fixed mapping table from spec §6: Left<->Left/A,
// Right<->Right/D, Up<->Up/W, Down<->Down/S, A<->X, B<->Z, Start<->Enter,
// Select<->Shift.
var keyMap = map[Key]ppu.ButtonName{
	KeyLeft:  ppu.ButtonLeft,
	KeyA:     ppu.ButtonLeft,
	KeyRight: ppu.ButtonRight,
	KeyD:     ppu.ButtonRight,
	KeyUp:    ppu.ButtonUp,
	KeyW:     ppu.ButtonUp,
	KeyDown:  ppu.ButtonDown,
	KeyS:     ppu.ButtonDown,
	KeyX:     ppu.ButtonA,
	KeyZ:     ppu.ButtonB,
	KeyEnter: ppu.ButtonStart,
	KeyShift: ppu.ButtonSelect,
}

// Lookup returns the controller button a physical key maps to, and
// whether the key participates in the mapping at all.
func Lookup(key Key) (ppu.ButtonName, bool) {
	b, ok := keyMap[key]
	return b, ok
}
