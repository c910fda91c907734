// Package ppu implements the NES 2C02 Picture Processing Unit: registers,
// VRAM/palette memory, per-scanline sprite evaluation, and the
// background+sprite compositor that produces one RGBA frame per
// 262-scanline/341-dot cycle. The 6502 core and cartridge mapper are not
// implemented here; the caller supplies them behind the Cpu interface.
package ppu

import "fmt"

const (
	// Width is the number of visible pixel columns per scanline.
	Width = 256
	// Height is the number of visible scanlines per frame.
	Height = 240
	// CPUFreq is the NTSC NES CPU clock, in Hz.
	CPUFreq = 1_789_773

	dotsPerScanline   = 341
	scanlinesPerFrame = 262

	// CyclesPerFrame is the number of CPU ticks (3 PPU dots each) needed to
	// guarantee at least one full frame completes. dotsPerScanline *
	// scanlinesPerFrame (89,342) is not an exact multiple of 3, so this
	// rounds up rather than truncating short of a full frame.
	CyclesPerFrame = (dotsPerScanline*scanlinesPerFrame + 2) / 3
)

// Cpu is the capability set a caller must implement to drive a PPU. It
// stands in for the 6502 core and the cartridge mapper: the PPU never reads
// or writes pattern memory directly, it only ever calls through this
// boundary.
type Cpu interface {
	// Tick runs one CPU cycle. It may call WriteRegister/ReadRegister and
	// WriteOAMDMA on the PPU passed to it.
	Tick(p *PPU) error

	// ReadCHR returns the byte at a 14-bit pattern-memory address. Pure
	// from the PPU's perspective: it must not mutate PPU state.
	ReadCHR(addr uint16) uint8

	// WriteCHR accepts a write to pattern memory. CHR-ROM carts may
	// discard it; CHR-RAM carts persist it.
	WriteCHR(addr uint16, value uint8)

	// NonMaskableInterrupt is called by the PPU on the step that wraps the
	// counters into scanline 241 (dot 0) when the Controller register's
	// NMI-enable bit is set.
	NonMaskableInterrupt()
}

// Mirroring selects how the 4 KiB nametable address space folds onto
// physical VRAM.
type Mirroring int

const (
	Horizontal Mirroring = iota
	Vertical
	FourScreen
	SingleScreenLower
	SingleScreenUpper
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	case FourScreen:
		return "FourScreen"
	case SingleScreenLower:
		return "SingleScreenLower"
	case SingleScreenUpper:
		return "SingleScreenUpper"
	default:
		return fmt.Sprintf("Mirroring(%d)", int(m))
	}
}

// Buttons is the latched state of the eight NES controller buttons.
type Buttons struct {
	A, B, Select, Start   bool
	Up, Down, Left, Right bool
}

// PPU is the single owned aggregate of 2C02 state described in the data
// model: registers, the three memory regions, and the scanline/dot
// counters. The zero value is not usable; construct with New.
type PPU struct {
	scanline int
	dot      int

	ctrl   controllerRegister
	mask   maskRegister
	status statusRegister

	oamAddr uint8
	scroll  scrollRegister
	addr    addrRegister
	latch   bool // shared write-toggle for Scroll and Address; true = "next write is high/first byte"

	bus        uint8
	dataBuffer uint8

	vram         [4096]uint8
	palette      [32]uint8
	oam          [256]uint8
	secondaryOAM [32]uint8

	mirroring Mirroring
	buttons   Buttons

	// frame is the framebuffer this PPU renders into, row-major RGBA (4
	// bytes/pixel, A always 0xFF). The driver loop copies it into a
	// shared, mutex-protected surface at frame boundaries; PPU itself
	// does no locking (see internal/drive).
	frame [Width * Height * 4]byte

	// frameComplete, when set, is invoked once per frame at the start of
	// VBlank (scanline 241, dot 0), after the frame buffer holds a
	// complete picture.
	frameComplete func(frame []byte)
}

// New constructs a PPU with the given fixed mirroring mode. Mirroring
// cannot change for the lifetime of the PPU; see DESIGN.md's note on
// mid-frame mirroring changes.
func New(mirroring Mirroring) *PPU {
	p := &PPU{
		mirroring: mirroring,
		latch:     true,
	}
	p.ctrl.write(0) // establishes the power-on defaults (nametable 0x2000, sprite height 8, ...)
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	return p
}

// OnFrameComplete installs a callback invoked with the current framebuffer
// at the start of every VBlank. The slice aliases PPU-owned storage and is
// only valid for the duration of the call.
func (p *PPU) OnFrameComplete(fn func(frame []byte)) {
	p.frameComplete = fn
}

// Frame returns the PPU's framebuffer. Row-major RGBA, A = 0xFF.
func (p *PPU) Frame() []byte {
	return p.frame[:]
}

// GetJoypadState returns the latched controller button state.
func (p *PPU) GetJoypadState() Buttons {
	return p.buttons
}

// SetButton updates a single button's latched state. internal/drive calls
// this as Button messages are drained from the pacing channel.
func (p *PPU) SetButton(name ButtonName, pressed bool) {
	switch name {
	case ButtonA:
		p.buttons.A = pressed
	case ButtonB:
		p.buttons.B = pressed
	case ButtonSelect:
		p.buttons.Select = pressed
	case ButtonStart:
		p.buttons.Start = pressed
	case ButtonUp:
		p.buttons.Up = pressed
	case ButtonDown:
		p.buttons.Down = pressed
	case ButtonLeft:
		p.buttons.Left = pressed
	case ButtonRight:
		p.buttons.Right = pressed
	}
}

// WriteOAMDMA atomically replaces all 256 bytes of OAM. Models a write to
// CPU address 0x4014; the caller is responsible for sourcing the page.
func (p *PPU) WriteOAMDMA(data [256]byte) {
	p.oam = data
}

// Scanline and Dot expose the current counters, mainly so tests can pin
// scenario S4 (VBlank/NMI timing).
func (p *PPU) Scanline() int { return p.scanline }
func (p *PPU) Dot() int      { return p.dot }

// Step advances the PPU by exactly one dot: counters, VBlank/NMI edges,
// sprite evaluation at line boundaries, and (if visible) one pixel. The
// pacing loop calls this three times per CPU tick (spec invariant 10).
func (p *PPU) Step(cpu Cpu) {
	p.dot++

	// Hardware quirk: OamAddress is forced to zero throughout dots
	// 257-320 of every scanline, priming evaluation for the next line.
	if p.dot >= 257 && p.dot <= 320 {
		p.oamAddr = 0
	}

	if p.dot > 340 {
		p.dot -= dotsPerScanline
		p.scanline++
		p.evaluateSprites()

		switch {
		case p.scanline == 241:
			p.status.vblankStarted = true
			p.status.spriteZeroHit = false
			p.status.spriteOverflow = false
			if p.ctrl.nmiEnable {
				cpu.NonMaskableInterrupt()
			}
			if p.frameComplete != nil {
				p.frameComplete(p.frame[:])
			}
		case p.scanline > 261:
			p.scanline = 0
			p.status.vblankStarted = false
		}
	}

	if p.visible() {
		if p.renderPixel(cpu) {
			p.status.spriteZeroHit = true
		}
	}
}

func (p *PPU) visible() bool {
	return p.dot < Width && p.scanline < Height
}

// mirrorAddress canonicalizes a nametable-space address into 0x2000-0x2FFF
// and then folds it onto physical VRAM per the PPU's fixed mirroring mode.
// Panics if, after canonicalization, the address still falls outside
// 0x2000-0x2FFF: that indicates a caller/mapper bug, not PPU memory
// corruption (spec's "invalid mirroring address" is fatal, §7).
func (p *PPU) mirrorAddress(addr uint16) uint16 {
	switch {
	case addr > 0x2FFF:
		addr -= 0x1000
	case addr < 0x2000:
		addr += 0x1000
	}
	if addr < 0x2000 || addr > 0x2FFF {
		panic(fmt.Sprintf("ppu: invalid mirroring address %#04x", addr))
	}

	region := addr - 0x2000 // 0..0xFFF: one of four 1 KiB windows
	window := region / 0x400
	offset := region % 0x400

	switch p.mirroring {
	case Horizontal:
		// 2000-23FF -> A, 2400-27FF -> A, 2800-2BFF -> B, 2C00-2FFF -> B
		if window < 2 {
			return offset
		}
		return 0x400 + offset
	case Vertical:
		// 2000-23FF -> A, 2400-27FF -> B, 2800-2BFF -> A, 2C00-2FFF -> B
		if window%2 == 0 {
			return offset
		}
		return 0x400 + offset
	case FourScreen:
		return region
	case SingleScreenLower:
		return offset
	case SingleScreenUpper:
		return 0x400 + offset
	default:
		panic(fmt.Sprintf("ppu: unknown mirroring mode %v", p.mirroring))
	}
}

// vramRead reads one byte of nametable space through the mirroring map.
func (p *PPU) vramRead(addr uint16) uint8 {
	return p.vram[p.mirrorAddress(addr)]
}

func (p *PPU) vramWrite(addr uint16, value uint8) {
	p.vram[p.mirrorAddress(addr)] = value
}
