// Package display renders a drive.Surface to the screen and translates
// physical key events into drive.Message values for the pacing worker,
// mirroring the teacher's graphics-backend split: an Ebitengine-backed
// windowed implementation and a headless one for tooling and tests.
package display

import "nesppu/internal/ppu"

// Config mirrors the teacher's graphics.Config, trimmed to what a PPU
// framebuffer display actually needs.
type Config struct {
	Title      string
	Scale      int // integer upscale factor; 0 defaults to 2
	VSync      bool
	FilterArea bool // true = linear filter, false = nearest-neighbor
}

// DefaultConfig returns a 2x-scaled, vsync'd, nearest-neighbor window
// titled for the emulator.
func DefaultConfig() Config {
	return Config{
		Title: "nesppu",
		Scale: 2,
		VSync: true,
	}
}

func (c Config) windowSize() (width, height int) {
	scale := c.Scale
	if scale <= 0 {
		scale = 2
	}
	return ppu.Width * scale, ppu.Height * scale
}
