package ppu

// nesColorTable is the 64-entry NTSC 2C02 RGB palette, alpha channel
// implicit (always opaque). original_source references this table
// (src/ppu/mod.rs imports ppu::colors::NES_COLOR_PALLETE) but colors.rs
// itself was not part of the retrieved source; this is the standard
// 2C02 NTSC palette values used across the NES emulator ecosystem.
var nesColorTable = [64][3]uint8{
	{0x66, 0x66, 0x66}, {0x00, 0x2A, 0x88}, {0x14, 0x12, 0xA7}, {0x3B, 0x00, 0xA4},
	{0x5C, 0x00, 0x7E}, {0x6E, 0x00, 0x40}, {0x6C, 0x06, 0x00}, {0x56, 0x1D, 0x00},
	{0x33, 0x35, 0x00}, {0x0B, 0x48, 0x00}, {0x00, 0x52, 0x00}, {0x00, 0x4F, 0x08},
	{0x00, 0x40, 0x4D}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xAD, 0xAD, 0xAD}, {0x15, 0x5F, 0xD9}, {0x42, 0x40, 0xFF}, {0x75, 0x27, 0xFE},
	{0xA0, 0x1A, 0xCC}, {0xB7, 0x1E, 0x7B}, {0xB5, 0x31, 0x20}, {0x99, 0x4E, 0x00},
	{0x6B, 0x6D, 0x00}, {0x38, 0x87, 0x00}, {0x0C, 0x93, 0x00}, {0x00, 0x8F, 0x32},
	{0x00, 0x7C, 0x8D}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFE, 0xFF}, {0x64, 0xB0, 0xFF}, {0x92, 0x90, 0xFF}, {0xC6, 0x76, 0xFF},
	{0xF3, 0x6A, 0xFF}, {0xFE, 0x6E, 0xCC}, {0xFE, 0x81, 0x70}, {0xEA, 0x9E, 0x22},
	{0xBC, 0xBE, 0x00}, {0x88, 0xD8, 0x00}, {0x5C, 0xE4, 0x30}, {0x45, 0xE0, 0x82},
	{0x48, 0xCD, 0xDE}, {0x4F, 0x4F, 0x4F}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xFF, 0xFE, 0xFF}, {0xC0, 0xDF, 0xFF}, {0xD3, 0xD2, 0xFF}, {0xE8, 0xC8, 0xFF},
	{0xFB, 0xC2, 0xFF}, {0xFE, 0xC4, 0xEA}, {0xFE, 0xCC, 0xC5}, {0xF7, 0xD8, 0xA5},
	{0xE4, 0xE5, 0x94}, {0xCF, 0xF2, 0x9B}, {0xBE, 0xFB, 0xB3}, {0xB8, 0xF8, 0xD8},
	{0xB8, 0xF8, 0xF8}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
}

// greyscaleMask returns the palette-byte mask applied before indexing the
// color table (spec §4.4 step 8).
func (p *PPU) greyscaleMask() uint8 {
	if p.mask.greyscale {
		return 0x30
	}
	return 0xFF
}

// backgroundPalette returns the four colors a background pixel may use:
// entry 0 is always the universal background color (palette[0]); entries
// 1-3 come from the attribute-selected 4-entry palette block starting at
// 1+4*palIndex (spec §4.4 step 7).
func (p *PPU) backgroundPalette(palIndex uint8) [4][3]uint8 {
	mask := p.greyscaleMask()
	start := 1 + 4*int(palIndex)
	var out [4][3]uint8
	out[0] = nesColorTable[p.palette[0]&mask]
	out[1] = nesColorTable[p.palette[start]&mask]
	out[2] = nesColorTable[p.palette[start+1]&mask]
	out[3] = nesColorTable[p.palette[start+2]&mask]
	return out
}

// spritePalette returns the four colors a sprite pixel may use: entry 0 is
// always NES color table index 0 (not palette[0]); entries 1-3 come from
// the sprite palette block starting at 0x11+4*palIndex (spec §4.5).
func (p *PPU) spritePalette(palIndex uint8) [4][3]uint8 {
	mask := p.greyscaleMask()
	start := 0x11 + 4*int(palIndex)
	var out [4][3]uint8
	out[0] = nesColorTable[0]
	out[1] = nesColorTable[p.palette[start]&mask]
	out[2] = nesColorTable[p.palette[start+1]&mask]
	out[3] = nesColorTable[p.palette[start+2]&mask]
	return out
}

// applyEmphasis forces RGB channels to full intensity per the active
// emphasis bits (spec §4.4 step 9 — a deliberate simplification of real
// color-emphasis attenuation, documented in DESIGN.md).
func (p *PPU) applyEmphasis(c [3]uint8) [3]uint8 {
	if p.mask.emphRed {
		c[0] = 0xFF
	}
	if p.mask.emphGreen {
		c[1] = 0xFF
	}
	if p.mask.emphBlue {
		c[2] = 0xFF
	}
	return c
}

// setPixel writes one RGBA pixel into the framebuffer.
func (p *PPU) setPixel(x, y int, c [3]uint8) {
	i := (y*Width + x) * 4
	p.frame[i] = c[0]
	p.frame[i+1] = c[1]
	p.frame[i+2] = c[2]
	p.frame[i+3] = 0xFF
}
