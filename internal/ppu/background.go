package ppu

// renderPixel draws the background pixel and then the sprite layer for the
// current (dot, scanline), in that order — background always draws first
// and unconditionally (there is no "transparent background" concept in
// this renderer: color index 0 is still the visible backdrop color), then
// sprites composite on top per their priority bit. Returns whether the
// sprite-zero-marked entry hit a non-transparent pixel here.
func (p *PPU) renderPixel(cpu Cpu) bool {
	x, y := p.dot, p.scanline
	p.renderBackgroundPixel(cpu, x, y)
	return p.renderSprites(cpu, x, y)
}

// renderBackgroundPixel computes and draws one background pixel following
// spec §4.4: wrap scroll across the 512x480 four-nametable surface, locate
// the tile/attribute/pattern bytes, compose a 2-bit color index, and look
// it up through the attribute-selected background palette.
func (p *PPU) renderBackgroundPixel(cpu Cpu, x, y int) {
	sx, sy := int(p.scroll.x), int(p.scroll.y)

	wx := mod(x+sx, 512)
	wy := mod(y+sy, 480)

	nametableIdx := wx/256 + 2*(wy/240)
	base := p.ctrl.nametableBase + uint16(nametableIdx)*0x400
	attrTable := base + 0x3C0

	tx, ty := (wx/8)%32, (wy/8)%30
	fx, fy := 7-(wx%8), wy%8

	tile := p.vramRead(base + uint16(tx) + uint16(ty)*32)
	palIdx := p.attributePalette(attrTable, tx, ty)

	bank := p.ctrl.backgroundPatternBase
	low := cpu.ReadCHR(bank + uint16(tile)*16 + uint16(fy))
	high := cpu.ReadCHR(bank + uint16(tile)*16 + uint16(fy) + 8)
	bit0 := (low >> uint(fx)) & 1
	bit1 := (high >> uint(fx)) & 1
	colorIdx := (bit1 << 1) | bit0

	colors := p.backgroundPalette(palIdx)
	p.setPixel(x, y, p.applyEmphasis(colors[colorIdx]))
}

// attributePalette fetches the attribute byte for tile (tx,ty) and selects
// its 2-bit palette index per the quadrant the tile falls in within the
// 4x4-tile attribute cell (spec §4.4 step 5): top-left bits 0-1, top-right
// bits 2-3, bottom-left bits 4-5, bottom-right bits 6-7.
func (p *PPU) attributePalette(attrTable uint16, tx, ty int) uint8 {
	index := (ty/4)*8 + tx/4
	attr := p.vramRead(attrTable + uint16(index))

	quadX, quadY := (tx%4)/2, (ty%4)/2
	shift := uint(0)
	switch {
	case quadX == 0 && quadY == 0:
		shift = 0
	case quadX == 1 && quadY == 0:
		shift = 2
	case quadX == 0 && quadY == 1:
		shift = 4
	default:
		shift = 6
	}
	return (attr >> shift) & 0x03
}

// mod is Euclidean modulo: always non-negative, matching Rust's
// rem_euclid used by the original scroll-wrap arithmetic.
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
