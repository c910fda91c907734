package ppu

// spriteZeroMarker reuses attribute bit 2 (always unused by real hardware)
// to carry "this secondary-OAM entry is primary-OAM sprite 0" through to
// the sprite renderer (spec §4.3, design note on sprite-zero tagging).
const spriteZeroMarker = 0x04

// attrPreserveMask keeps bits {7,6,5,1,0} of a copied attribute byte and
// clears bits {3,2} before the marker is OR-ed back in at bit 2. Bit 3 is
// unused by hardware and by this renderer; clearing it alongside bit 2
// matches the original reference PPU's mask exactly (see DESIGN.md).
const attrPreserveMask = 0b1110_0011

// evaluateSprites runs at the end-of-line transition (dot wraps past 340)
// for the scanline about to begin. It clears secondaryOAM to the 0xFF
// sentinel, then scans oam starting at the current oamAddr, interpreting
// it as 64 four-byte (Y, tile, attribute, X) entries, copying up to 8
// in-range entries and setting spriteOverflow on the 9th (spec §4.3).
// spriteOverflow itself is not reset here: it persists across scanlines
// for the rest of the frame and only clears at VBlank start (Step,
// scanline == 241), so a CPU reading $2002 mid-frame sees "any scanline
// so far had more than 8 sprites," not just the most recent one.
func (p *PPU) evaluateSprites() {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}

	height := p.ctrl.spriteHeight
	found := 0

	for i, base := 0, int(p.oamAddr); base+3 < len(p.oam); i, base = i+1, base+4 {
		y := p.oam[base]
		tile := p.oam[base+1]
		attr := p.oam[base+2]
		x := p.oam[base+3]

		if p.scanline < int(y) || p.scanline >= int(y)+height {
			continue
		}

		if found == 8 {
			p.status.spriteOverflow = true
			break
		}

		marker := uint8(0)
		if base == 0 {
			marker = spriteZeroMarker
		}

		out := found * 4
		p.secondaryOAM[out] = y
		p.secondaryOAM[out+1] = tile
		p.secondaryOAM[out+2] = (attr & attrPreserveMask) | marker
		p.secondaryOAM[out+3] = x
		found++
	}
}

// renderSprites walks the 8 secondary-OAM entries in reverse (so index 0
// draws last, i.e. on top) and draws the visible dot's sprite pixel, if
// any, honoring "behind background" priority. Returns true iff the
// sprite-zero-marked entry produced a non-transparent pixel at this dot
// (spec §4.5, testable property 8 — background is never transparent in
// this renderer, so the hit condition reduces to the sprite pixel alone;
// see DESIGN.md).
func (p *PPU) renderSprites(cpu Cpu, x, y int) bool {
	hit := false

	for i := 7; i >= 0; i-- {
		base := i * 4
		spriteY := p.secondaryOAM[base]
		if spriteY == 0xFF {
			continue
		}
		tile := p.secondaryOAM[base+1]
		attr := p.secondaryOAM[base+2]
		spriteX := int(p.secondaryOAM[base+3])

		if x < spriteX || x >= spriteX+8 {
			continue
		}

		height := p.ctrl.spriteHeight
		fx := x - spriteX
		fy := y - int(spriteY)
		if fy < 0 || fy >= height {
			continue
		}

		if attr&0x80 != 0 { // vertical flip
			fy = height - 1 - fy
		}
		if attr&0x40 == 0 { // horizontal flip: default (unset) reverses the bit index
			fx = 7 - fx
		}

		var bank uint16
		effectiveTile := tile
		if height == 16 {
			if tile&1 != 0 {
				bank = 0x1000
			}
			if fy > 7 {
				fy -= 8
				effectiveTile = tile | 1
			} else {
				effectiveTile = tile &^ 1
			}
		} else {
			bank = p.ctrl.spritePatternBase
		}

		low := cpu.ReadCHR(bank + uint16(effectiveTile)*16 + uint16(fy))
		high := cpu.ReadCHR(bank + uint16(effectiveTile)*16 + uint16(fy) + 8)
		bit0 := (low >> uint(fx)) & 1
		bit1 := (high >> uint(fx)) & 1
		colorIdx := (bit1 << 1) | bit0

		if colorIdx == 0 {
			continue
		}

		if attr&spriteZeroMarker != 0 {
			hit = true
		}

		if attr&0x20 != 0 { // behind background: re-render the background pixel
			p.renderBackgroundPixel(cpu, x, y)
			continue
		}

		colors := p.spritePalette(attr & 0x03)
		p.setPixel(x, y, p.applyEmphasis(colors[colorIdx]))
	}

	return hit
}
