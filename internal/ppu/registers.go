package ppu

// Register tags the eight CPU-visible PPU ports (spec §4.1).
type Register int

const (
	RegController Register = iota
	RegMask
	RegStatus
	RegOamAddress
	RegOamData
	RegScroll
	RegAddress
	RegData
)

// controllerRegister decomposes $2000/Controller into its named fields.
type controllerRegister struct {
	nametableBase         uint16 // one of 0x2000, 0x2400, 0x2800, 0x2C00
	vramIncrement         uint8  // 1 or 32
	spritePatternBase     uint16 // 0 or 0x1000
	backgroundPatternBase uint16 // 0 or 0x1000
	spriteHeight          int    // 8 or 16
	masterSlave           bool
	nmiEnable             bool
}

func (c *controllerRegister) write(value uint8) {
	c.nametableBase = 0x2000 + 0x400*uint16(value&0x03)
	if value&0x04 != 0 {
		c.vramIncrement = 32
	} else {
		c.vramIncrement = 1
	}
	if value&0x08 != 0 {
		c.spritePatternBase = 0x1000
	} else {
		c.spritePatternBase = 0
	}
	if value&0x10 != 0 {
		c.backgroundPatternBase = 0x1000
	} else {
		c.backgroundPatternBase = 0
	}
	if value&0x20 != 0 {
		c.spriteHeight = 16
	} else {
		c.spriteHeight = 8
	}
	c.masterSlave = value&0x40 != 0
	c.nmiEnable = value&0x80 != 0
}

// maskRegister decomposes $2001/Mask into its eight independent flags.
type maskRegister struct {
	greyscale       bool
	showBgLeft      bool
	showSpritesLeft bool
	showBackground  bool
	showSprites     bool
	emphRed         bool
	emphGreen       bool
	emphBlue        bool
}

func (m *maskRegister) write(value uint8) {
	m.greyscale = value&0x01 != 0
	m.showBgLeft = value&0x02 != 0
	m.showSpritesLeft = value&0x04 != 0
	m.showBackground = value&0x08 != 0
	m.showSprites = value&0x10 != 0
	m.emphRed = value&0x20 != 0
	m.emphGreen = value&0x40 != 0
	m.emphBlue = value&0x80 != 0
}

// statusRegister holds $2002/Status's three stateful bits. Bits 0-4 are
// not stored here; they come from the shared bus byte on read.
type statusRegister struct {
	spriteOverflow bool
	spriteZeroHit  bool
	vblankStarted  bool
}

// read composes the status byte and clears vblankStarted as a side effect.
// Does not touch spriteZeroHit/spriteOverflow: those clear only at VBlank
// start (spec §4.6), not on Status reads.
func (s *statusRegister) read(busLow5 uint8) uint8 {
	var v uint8
	if s.spriteOverflow {
		v |= 0x20
	}
	if s.spriteZeroHit {
		v |= 0x40
	}
	if s.vblankStarted {
		v |= 0x80
	}
	s.vblankStarted = false
	return (busLow5 & 0x1F) | v
}

// scrollRegister holds the latched X/Y scroll written through $2005.
type scrollRegister struct {
	x, y uint8
}

// addrRegister holds the 14-bit VRAM pointer written through $2006.
type addrRegister struct {
	value uint16
}

func (a *addrRegister) writeHigh(value uint8) {
	a.value = (a.value & 0x00FF) | (uint16(value&0x3F) << 8)
}

func (a *addrRegister) writeLow(value uint8) {
	a.value = (a.value & 0xFF00) | uint16(value)
	a.value &= 0x3FFF
}

func (a *addrRegister) increment(by uint8) {
	a.value = (a.value + uint16(by)) & 0x3FFF
}

// WriteRegister writes one byte to the named CPU-visible port. cpu is
// needed only for Data writes that fall in the pattern-memory range
// (0x0000-0x1FFF), which are forwarded to cpu.WriteCHR per spec §4.2/§6.
func (p *PPU) WriteRegister(reg Register, value uint8, cpu Cpu) {
	p.bus = value

	switch reg {
	case RegController:
		p.ctrl.write(value)
	case RegMask:
		p.mask.write(value)
	case RegStatus:
		// Write-only; ignored.
	case RegOamAddress:
		p.oamAddr = value
	case RegOamData:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case RegScroll:
		// The shared latch drives Scroll and Address writes in lockstep
		// but Scroll consumes it inverted: with latch starting true, the
		// FIRST Scroll write lands with an inverted (false) argument,
		// which the canonical NES convention maps to X; the SECOND lands
		// true, mapping to Y. Net effect: X first, then Y — canonical
		// order, despite appearances from the shared-latch indirection.
		// See DESIGN.md's "scroll write order" entry.
		if !p.latch {
			p.scroll.y = value
		} else {
			p.scroll.x = value
		}
		p.latch = !p.latch
	case RegAddress:
		if p.latch {
			p.addr.writeHigh(value)
		} else {
			p.addr.writeLow(value)
		}
		p.latch = !p.latch
	case RegData:
		p.writeData(value, cpu)
	}
}

// ReadRegister reads one byte from the named CPU-visible port.
func (p *PPU) ReadRegister(reg Register, cpu Cpu) uint8 {
	switch reg {
	case RegController, RegMask, RegOamAddress, RegScroll, RegAddress:
		// Write-only ports: open-bus read.
	case RegStatus:
		p.bus = p.status.read(p.bus)
		p.latch = true
	case RegOamData:
		p.bus = p.oam[p.oamAddr]
	case RegData:
		p.bus = p.readData(cpu)
	}
	return p.bus
}

// writeData implements the Data port's write side (spec §4.2).
func (p *PPU) writeData(value uint8, cpu Cpu) {
	addr := p.addr.value

	switch {
	case addr <= 0x1FFF:
		cpu.WriteCHR(addr, value)
	case addr <= 0x2FFF:
		p.vramWrite(addr, value)
	case addr <= 0x3EFF:
		p.vramWrite(addr-0x1000, value)
	case addr <= 0x3FFF:
		p.palette[paletteIndex(addr)] = value
	}

	p.addr.increment(p.ctrl.vramIncrement)
}

// readData implements the Data port's read side: chr-rom and nametable
// reads are buffered one read behind; palette reads are immediate.
func (p *PPU) readData(cpu Cpu) uint8 {
	addr := p.addr.value
	var result uint8

	switch {
	case addr <= 0x1FFF:
		result = p.dataBuffer
		p.dataBuffer = cpu.ReadCHR(addr)
	case addr <= 0x2FFF:
		result = p.dataBuffer
		p.dataBuffer = p.vramRead(addr)
	case addr <= 0x3EFF:
		result = p.dataBuffer
		p.dataBuffer = p.vramRead(addr - 0x1000)
	case addr <= 0x3FFF:
		result = p.palette[paletteIndex(addr)]
	}

	p.addr.increment(p.ctrl.vramIncrement)
	return result
}

// paletteIndex folds a palette-range address to 0..31, aliasing the
// universal-background mirrors 0x3F10/14/18/1C onto 0x3F00/04/08/0C (spec
// invariant 4 / testable property 5).
func paletteIndex(addr uint16) uint16 {
	idx := (addr - 0x3F00) & 0x1F
	switch idx {
	case 0x10, 0x14, 0x18, 0x1C:
		idx -= 0x10
	}
	return idx
}
