// Package bus dispatches the 16-bit CPU address space across the
// cartridge, timer, joypad, PPU, work/high RAM, and the shared
// interrupt registers.
package bus

import (
	"github.com/dmgcore/gbemu/internal/cart"
	"github.com/dmgcore/gbemu/internal/joypad"
	"github.com/dmgcore/gbemu/internal/ppu"
	"github.com/dmgcore/gbemu/internal/timer"
)

// Bus owns every peripheral by composition: no back-reference from a
// peripheral into the bus.
type Bus struct {
	cart   cart.Cartridge
	timer  *timer.Timer
	joypad *joypad.Joypad
	ppu    *ppu.PPU

	wram [0x2000]byte // 0xC000-0xDFFF; echoed at 0xE000-0xFDFF
	hram [0x7F]byte   // 0xFF80-0xFFFE

	ie    byte // 0xFFFF
	ifReg byte // 0xFF0F, low 5 bits used
}

// New wires a Bus around the given cartridge; frames is the host frame
// channel the PPU sends completed frames to (may be nil in tests).
func New(c cart.Cartridge, frames chan<- ppu.Frame) *Bus {
	return &Bus{
		cart:   c,
		timer:  timer.New(),
		joypad: joypad.New(),
		ppu:    ppu.New(frames),
	}
}

func (b *Bus) PPU() *ppu.PPU           { return b.ppu }
func (b *Bus) Cart() cart.Cartridge    { return b.cart }
func (b *Bus) Joypad() *joypad.Joypad  { return b.joypad }

func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr <= 0x7FFF:
		return b.cart.Read(addr)
	case addr >= 0x8000 && addr <= 0x9FFF:
		return b.ppu.Read(addr)
	case addr >= 0xA000 && addr <= 0xBFFF:
		return b.cart.Read(addr)
	case addr >= 0xC000 && addr <= 0xDFFF:
		return b.wram[addr-0xC000]
	case addr >= 0xE000 && addr <= 0xFDFF:
		return b.wram[addr-0x2000-0xC000]
	case addr >= 0xFE00 && addr <= 0xFE9F:
		return b.ppu.Read(addr)
	case addr >= 0xFEA0 && addr <= 0xFEFF:
		return 0xFF // prohibited region
	case addr == 0xFF00:
		return b.joypad.Read(addr)
	case addr >= 0xFF04 && addr <= 0xFF07:
		return b.timer.Read(addr)
	case addr == 0xFF0F:
		return 0xE0 | (b.ifReg & 0x1F)
	case addr >= 0xFF40 && addr <= 0xFF4B:
		return b.ppu.Read(addr)
	case addr >= 0xFF80 && addr <= 0xFFFE:
		return b.hram[addr-0xFF80]
	case addr == 0xFFFF:
		return b.ie
	default:
		return 0xFF
	}
}

func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case addr <= 0x7FFF:
		b.cart.Write(addr, value)
	case addr >= 0x8000 && addr <= 0x9FFF:
		b.ppu.Write(addr, value)
	case addr >= 0xA000 && addr <= 0xBFFF:
		b.cart.Write(addr, value)
	case addr >= 0xC000 && addr <= 0xDFFF:
		b.wram[addr-0xC000] = value
	case addr >= 0xE000 && addr <= 0xFDFF:
		b.wram[addr-0x2000-0xC000] = value
	case addr >= 0xFE00 && addr <= 0xFE9F:
		b.ppu.Write(addr, value)
	case addr >= 0xFEA0 && addr <= 0xFEFF:
		// prohibited region: writes ignored
	case addr == 0xFF00:
		b.joypad.Write(addr, value)
	case addr >= 0xFF04 && addr <= 0xFF07:
		b.timer.Write(addr, value)
	case addr == 0xFF0F:
		b.ifReg = value & 0x1F
	case addr == 0xFF46:
		b.oamDMA(value)
	case addr >= 0xFF40 && addr <= 0xFF4B:
		b.ppu.Write(addr, value)
	case addr >= 0xFF80 && addr <= 0xFFFE:
		b.hram[addr-0xFF80] = value
	case addr == 0xFFFF:
		b.ie = value
	}
}

// Read16/Write16 perform little-endian 16-bit accesses.
func (b *Bus) Read16(addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (b *Bus) Write16(addr uint16, value uint16) {
	b.Write(addr, byte(value))
	b.Write(addr+1, byte(value>>8))
}

// oamDMA copies 160 bytes from src*0x100 into OAM by reading each
// source byte through the normal bus path, completing before the next
// instruction begins.
func (b *Bus) oamDMA(src byte) {
	base := uint16(src) << 8
	for i := uint16(0); i < 0xA0; i++ {
		b.ppu.Write(0xFE00+i, b.Read(base+i))
	}
}

// SetButtons forwards the host's current button state to the joypad.
func (b *Bus) SetButtons(mask byte) { b.joypad.SetButtons(mask) }

// Tick advances PPU, joypad, and timer by m M-cycles in that order,
// then ORs each peripheral's own pending-interrupt latch into IF and
// clears it.
func (b *Bus) Tick(m int) {
	b.ppu.Tick(m)

	p := b.ppu.Pending()
	b.ifReg |= p
	b.ppu.Clear(p)

	j := b.joypad.Pending()
	b.ifReg |= j
	b.joypad.Clear(j)

	b.timer.Tick(m)
	tm := b.timer.Pending()
	b.ifReg |= tm
	b.timer.Clear(tm)
}

// IF/IE accessors for the CPU's interrupt dispatcher.
func (b *Bus) IF() byte        { return b.ifReg }
func (b *Bus) SetIF(v byte)    { b.ifReg = v & 0x1F }
func (b *Bus) IE() byte        { return b.ie }
