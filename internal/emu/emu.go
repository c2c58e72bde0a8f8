// Package emu wires the cartridge, timer, joypad, PPU, bus, and CPU
// into a step loop: thread E runs CPU.Step/Bus.Tick in
// a loop, paced against wall-clock, exchanging frames and key events
// with the host over two channels.
package emu

import (
	"fmt"
	"log"
	"time"

	"github.com/dmgcore/gbemu/internal/bus"
	"github.com/dmgcore/gbemu/internal/cart"
	"github.com/dmgcore/gbemu/internal/cpu"
	"github.com/dmgcore/gbemu/internal/joypad"
	"github.com/dmgcore/gbemu/internal/ppu"
)

// nsPerMCycle is the real-hardware M-cycle period: 4 T-cycles at
// ~238.4ns each.
const nsPerMCycle = 4 * 238.4

// Button identifies one physical input, independent of the joypad
// package's bitmask encoding (keeps the host's key-event vocabulary
// decoupled from the joypad register's internal bit layout).
type Button int

const (
	Up Button = iota
	Down
	Left
	Right
	A
	B
	Select
	Start
)

// KeyEvent is a single tagged host input: no timestamp,
// order is the only temporal information.
type KeyEvent struct {
	Button Button
	Down   bool
}

var buttonBits = map[Button]byte{
	Up: joypad.Up, Down: joypad.Down, Left: joypad.Left, Right: joypad.Right,
	A: joypad.A, B: joypad.B, Select: joypad.Select, Start: joypad.Start,
}

// Machine owns the emulator core and the channels thread H uses to
// exchange frames and key events with thread E.
type Machine struct {
	cfg     Config
	cpu     *cpu.CPU
	bus     *bus.Bus
	cart    cart.Cartridge
	romPath string
	battery bool

	buttons byte // current held-button mask, updated by drained key events

	Frames chan ppu.Frame
	Keys   chan KeyEvent
	Stop   chan struct{}
	done   chan struct{}
}

// New parses rom, constructs the cartridge and the rest of the core,
// and loads battery RAM from beside romPath (if any). Returns
// ErrInvalidCartridge/ErrUnsupportedCartridge on start-up failure
// straight out of the constructor.
func New(cfg Config, rom []byte, romPath string) (*Machine, error) {
	h, err := cart.ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	if !h.ChecksumOK {
		log.Printf("emu: header checksum mismatch for %q (continuing)", h.Title)
	}

	c := cart.New(rom, h)
	battery := cart.HasBattery(h.CartType)
	cart.LoadBattery(c, romPath, battery)

	frames := make(chan ppu.Frame, 1)
	b := bus.New(c, frames)
	cp := cpu.New(b)
	cp.ResetNoBoot()

	m := &Machine{
		cfg:     cfg,
		cpu:     cp,
		bus:     b,
		cart:    c,
		romPath: romPath,
		battery: battery,
		Frames:  frames,
		Keys:    make(chan KeyEvent, 16),
		Stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	return m, nil
}

// Run is thread E: steps the CPU, paces against wall-clock, drains key
// events non-blockingly, and exits (flushing battery RAM) on Stop. Wait
// blocks until Run has returned and battery RAM has been flushed.
func (m *Machine) Run() {
	defer close(m.done)
	defer m.flushBattery()

	var elapsedNS float64
	start := time.Now()
	for {
		select {
		case <-m.Stop:
			return
		default:
		}

		m.drainKeys()

		var pc uint16
		var op byte
		if m.cfg.Trace {
			pc = m.cpu.PC
			op = m.bus.Read(pc)
		}
		mcycles := m.cpu.Step()
		if m.cfg.Trace {
			log.Printf("pc=%#04x op=%#02x cost=%d", pc, op, mcycles)
		}

		if m.cfg.LimitFPS {
			elapsedNS += float64(mcycles) * nsPerMCycle
			target := start.Add(time.Duration(elapsedNS))
			for time.Now().Before(target) {
				// spin-wait: no suspension points inside a CPU instruction
			}
		}
	}
}

func (m *Machine) drainKeys() {
	for {
		select {
		case ev := <-m.Keys:
			bit := buttonBits[ev.Button]
			if ev.Down {
				m.buttons |= bit
			} else {
				m.buttons &^= bit
			}
			m.bus.SetButtons(m.buttons)
		default:
			return
		}
	}
}

func (m *Machine) flushBattery() {
	if err := cart.SaveBattery(m.cart, m.romPath, m.battery); err != nil {
		log.Printf("emu: save write: %v", err)
	}
}

// RequestStop is a non-blocking convenience for callers that may be
// invoked more than once (closing an already-closed channel panics).
func (m *Machine) RequestStop() {
	select {
	case <-m.Stop:
	default:
		close(m.Stop)
	}
}

// Wait blocks until Run has returned (and battery RAM has been flushed).
func (m *Machine) Wait() { <-m.done }

func (m *Machine) String() string {
	return fmt.Sprintf("Machine{pc=%#04x}", m.cpu.PC)
}
