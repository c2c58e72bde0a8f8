package ui

import (
	"github.com/dmgcore/gbemu/internal/emu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenW = 160
	screenH = 144
)

// App is thread H: it owns the window, turns keyboard input
// into key events for the emulator, and blits whatever frame last arrived
// on the Machine's frame channel. It never touches CPU/bus state directly.
type App struct {
	cfg Config
	m   *emu.Machine

	tex  *ebiten.Image
	pix  []byte // scratch RGBA buffer reused across frames
	keys map[ebiten.Key]emu.Button
}

// NewApp wires cfg and the already-constructed Machine into a host window.
// The Machine's Run (the step loop) is expected to run in its own
// goroutine; NewApp only drives the window side.
func NewApp(cfg Config, m *emu.Machine) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(screenW*cfg.Scale, screenH*cfg.Scale)
	a := &App{
		cfg: cfg,
		m:   m,
		tex: ebiten.NewImage(screenW, screenH),
		pix: make([]byte, screenW*screenH*4),
		keys: map[ebiten.Key]emu.Button{
			ebiten.KeyArrowUp:    emu.Up,
			ebiten.KeyArrowDown:  emu.Down,
			ebiten.KeyArrowLeft:  emu.Left,
			ebiten.KeyArrowRight: emu.Right,
			ebiten.KeyZ:          emu.A,
			ebiten.KeyX:          emu.B,
			ebiten.KeyEnter:      emu.Start,
			ebiten.KeyShiftRight: emu.Select,
		},
	}
	return a
}

func (a *App) Run() error { return ebiten.RunGame(a) }

// Update samples keyboard edges and forwards each as a KeyEvent; the
// Machine drains and applies them from its own goroutine.
func (a *App) Update() error {
	for key, btn := range a.keys {
		if inpututil.IsKeyJustPressed(key) {
			a.send(btn, true)
		}
		if inpututil.IsKeyJustReleased(key) {
			a.send(btn, false)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.m.RequestStop()
	}
	return nil
}

func (a *App) send(btn emu.Button, down bool) {
	select {
	case a.m.Keys <- emu.KeyEvent{Button: btn, Down: down}:
	default:
		// key channel full: drop rather than block thread H
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	select {
	case frame := <-a.m.Frames:
		for i, px := range frame {
			o := i * 4
			a.pix[o] = byte(px >> 16)
			a.pix[o+1] = byte(px >> 8)
			a.pix[o+2] = byte(px)
			a.pix[o+3] = 0xFF
		}
		a.tex.WritePixels(a.pix)
	default:
		// no new frame since the last Draw: keep showing the previous one
	}
	screen.DrawImage(a.tex, nil)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) { return screenW, screenH }
