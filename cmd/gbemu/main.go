package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/dmgcore/gbemu/internal/cart"
	"github.com/dmgcore/gbemu/internal/emu"
	"github.com/dmgcore/gbemu/internal/ui"
)

type CLIFlags struct {
	ROMPath string
	Scale   int
	Title   string
	Trace   bool
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.gb)")
	flag.IntVar(&f.Scale, "scale", 3, "window scale")
	flag.StringVar(&f.Title, "title", "gbemu", "window title")
	flag.BoolVar(&f.Trace, "trace", false, "CPU trace log")
	flag.Parse()
	if f.ROMPath == "" && flag.NArg() > 0 {
		f.ROMPath = flag.Arg(0)
	}
	return f
}

func main() {
	f := parseFlags()
	if f.ROMPath == "" {
		log.Fatal("gbemu: no ROM given (usage: gbemu -rom path/to/game.gb)")
	}

	rom, err := os.ReadFile(f.ROMPath)
	if err != nil {
		log.Fatalf("gbemu: read %s: %v", f.ROMPath, err)
	}

	cfg := emu.Config{Trace: f.Trace, LimitFPS: true}
	m, err := emu.New(cfg, rom, f.ROMPath)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidCartridge):
			log.Fatalf("gbemu: invalid cartridge: %v", err)
		case errors.Is(err, cart.ErrUnsupportedCartridge):
			log.Fatalf("gbemu: unsupported cartridge: %v", err)
		default:
			log.Fatalf("gbemu: %v", err)
		}
	}

	go m.Run()

	uiCfg := ui.Config{Title: f.Title, Scale: f.Scale}
	app := ui.NewApp(uiCfg, m)
	err = app.Run()
	m.RequestStop()
	m.Wait()
	if err != nil {
		log.Fatalf("gbemu: %v", err)
	}
}
