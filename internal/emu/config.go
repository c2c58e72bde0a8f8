package emu

// Config contains settings that affect emulation behavior but not its
// semantics.
type Config struct {
	Trace    bool // log the bare opcode byte and PC per step (no disassembler)
	LimitFPS bool // pace Run() to real wall-clock time via a spin-wait
}
