package cart

import "testing"

func TestMBC1_ROMBanking(t *testing.T) {
	// Build a 128KiB ROM (8 banks) with a distinct byte at the start of each bank.
	rom := make([]byte, 128*1024)
	for bank := 0; bank < 8; bank++ {
		rom[bank*0x4000] = byte(bank)
	}
	m := NewMBC1(rom, 0, 0, 8)

	if got := m.Read(0x0000); got != 0x00 {
		t.Fatalf("bank0 region read got %02X want 00", got)
	}
	if got := m.Read(0x4000); got != 0x01 {
		t.Fatalf("switchable bank defaults to 1: got %02X", got)
	}

	m.Write(0x2000, 0x03)
	if got := m.Read(0x4000); got != 0x03 {
		t.Fatalf("bank3 read got %02X want 03", got)
	}

	m.Write(0x2000, 0x00)
	if got := m.Read(0x4000); got != 0x01 {
		t.Fatalf("bank0->1 remap failed: got %02X", got)
	}
}

func TestMBC1_ROMBank_WrapsModuloBankCount(t *testing.T) {
	rom := make([]byte, 32*1024) // 2 banks only
	rom[0x4000] = 0xAA           // bank 1
	m := NewMBC1(rom, 0, 0, 2)

	m.Write(0x2000, 0x03) // bank 3 wraps to bank 1 (3 % 2 == 1)
	if got := m.Read(0x4000); got != 0xAA {
		t.Fatalf("bank wrap got %02X want AA", got)
	}
}

func TestMBC1_RAMBanking_Mode1(t *testing.T) {
	rom := make([]byte, 128*1024)
	m := NewMBC1(rom, 32*1024, 4, 8)

	m.Write(0x0000, 0x0A) // RAM enable
	m.Write(0x6000, 0x01) // mode 1: RAM banking
	m.Write(0x4000, 0x02) // RAM bank 2

	m.Write(0xA000, 0x77)
	if got := m.Read(0xA000); got != 0x77 {
		t.Fatalf("RAM bank2 RW failed: got %02X", got)
	}

	// Switching back to mode 0 exposes RAM bank 0 again.
	m.Write(0x6000, 0x00)
	m.Write(0xA000, 0x11)
	if got := m.Read(0xA000); got != 0x11 {
		t.Fatalf("RAM bank0 RW failed: got %02X", got)
	}

	m.Write(0x6000, 0x01)
	if got := m.Read(0xA000); got != 0x77 {
		t.Fatalf("RAM bank2 not preserved: got %02X", got)
	}
}

func TestMBC1_RAMDisabledReadsFF(t *testing.T) {
	rom := make([]byte, 32*1024)
	m := NewMBC1(rom, 8*1024, 1, 2)

	if got := m.Read(0xA000); got != 0xFF {
		t.Fatalf("disabled RAM read got %02X want FF", got)
	}
	m.Write(0xA000, 0x42) // ignored while disabled
	m.Write(0x0000, 0x0A)
	if got := m.Read(0xA000); got != 0x00 {
		t.Fatalf("write-while-disabled leaked through: got %02X", got)
	}
}

func TestMBC1_SaveLoadRAM(t *testing.T) {
	rom := make([]byte, 32*1024)
	m := NewMBC1(rom, 8*1024, 1, 2)
	m.Write(0x0000, 0x0A)
	m.Write(0xA010, 0x99)

	data := m.SaveRAM()
	n := NewMBC1(rom, 8*1024, 1, 2)
	n.LoadRAM(data)
	n.Write(0x0000, 0x0A)
	if got := n.Read(0xA010); got != 0x99 {
		t.Fatalf("loaded RAM got %02X want 99", got)
	}
	if n.RAMBankCount() != 1 {
		t.Fatalf("RAMBankCount got %d want 1", n.RAMBankCount())
	}
}
