package cart

import "testing"

func TestMBC5_Bank0SelectableInSwitchableWindow(t *testing.T) {
	rom := make([]byte, 512*1024) // 32 banks
	rom[0x0000] = 0xAA            // fixed bank 0
	m := NewMBC5(rom, 0, 0, 32)

	m.Write(0x2000, 0x00) // low byte of bank register = 0
	if got := m.Read(0x4000); got != 0xAA {
		t.Fatalf("bank 0 in switchable window got %02X want AA", got)
	}
}

func TestMBC5_NineBitBankNumber(t *testing.T) {
	rom := make([]byte, 0x200*0x4000) // 512 banks, 9-bit range
	rom[0x101*0x4000] = 0x5A
	m := NewMBC5(rom, 0, 0, 0x200)

	m.Write(0x2000, 0x01) // low 8 bits
	m.Write(0x3000, 0x01) // bit 8
	if got := m.Read(0x4000); got != 0x5A {
		t.Fatalf("bank 0x101 read got %02X want 5A", got)
	}
}

// TestMBC5_ScenarioModuloReductionPerWrite exercises the case where a
// declared bank count smaller than the raw selector requires reduction
// after each register write, not just once at read time: with 64 banks
// declared, writing 0x42 to the low register then 0x01 to the high-bit
// register must settle on effective bank 0x02.
func TestMBC5_ScenarioModuloReductionPerWrite(t *testing.T) {
	rom := make([]byte, 64*0x4000)
	rom[0x02*0x4000] = 0x77
	m := NewMBC5(rom, 0, 0, 64)

	m.Write(0x2000, 0x42)
	m.Write(0x3000, 0x01)

	if got := m.Read(0x4000); got != 0x77 {
		t.Fatalf("reduced bank read got %02X want 77 (bank 0x02)", got)
	}
}

func TestMBC5_RAMBankWraps(t *testing.T) {
	rom := make([]byte, 0x8000)
	m := NewMBC5(rom, 2*0x2000, 2, 2)

	m.Write(0x0000, 0x0A) // RAM enable
	m.Write(0x4000, 0x03) // wraps to bank 1 (3 % 2)
	m.Write(0xA000, 0x9C)

	m.Write(0x4000, 0x01)
	if got := m.Read(0xA000); got != 0x9C {
		t.Fatalf("wrapped RAM bank read got %02X want 9C", got)
	}
}

func TestMBC5_SaveLoadRAM(t *testing.T) {
	rom := make([]byte, 0x8000)
	m := NewMBC5(rom, 0x2000, 1, 2)
	m.Write(0x0000, 0x0A)
	m.Write(0xA020, 0x33)

	data := m.SaveRAM()
	n := NewMBC5(rom, 0x2000, 1, 2)
	n.LoadRAM(data)
	n.Write(0x0000, 0x0A)
	if got := n.Read(0xA020); got != 0x33 {
		t.Fatalf("loaded RAM got %02X want 33", got)
	}
}
