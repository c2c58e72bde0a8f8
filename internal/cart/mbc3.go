package cart

// MBC3 implements ROM/RAM banking. RTC registers are recognized and
// explicitly rejected (read 0xFF) rather than silently aliased to RAM
// bank 0.
//
// - 0000-1FFF: RAM enable (0x0A in low nibble)
// - 2000-3FFF: ROM bank, 7 bits (0 maps to 1)
// - 4000-5FFF: RAM bank 0-3, or RTC register select 0x08-0x0C (rejected)
// - 6000-7FFF: RTC latch (no-op, no RTC implemented)
// - A000-BFFF: external RAM, only while a RAM bank (not an RTC register) is selected
type MBC3 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBank    byte // 7 bits (1..127)
	ramBank    byte // 0..3 when valid
	rtcSelect  bool // an RTC register (0x08-0x0C) is currently selected instead of a RAM bank

	romBanks int
	ramBanks int
}

func NewMBC3(rom []byte, ramSize, ramBanks, romBanks int) *MBC3 {
	m := &MBC3{rom: rom, romBank: 1, romBanks: romBanks, ramBanks: ramBanks}
	if ramSize > 0 {
		m.ram = make([]byte, ramSize)
	}
	if m.romBanks == 0 {
		m.romBanks = 2
	}
	return m
}

func (m *MBC3) Read(addr uint16) byte {
	switch {
	case addr < 0x4000:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
		return 0xFF
	case addr < 0x8000:
		bank := int(m.romBank&0x7F) % m.romBanks
		off := bank*0x4000 + int(addr-0x4000)
		if off >= 0 && off < len(m.rom) {
			return m.rom[off]
		}
		return 0xFF
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || m.rtcSelect || len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[m.ramOffset(addr)]
	default:
		return 0xFF
	}
}

func (m *MBC3) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = (value & 0x0F) == 0x0A
	case addr < 0x4000:
		v := value & 0x7F
		if v == 0 {
			v = 1
		}
		m.romBank = v
	case addr < 0x6000:
		if value <= 0x03 {
			m.ramBank = value
			m.rtcSelect = false
		} else if value >= 0x08 && value <= 0x0C {
			m.rtcSelect = true
		}
	case addr < 0x8000:
		// RTC latch: no-op, no RTC implemented.
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || m.rtcSelect || len(m.ram) == 0 {
			return
		}
		m.ram[m.ramOffset(addr)] = value
	}
}

func (m *MBC3) ramOffset(addr uint16) int {
	bank := int(m.ramBank)
	if m.ramBanks > 0 {
		bank %= m.ramBanks
	}
	off := bank*0x2000 + int(addr-0xA000)
	if off >= len(m.ram) {
		return 0
	}
	return off
}

func (m *MBC3) SaveRAM() []byte {
	if len(m.ram) == 0 {
		return nil
	}
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}

func (m *MBC3) LoadRAM(data []byte) {
	if len(m.ram) == 0 || len(data) == 0 {
		return
	}
	copy(m.ram, data)
}

func (m *MBC3) RAMBankCount() int { return m.ramBanks }
