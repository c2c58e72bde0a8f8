package cart

// MBC1 implements the standard MBC1 ROM/RAM banking scheme: a 5-bit
// low ROM-bank selector at 0x2000-0x3FFF, and a 2-bit
// register at 0x4000-0x5FFF that always supplies the high two bits of
// the switchable ROM bank (0x4000-0x7FFF). The mode flag at
// 0x6000-0x7FFF decides whether that register also selects the RAM bank
// and the bank mapped at 0x0000-0x3FFF (mode 1) or whether both stay at
// bank 0 (mode 0).
type MBC1 struct {
	rom []byte
	ram []byte

	romBankLow5 byte // 0x2000-0x3FFF write, 0 remapped to 1
	bank2       byte // 0x4000-0x5FFF write: ROM bank bits 5-6; also RAM bank and 0x0000-area bank in mode 1
	ramEnabled  bool
	mode        byte // 0: ROM banking (default), 1: RAM banking

	romBanks int
	ramBanks int
}

func NewMBC1(rom []byte, ramSize, ramBanks, romBanks int) *MBC1 {
	m := &MBC1{rom: rom, romBankLow5: 1, romBanks: romBanks, ramBanks: ramBanks}
	if ramSize > 0 {
		m.ram = make([]byte, ramSize)
	}
	if m.romBanks == 0 {
		m.romBanks = 2
	}
	return m
}

func (m *MBC1) Read(addr uint16) byte {
	switch {
	case addr < 0x4000:
		bank := 0
		if m.mode == 1 {
			bank = int(m.bank2&0x03) << 5
		}
		return m.romByte(bank, addr)
	case addr < 0x8000:
		return m.romByte(m.effectiveROMBank(), addr-0x4000)
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[m.ramOffset(addr)]
	default:
		return 0xFF
	}
}

func (m *MBC1) Write(addr uint16, value byte) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = (value & 0x0F) == 0x0A
	case addr < 0x4000:
		v := value & 0x1F
		if v == 0 {
			v = 1
		}
		m.romBankLow5 = v
	case addr < 0x6000:
		m.bank2 = value & 0x03
	case addr < 0x8000:
		m.mode = value & 0x01
	case addr >= 0xA000 && addr <= 0xBFFF:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		m.ram[m.ramOffset(addr)] = value
	}
}

func (m *MBC1) romByte(bank int, addr uint16) byte {
	if m.romBanks > 0 {
		bank %= m.romBanks
	}
	off := bank*0x4000 + int(addr)
	if off >= 0 && off < len(m.rom) {
		return m.rom[off]
	}
	return 0xFF
}

func (m *MBC1) ramOffset(addr uint16) int {
	bank := 0
	if m.mode == 1 {
		bank = int(m.bank2 & 0x03)
	}
	if m.ramBanks > 0 {
		bank %= m.ramBanks
	}
	off := bank*0x2000 + int(addr-0xA000)
	if off >= len(m.ram) {
		return 0
	}
	return off
}

// effectiveROMBank combines the low-5 selector with the high 2 bits;
// the combined value is never 0 because romBankLow5 is always >= 1,
// though romByte's modulo by the bank count can still map it to bank 0.
func (m *MBC1) effectiveROMBank() int {
	return int(m.romBankLow5) | (int(m.bank2&0x03) << 5)
}

func (m *MBC1) SaveRAM() []byte {
	if len(m.ram) == 0 {
		return nil
	}
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}

func (m *MBC1) LoadRAM(data []byte) {
	if len(m.ram) == 0 || len(data) == 0 {
		return
	}
	copy(m.ram, data)
}

func (m *MBC1) RAMBankCount() int { return m.ramBanks }
