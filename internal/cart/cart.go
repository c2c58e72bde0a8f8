package cart

// Cartridge defines the minimal interface the bus needs for ROM/RAM
// banking. Implementations own everything the header
// declares about their variant: ROM bank count, RAM bank count, and
// whether writes to 0xA000-0xBFFF are live.
type Cartridge interface {
	// Read returns a byte for ROM (0x0000-0x7FFF) or external RAM (0xA000-0xBFFF).
	Read(addr uint16) byte
	// Write handles MBC control writes (0x0000-0x7FFF) and external RAM writes (0xA000-0xBFFF).
	Write(addr uint16, value byte)
}

// BatteryBacked is implemented by cartridges whose external RAM should
// be persisted to a save file.
type BatteryBacked interface {
	SaveRAM() []byte
	LoadRAM(data []byte)
	RAMBankCount() int
}

// New picks an implementation based on the already-validated header.
// Callers are expected to have called ParseHeader first; New never
// fails — an unsupported type would already have been rejected there.
func New(rom []byte, h *Header) Cartridge {
	switch h.CartType {
	case 0x01, 0x02, 0x03:
		return NewMBC1(rom, h.RAMSizeBytes, h.RAMBanks, h.ROMBanks)
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return NewMBC3(rom, h.RAMSizeBytes, h.RAMBanks, h.ROMBanks)
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return NewMBC5(rom, h.RAMSizeBytes, h.RAMBanks, h.ROMBanks)
	default:
		return NewROMOnly(rom)
	}
}
