package cart

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

const (
	headerStart = 0x0100
	headerEnd   = 0x014F
)

// ErrInvalidCartridge and ErrUnsupportedCartridge are the two fatal
// start-up error classes.
var (
	ErrInvalidCartridge     = errors.New("cart: invalid cartridge header")
	ErrUnsupportedCartridge = errors.New("cart: unsupported MBC type")
)

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Header holds the decoded fields of the 0x0100-0x014F cartridge header.
type Header struct {
	Title           string // (trimmed ASCII)
	CGBFlag         byte   // 0x0143
	NewLicensee     string // 0x0144-0x0145 (ASCII), if old==0x33
	SGBFlag         byte   // 0x0146
	CartType        byte   // 0x0147
	ROMSizeCode     byte   // 0x0148
	RAMSizeCode     byte   // 0x0149
	Destination     byte   // 0x014A
	OldLicensee     byte   // 0x014B
	ROMVersion      byte   // 0x014C
	HeaderChecksum  byte   // 0x014D
	GlobalChecksum  uint16 // 0x014E-0x014F

	// Decoded helpers (for logs and bank-index wrapping)
	ROMSizeBytes int
	ROMBanks     int
	RAMSizeBytes int
	RAMBanks     int
	CartTypeStr  string

	// ChecksumOK is false on a header-checksum mismatch; this is
	// treated as a non-fatal warning, not an error return.
	ChecksumOK bool
}

// ParseHeader validates the Nintendo logo (0x0104-0x0133) and decodes
// the header. A logo mismatch or truncated/misaligned ROM returns
// ErrInvalidCartridge; an unrecognized MBC type byte (0x0147) returns
// ErrUnsupportedCartridge. Both are fatal.
func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) < headerEnd+1 {
		return nil, fmt.Errorf("%w: rom too short for header (%d bytes)", ErrInvalidCartridge, len(rom))
	}
	if len(rom)%0x4000 != 0 {
		return nil, fmt.Errorf("%w: rom length %d is not a multiple of 0x4000", ErrInvalidCartridge, len(rom))
	}
	for i := 0; i < 48; i++ {
		if rom[0x0104+i] != nintendoLogo[i] {
			return nil, fmt.Errorf("%w: nintendo logo mismatch at offset 0x%04X", ErrInvalidCartridge, 0x0104+i)
		}
	}

	// Title region is 0x0134–0x0143, but parts overlap on newer carts.
	rawTitle := rom[0x0134:0x0144]
	title := strings.TrimRight(string(rawTitle), "\x00")

	h := &Header{
		Title:          title,
		CGBFlag:        rom[0x0143],
		NewLicensee:    string(rom[0x0144:0x0146]),
		SGBFlag:        rom[0x0146],
		CartType:       rom[0x0147],
		ROMSizeCode:    rom[0x0148],
		RAMSizeCode:    rom[0x0149],
		Destination:    rom[0x014A],
		OldLicensee:    rom[0x014B],
		ROMVersion:     rom[0x014C],
		HeaderChecksum: rom[0x014D],
		GlobalChecksum: binary.BigEndian.Uint16(rom[0x014E:0x0150]),
	}

	h.ROMSizeBytes, h.ROMBanks = decodeROMSize(h.ROMSizeCode)
	h.RAMSizeBytes, h.RAMBanks = decodeRAMSize(h.RAMSizeCode)
	h.CartTypeStr = cartTypeString(h.CartType)
	h.ChecksumOK = computeHeaderChecksum(rom) == h.HeaderChecksum

	if !IsSupported(h.CartType) {
		return h, fmt.Errorf("%w: cart type 0x%02X (%s)", ErrUnsupportedCartridge, h.CartType, h.CartTypeStr)
	}
	return h, nil
}

// IsSupported reports whether cartType is one this core can map:
// ROM-only, MBC1, MBC3, or MBC5.
func IsSupported(cartType byte) bool {
	switch cartType {
	case 0x00:
		return true
	case 0x01, 0x02, 0x03:
		return true
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return true
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return true
	default:
		return false
	}
}

// HasBattery reports whether cartType persists external RAM across power loss.
func HasBattery(cartType byte) bool {
	switch cartType {
	case 0x03, 0x0F, 0x10, 0x13, 0x1B, 0x1E:
		return true
	default:
		return false
	}
}

// computeHeaderChecksum recomputes the 0x014D byte from 0x0134-0x014C.
func computeHeaderChecksum(rom []byte) byte {
	var sum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		sum = sum - rom[addr] - 1
	}
	return sum
}

func decodeROMSize(code byte) (size, banks int) {
	switch code {
	case 0x00:
		return 32 * 1024, 2
	case 0x01:
		return 64 * 1024, 4
	case 0x02:
		return 128 * 1024, 8
	case 0x03:
		return 256 * 1024, 16
	case 0x04:
		return 512 * 1024, 32
	case 0x05:
		return 1 * 1024 * 1024, 64
	case 0x06:
		return 2 * 1024 * 1024, 128
	case 0x07:
		return 4 * 1024 * 1024, 256
	case 0x08:
		return 8 * 1024 * 1024, 512
	case 0x52:
		return 1152 * 1024, 72
	case 0x53:
		return 1280 * 1024, 80
	case 0x54:
		return 1536 * 1024, 96
	default:
		return 0, 0
	}
}

func decodeRAMSize(code byte) (size, banks int) {
	switch code {
	case 0x00:
		return 0, 0
	case 0x02:
		return 8 * 1024, 1
	case 0x03:
		return 32 * 1024, 4
	case 0x04:
		return 128 * 1024, 16
	case 0x05:
		return 64 * 1024, 8
	default:
		return 0, 0
	}
}

func cartTypeString(code byte) string {
	switch code {
	case 0x00:
		return "ROM ONLY"
	case 0x01, 0x02, 0x03:
		return "MBC1"
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return "MBC3"
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return "MBC5"
	default:
		return "unknown"
	}
}
