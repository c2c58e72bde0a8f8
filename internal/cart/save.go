package cart

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
)

// SavePath returns the ROM path with its extension replaced by "gbsave".
func SavePath(romPath string) string {
	ext := filepath.Ext(romPath)
	return strings.TrimSuffix(romPath, ext) + ".gbsave"
}

// sumPath returns the sidecar file recording the xxhash of the last
// battery RAM write, used to detect corruption on the next load.
func sumPath(savePath string) string {
	return savePath + ".sum"
}

// LoadBattery loads battery-backed RAM for c from path if c implements
// BatteryBacked and declares a battery. A missing file is not an error
// (fresh cartridge); a present file whose length doesn't match
// 0x2000*RAMBankCount() is treated as a save I/O error: proceed with
// zero-initialized RAM and log a warning rather than failing start-up.
// When a sidecar hash from the last save exists and doesn't match the
// loaded data, the mismatch is logged but is not fatal, matching the
// non-fatal policy used for header checksum mismatches.
func LoadBattery(c Cartridge, romPath string, hasBattery bool) {
	bb, ok := c.(BatteryBacked)
	if !ok || !hasBattery {
		return
	}
	path := SavePath(romPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("gbemu: save read %s: %v (starting with blank RAM)", path, err)
		}
		return
	}
	want := 0x2000 * bb.RAMBankCount()
	if len(data) != want {
		log.Printf("gbemu: save %s is %d bytes, want %d; starting with blank RAM", path, len(data), want)
		return
	}
	if recorded, err := os.ReadFile(sumPath(path)); err == nil && len(recorded) == 8 {
		want := binary.LittleEndian.Uint64(recorded)
		if got := xxhash.Sum64(data); got != want {
			log.Printf("gbemu: save %s hash mismatch (got %x want %x); loading anyway", path, got, want)
		}
	}
	bb.LoadRAM(data)
}

// SaveBattery writes c's external RAM to path beside romPath when c
// declares a battery, along with a sidecar xxhash for the next load's
// corruption check. Write failures are returned to the caller as
// wrapped errors; SaveBattery neither logs them nor ends the process.
func SaveBattery(c Cartridge, romPath string, hasBattery bool) error {
	bb, ok := c.(BatteryBacked)
	if !ok || !hasBattery {
		return nil
	}
	data := bb.SaveRAM()
	if data == nil {
		return nil
	}
	path := SavePath(romPath)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cart: write save %s: %w", path, err)
	}
	var sumBuf [8]byte
	binary.LittleEndian.PutUint64(sumBuf[:], xxhash.Sum64(data))
	if err := os.WriteFile(sumPath(path), sumBuf[:], 0o644); err != nil {
		return fmt.Errorf("cart: write save hash %s: %w", sumPath(path), err)
	}
	return nil
}
