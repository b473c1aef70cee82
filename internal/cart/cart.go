package cart

import "fmt"

// Cartridge is the read side of a cartridge as the bus sees it. The bus
// rejects writes into the cartridge window before they reach an image.
type Cartridge interface {
	// Read returns the byte at a CPU address in 0x0000–0x7FFF.
	Read(addr uint16) byte
	// Size is the number of bytes that came from the loaded file.
	Size() int
}

// Describe returns a one line summary of a ROM for logs. Mapper cartridges
// still load as ROMOnly; only banks 0 and 1 are ever visible.
func Describe(rom []byte) string {
	h, err := ParseHeader(rom)
	if err != nil {
		return fmt.Sprintf("%d bytes, no header", len(rom))
	}
	s := fmt.Sprintf("%q type=%s banks=%d ram=%dB", h.Title, h.CartTypeStr, h.ROMBanks, h.RAMSizeBytes)
	if h.CartType != 0x00 {
		s += " (mapper ignored, fixed banks 0-1)"
	}
	if !HeaderChecksumOK(rom) {
		s += " (bad header checksum)"
	}
	return s
}
