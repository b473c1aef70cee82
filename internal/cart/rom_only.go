package cart

// ROMSize is the two fixed 16KiB banks mapped at 0x0000–0x7FFF.
const ROMSize = 0x8000

// ROMOnly is a flat cartridge image without a mapper. Bytes past the end of
// a short image read as zero.
type ROMOnly struct {
	rom  [ROMSize]byte
	size int
}

// NewROMOnly copies data into a fixed two-bank image. truncated reports
// whether data was longer than the window and had its tail dropped.
func NewROMOnly(data []byte) (c *ROMOnly, truncated bool) {
	c = &ROMOnly{}
	c.size = copy(c.rom[:], data)
	return c, len(data) > ROMSize
}

func (c *ROMOnly) Read(addr uint16) byte {
	return c.rom[addr&(ROMSize-1)]
}

func (c *ROMOnly) Size() int { return c.size }

// Bank reports which fixed bank an address falls in.
func Bank(addr uint16) int {
	return int(addr>>14) & 1
}
