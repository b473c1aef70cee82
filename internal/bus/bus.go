package bus

import (
	"fmt"

	"github.com/FabianRolfMatthiasNoll/gbnet/internal/cart"
)

const (
	biosSize = 0x100
	romSize  = cart.ROMSize
)

// Bus decodes the 16-bit address space onto fixed backing stores. Regions
// that belong to subsystems this machine does not emulate (VRAM, OAM, I/O)
// answer with ErrFeatureNotImplemented rather than pretending to work.
type Bus struct {
	bios [biosSize]byte
	rom  cart.Cartridge
	wram [0x2000]byte // 8KB internal RAM, shadowed at E000–FDFF
	eram [0x2000]byte // 8KB external RAM
	hram [0x80]byte
	ie   byte

	// cleared by the first instruction fetch at or above 0x0100, never set again
	inBios bool
}

// New builds a bus with the BIOS overlay active and an empty cartridge.
func New(bios []byte) (*Bus, error) {
	if len(bios) > biosSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrBIOSTooLarge, len(bios))
	}
	b := &Bus{inBios: true}
	copy(b.bios[:], bios)
	b.rom, _ = cart.NewROMOnly(nil)
	return b, nil
}

// LoadROM installs a cartridge image. Oversized images are truncated to the
// fixed two-bank window and reported with a *ROMSizeError; the bus remains
// usable.
func (b *Bus) LoadROM(data []byte) error {
	c, truncated := cart.NewROMOnly(data)
	b.rom = c
	if truncated {
		return &ROMSizeError{Size: len(data)}
	}
	return nil
}

// InBIOS reports whether 0x0000–0x00FF is still served by the BIOS.
func (b *Bus) InBIOS() bool { return b.inBios }

// Fetch reads a byte of the instruction stream. Fetching at or above 0x0100
// drops the BIOS overlay for the rest of the run.
func (b *Bus) Fetch(addr uint16) (byte, error) {
	if b.inBios && addr >= biosSize {
		b.inBios = false
	}
	return b.ReadByte(addr)
}

// ReadByte is a data read. It never touches the BIOS latch.
func (b *Bus) ReadByte(addr uint16) (byte, error) {
	switch {
	case addr < biosSize:
		if b.inBios {
			return b.bios[addr], nil
		}
		return b.rom.Read(addr), nil
	case addr < 0x8000: // ROM banks 0 and 1
		return b.rom.Read(addr), nil
	case addr < 0xA000:
		return 0xFF, notImplemented(addr, false, "VRAM")
	case addr < 0xC000:
		return b.eram[addr&0x1FFF], nil
	case addr < 0xFE00: // WRAM and shadow
		return b.wram[addr&0x1FFF], nil
	case addr < 0xFEA0:
		return 0xFF, notImplemented(addr, false, "OAM")
	case addr < 0xFF00:
		return 0xFF, readFault(addr, "restricted")
	case addr < 0xFF80:
		return 0xFF, notImplemented(addr, false, "I/O")
	case addr < 0xFFFF:
		return b.hram[addr&0x7F], nil
	default:
		return b.ie, nil
	}
}

// WriteByte stores value, or reports why the region cannot take it.
func (b *Bus) WriteByte(addr uint16, value byte) error {
	switch {
	case addr < 0x8000:
		return writeFault(addr, fmt.Sprintf("ROM%d", cart.Bank(addr)))
	case addr < 0xA000:
		return notImplemented(addr, true, "VRAM")
	case addr < 0xC000:
		b.eram[addr&0x1FFF] = value
	case addr < 0xFE00:
		b.wram[addr&0x1FFF] = value
	case addr < 0xFEA0:
		return notImplemented(addr, true, "OAM")
	case addr < 0xFF00:
		return writeFault(addr, "restricted")
	case addr < 0xFF80:
		return notImplemented(addr, true, "I/O")
	case addr < 0xFFFF:
		b.hram[addr&0x7F] = value
	default:
		b.ie = value
	}
	return nil
}

// ReadWord reads a little-endian word: low byte at addr, high at addr+1.
func (b *Bus) ReadWord(addr uint16) (uint16, error) {
	lo, err := b.ReadByte(addr)
	if err != nil {
		return 0, err
	}
	hi, err := b.ReadByte(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func (b *Bus) WriteWord(addr uint16, value uint16) error {
	if err := b.WriteByte(addr, byte(value)); err != nil {
		return err
	}
	return b.WriteByte(addr+1, byte(value>>8))
}
