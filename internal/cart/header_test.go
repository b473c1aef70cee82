package cart

import (
	"errors"
	"strings"
	"testing"
)

// buildROM makes a synthetic ROM with a valid header checksum.
func buildROM(title string, cartType, romSizeCode, ramSizeCode byte, size int) []byte {
	rom := make([]byte, size)
	copy(rom[0x0104:], nintendoLogo[:])
	copy(rom[0x0134:0x0144], title)
	rom[0x0147] = cartType
	rom[0x0148] = romSizeCode
	rom[0x0149] = ramSizeCode

	var hsum byte
	for addr := 0x0134; addr <= 0x014C; addr++ {
		hsum = hsum - rom[addr] - 1
	}
	rom[0x014D] = hsum
	return rom
}

func TestParseHeader_Basic(t *testing.T) {
	rom := buildROM("TEST", 0x01, 0x01, 0x02, 64*1024)

	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("ParseHeader error: %v", err)
	}
	if h.Title != "TEST" {
		t.Fatalf("Title got %q want %q", h.Title, "TEST")
	}
	if h.CartTypeStr != "MBC1" {
		t.Fatalf("CartType got %#02x / %s", h.CartType, h.CartTypeStr)
	}
	if h.ROMSizeBytes != 64*1024 || h.ROMBanks != 4 {
		t.Fatalf("ROM size decode got %d bytes / %d banks", h.ROMSizeBytes, h.ROMBanks)
	}
	if h.RAMSizeBytes != 8*1024 {
		t.Fatalf("RAM size decode got %d", h.RAMSizeBytes)
	}
	if !h.LogoOK {
		t.Fatalf("LogoOK = false, want true")
	}
	if !HeaderChecksumOK(rom) {
		t.Fatalf("HeaderChecksumOK = false, want true")
	}
}

func TestHeaderChecksum_Bad(t *testing.T) {
	rom := buildROM("TEST", 0x00, 0x00, 0x00, 32*1024)
	rom[0x0134] ^= 0xFF
	if HeaderChecksumOK(rom) {
		t.Fatalf("HeaderChecksumOK = true, want false after corruption")
	}
	if d := Describe(rom); !strings.Contains(d, "bad header checksum") {
		t.Fatalf("Describe got %q", d)
	}
}

func TestParseHeader_ShortROM(t *testing.T) {
	_, err := ParseHeader(make([]byte, 0x140))
	if !errors.Is(err, ErrNoHeader) {
		t.Fatalf("expected ErrNoHeader, got %v", err)
	}
	if d := Describe([]byte{0x3E, 0x42}); d != "2 bytes, no header" {
		t.Fatalf("Describe got %q", d)
	}
}

func TestROMOnly(t *testing.T) {
	c, truncated := NewROMOnly([]byte{0x11, 0x22})
	if truncated || c.Size() != 2 {
		t.Fatalf("short image: truncated=%v size=%d", truncated, c.Size())
	}
	if c.Read(0x0001) != 0x22 || c.Read(0x4000) != 0x00 {
		t.Fatalf("unexpected reads %02x %02x", c.Read(0x0001), c.Read(0x4000))
	}

	big := make([]byte, ROMSize+1)
	big[ROMSize-1] = 0x99
	c, truncated = NewROMOnly(big)
	if !truncated || c.Size() != ROMSize {
		t.Fatalf("oversized image: truncated=%v size=%d", truncated, c.Size())
	}
	if c.Read(0x7FFF) != 0x99 {
		t.Fatalf("last byte got %02x want 99", c.Read(0x7FFF))
	}
	if Bank(0x3FFF) != 0 || Bank(0x4000) != 1 {
		t.Fatalf("bank decode wrong")
	}
}
