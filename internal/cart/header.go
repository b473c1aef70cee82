package cart

import (
	"encoding/binary"
	"errors"
	"strings"
)

const (
	headerTitle    = 0x0134
	headerCartType = 0x0147
	headerROMSize  = 0x0148
	headerRAMSize  = 0x0149
	headerChecksum = 0x014D
	headerGlobal   = 0x014E
	headerEnd      = 0x014F
)

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83, 0x00, 0x0C, 0x00, 0x0D,
	0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E, 0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99,
	0xBB, 0xBB, 0x67, 0x63, 0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// ErrNoHeader is returned for images too short to hold a cartridge header.
var ErrNoHeader = errors.New("rom too small to contain header")

// Header holds the fields of the cartridge header the harness reports on.
type Header struct {
	Title          string
	CartType       byte
	ROMSizeCode    byte
	RAMSizeCode    byte
	HeaderChecksum byte
	GlobalChecksum uint16
	LogoOK         bool

	// decoded
	ROMSizeBytes int
	ROMBanks     int
	RAMSizeBytes int
	CartTypeStr  string
}

func ParseHeader(rom []byte) (*Header, error) {
	if len(rom) <= headerEnd {
		return nil, ErrNoHeader
	}

	h := &Header{
		Title:          strings.TrimRight(string(rom[headerTitle:headerTitle+16]), "\x00"),
		CartType:       rom[headerCartType],
		ROMSizeCode:    rom[headerROMSize],
		RAMSizeCode:    rom[headerRAMSize],
		HeaderChecksum: rom[headerChecksum],
		GlobalChecksum: binary.BigEndian.Uint16(rom[headerGlobal : headerEnd+1]),
		LogoOK:         [48]byte(rom[0x0104:0x0134]) == nintendoLogo,
	}
	if h.ROMSizeCode <= 0x08 {
		h.ROMSizeBytes = (32 * 1024) << h.ROMSizeCode
		h.ROMBanks = 2 << h.ROMSizeCode
	}
	h.RAMSizeBytes = ramSizes[h.RAMSizeCode]
	h.CartTypeStr = cartTypeString(h.CartType)

	return h, nil
}

// HeaderChecksumOK recomputes the checksum over 0x0134–0x014C.
func HeaderChecksumOK(rom []byte) bool {
	if len(rom) <= headerChecksum {
		return false
	}
	var sum byte
	for _, v := range rom[headerTitle:headerChecksum] {
		sum = sum - v - 1
	}
	return sum == rom[headerChecksum]
}

var ramSizes = map[byte]int{
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

func cartTypeString(code byte) string {
	switch code {
	case 0x00:
		return "ROM ONLY"
	case 0x01, 0x02, 0x03:
		return "MBC1"
	case 0x05, 0x06:
		return "MBC2"
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return "MBC3"
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return "MBC5"
	}
	return "unknown"
}
