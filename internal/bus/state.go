package bus

import (
	"bytes"
	"encoding/gob"
)

// busState is the writable part of the bus. The cartridge image is not
// included; it is reloaded from the ROM file.
type busState struct {
	BIOS   []byte
	WRAM   []byte
	ERAM   []byte
	HRAM   []byte
	IE     byte
	InBIOS bool
}

func (b *Bus) SaveState() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(busState{
		BIOS:   b.bios[:],
		WRAM:   b.wram[:],
		ERAM:   b.eram[:],
		HRAM:   b.hram[:],
		IE:     b.ie,
		InBIOS: b.inBios,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Bus) LoadState(data []byte) error {
	var s busState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	copy(b.bios[:], s.BIOS)
	copy(b.wram[:], s.WRAM)
	copy(b.eram[:], s.ERAM)
	copy(b.hram[:], s.HRAM)
	b.ie = s.IE
	b.inBios = s.InBIOS
	return nil
}
