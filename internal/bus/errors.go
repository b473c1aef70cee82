package bus

import (
	"errors"
	"fmt"
)

// Sentinels for the bus error taxonomy. AccessError wraps exactly one of them
// so callers can test with errors.Is.
var (
	ErrMemoryRead            = errors.New("memory read fault")
	ErrMemoryWrite           = errors.New("memory write fault")
	ErrFeatureNotImplemented = errors.New("feature not implemented")
	ErrBIOSTooLarge          = errors.New("bios image larger than 256 bytes")
	ErrROMTooLarge           = errors.New("rom image larger than 32KiB")
)

// AccessError describes a failed bus access.
type AccessError struct {
	Addr   uint16
	Write  bool
	Region string // VRAM, OAM, I/O, ROM0, ROM1, restricted
	Err    error
}

func (e *AccessError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("%s %s at %#04x: %v", e.Region, op, e.Addr, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// ROMSizeError is returned by LoadROM when the image had to be truncated to
// the fixed two-bank window.
type ROMSizeError struct {
	Size int
}

func (e *ROMSizeError) Error() string {
	return fmt.Sprintf("rom is %d bytes, only the first %d were loaded", e.Size, romSize)
}

func (e *ROMSizeError) Unwrap() error { return ErrROMTooLarge }

func readFault(addr uint16, region string) error {
	return &AccessError{Addr: addr, Region: region, Err: ErrMemoryRead}
}

func writeFault(addr uint16, region string) error {
	return &AccessError{Addr: addr, Write: true, Region: region, Err: ErrMemoryWrite}
}

func notImplemented(addr uint16, write bool, region string) error {
	return &AccessError{Addr: addr, Write: write, Region: region, Err: ErrFeatureNotImplemented}
}
