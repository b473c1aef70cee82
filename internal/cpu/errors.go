package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrInstructionNotImplemented is wrapped by InstructionError.
	ErrInstructionNotImplemented = errors.New("instruction not implemented")

	// ErrInstructionOutOfRange is returned when there is nothing to fetch
	// from. PC is 16 bits and wraps, so a CPU with memory never returns it.
	ErrInstructionOutOfRange = errors.New("instruction fetch out of range")
)

// InstructionError reports an opcode with no handler.
type InstructionError struct {
	PC       uint16 // address of the opcode (of the 0xCB prefix for CB opcodes)
	Opcode   byte
	Prefixed bool
}

func (e *InstructionError) Error() string {
	if e.Prefixed {
		return fmt.Sprintf("CB %#02x at %#04x: %v", e.Opcode, e.PC, ErrInstructionNotImplemented)
	}
	return fmt.Sprintf("opcode %#02x at %#04x: %v", e.Opcode, e.PC, ErrInstructionNotImplemented)
}

func (e *InstructionError) Unwrap() error { return ErrInstructionNotImplemented }
