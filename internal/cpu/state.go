package cpu

import "fmt"

// State is a copy of everything observable about the core. Taking one has
// no effect on execution.
type State struct {
	Registers

	IME     bool
	EIDelay int // instructions left before a pending EI takes effect
	Halted  bool
	Stopped bool

	TotalCycles  uint64
	LastOpCycles int

	LastPC     uint16
	LastOpcode byte
	LastCB     byte
	Prefixed   bool
}

func (c *CPU) State() State {
	return State{
		Registers:    c.Registers,
		IME:          c.IME,
		EIDelay:      c.imeDelay,
		Halted:       c.halted,
		Stopped:      c.stopped,
		TotalCycles:  c.totalCycles,
		LastOpCycles: c.lastOpCycles,
		LastPC:       c.lastPC,
		LastOpcode:   c.lastOp,
		LastCB:       c.lastCB,
		Prefixed:     c.prefixed,
	}
}

// Restore loads a snapshot taken with State. The continuation flag is not
// part of the snapshot and is left alone.
func (c *CPU) Restore(s State) {
	c.Registers = s.Registers
	c.F &= 0xF0
	c.IME, c.imeDelay = s.IME, s.EIDelay
	c.halted, c.stopped = s.Halted, s.Stopped
	c.totalCycles, c.lastOpCycles = s.TotalCycles, s.LastOpCycles
	c.lastPC, c.lastOp, c.lastCB, c.prefixed = s.LastPC, s.LastOpcode, s.LastCB, s.Prefixed
}

// Flags renders F as ZNHC with '-' for clear bits.
func (s State) Flags() string {
	b := []byte("----")
	for i, f := range []struct {
		on bool
		ch byte
	}{{s.FlagZ(), 'Z'}, {s.FlagN(), 'N'}, {s.FlagH(), 'H'}, {s.FlagC(), 'C'}} {
		if f.on {
			b[i] = f.ch
		}
	}
	return string(b)
}

// LastMnemonic names the instruction last dispatched.
func (s State) LastMnemonic() string {
	if s.Prefixed {
		return extended[s.LastCB].mnemonic
	}
	return primary[s.LastOpcode].mnemonic
}

// TraceLine is the one-line form written by Start in verbose mode.
func (s State) TraceLine() string {
	op := fmt.Sprintf("%02X", s.LastOpcode)
	if s.Prefixed {
		op = fmt.Sprintf("CB%02X", s.LastCB)
	}
	return fmt.Sprintf("PC=%04X OP=%-4s cyc=%d A=%02X F=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X IME=%t %-12s %s",
		s.LastPC, op, s.LastOpCycles, s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.SP, s.IME, s.LastMnemonic(), s.Flags())
}

// String is a multi-line register dump for debugging.
func (s State) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X\nSP=%04X PC=%04X %s IME=%t halted=%t\ncycles=%d",
		s.AF(), s.BC(), s.DE(), s.HL(), s.SP, s.PC, s.Flags(), s.IME, s.Halted, s.TotalCycles)
}
