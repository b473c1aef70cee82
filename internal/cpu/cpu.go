package cpu

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Memory is the bus as the CPU sees it. Fetch is used for every byte of the
// instruction stream (opcodes and immediate operands); ReadByte and
// WriteByte for data accesses.
type Memory interface {
	Fetch(addr uint16) (byte, error)
	ReadByte(addr uint16) (byte, error)
	WriteByte(addr uint16, value byte) error
}

// haltQuantum is charged for every Tick spent halted.
const haltQuantum = 4

// CPU is an SM83 core. All of its state belongs to one instance; the
// dispatch tables it reads are immutable.
type CPU struct {
	Registers

	IME     bool
	halted  bool
	stopped bool
	// EI takes effect after the instruction that follows it
	imeDelay int

	mem Memory

	totalCycles  uint64
	lastOpCycles int

	// last dispatched instruction, for tracing and fault reports
	lastPC   uint16
	lastOp   byte
	lastCB   byte
	prefixed bool

	running atomic.Bool
	trace   io.Writer

	// OnFault receives every error Start catches at an instruction boundary.
	// Defaults to the standard logger.
	OnFault func(pc uint16, err error)
}

// New creates a CPU with every register zero.
func New(m Memory) *CPU {
	c := &CPU{mem: m, trace: os.Stdout}
	c.OnFault = func(pc uint16, err error) {
		log.Printf("cpu: fault at %#04x: %v", pc, err)
	}
	c.running.Store(true)
	return c
}

// Reset returns the CPU to its power-on state and re-arms Start.
func (c *CPU) Reset() {
	c.Registers = Registers{}
	c.IME = false
	c.halted, c.stopped = false, false
	c.imeDelay = 0
	c.totalCycles, c.lastOpCycles = 0, 0
	c.lastPC, c.lastOp, c.lastCB, c.prefixed = 0, 0, 0, false
	c.running.Store(true)
}

// ResetNoBoot sets registers to the DMG post-boot state and PC to the
// cartridge entry point. Useful when running without a BIOS.
func (c *CPU) ResetNoBoot() {
	c.Reset()
	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100
}

// SetTraceWriter redirects verbose tracing.
func (c *CPU) SetTraceWriter(w io.Writer) { c.trace = w }

// Halted reports whether the CPU is suspended by HALT or STOP.
func (c *CPU) Halted() bool { return c.halted }

// Stopped reports whether STOP was executed.
func (c *CPU) Stopped() bool { return c.stopped }

// Wake resumes fetching after HALT or STOP. It stands in for the interrupt
// that would do this on hardware.
func (c *CPU) Wake() { c.halted, c.stopped = false, false }

func (c *CPU) TotalCycles() uint64 { return c.totalCycles }
func (c *CPU) LastOpCycles() int   { return c.lastOpCycles }

// Tick executes exactly one instruction, or one halt quantum while halted.
// The returned error is whatever the handler or the bus reported; state
// changed before the fault is left in place.
func (c *CPU) Tick() error {
	c.lastOpCycles = 0
	if c.halted {
		c.lastOpCycles = haltQuantum
		c.totalCycles += haltQuantum
		c.stepIME()
		return nil
	}

	c.lastPC = c.PC
	op, err := c.fetch8()
	if err != nil {
		return err
	}
	c.lastOp, c.prefixed = op, false

	err = primary[op].exec(c, op)
	c.totalCycles += uint64(c.lastOpCycles)
	c.stepIME()
	return err
}

func (c *CPU) stepIME() {
	if c.imeDelay > 0 {
		c.imeDelay--
		if c.imeDelay == 0 {
			c.IME = true
		}
	}
}

// fetch8 reads the byte at PC and advances it. PC wraps from 0xFFFF to
// 0x0000; a failed read leaves PC where it was.
func (c *CPU) fetch8() (byte, error) {
	if c.mem == nil {
		return 0, fmt.Errorf("%w: pc=%#04x, no memory attached", ErrInstructionOutOfRange, c.PC)
	}
	v, err := c.mem.Fetch(c.PC)
	if err != nil {
		return v, err
	}
	c.PC++
	return v, nil
}

func (c *CPU) fetch16() (uint16, error) {
	lo, err := c.fetch8()
	if err != nil {
		return 0, err
	}
	hi, err := c.fetch8()
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func (c *CPU) read8(addr uint16) (byte, error) { return c.mem.ReadByte(addr) }

func (c *CPU) write8(addr uint16, v byte) error { return c.mem.WriteByte(addr, v) }

func (c *CPU) read16(addr uint16) (uint16, error) {
	lo, err := c.read8(addr)
	if err != nil {
		return 0, err
	}
	hi, err := c.read8(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

func (c *CPU) write16(addr uint16, v uint16) error {
	if err := c.write8(addr, byte(v)); err != nil {
		return err
	}
	return c.write8(addr+1, byte(v>>8))
}

func (c *CPU) push16(v uint16) error {
	c.SP -= 2
	return c.write16(c.SP, v)
}

func (c *CPU) pop16() (uint16, error) {
	v, err := c.read16(c.SP)
	if err != nil {
		return 0, err
	}
	c.SP += 2
	return v, nil
}

// getR8 and setR8 resolve the 3-bit operand field, index 6 being (HL).
func (c *CPU) getR8(idx byte) (byte, error) {
	if idx&7 == 6 {
		return c.read8(c.HL())
	}
	return *c.reg8(idx), nil
}

func (c *CPU) setR8(idx byte, v byte) error {
	if idx&7 == 6 {
		return c.write8(c.HL(), v)
	}
	*c.reg8(idx) = v
	return nil
}
