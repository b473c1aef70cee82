package emu

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"

	"github.com/FabianRolfMatthiasNoll/gbnet/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbnet/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbnet/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/gbnet/internal/logger"
)

// Machine wires a CPU to a bus and routes faults into a bounded log. It is
// the harness side of the core: it owns the byte images, never the files.
type Machine struct {
	cfg Config

	bus *bus.Bus
	cpu *cpu.CPU
	log *logger.Logger

	bios   []byte
	rom    []byte
	header *cart.Header

	faults uint64
}

// New builds a machine around a BIOS image (at most 256 bytes). With no BIOS
// the CPU starts at 0x0100 in the post-boot register state.
func New(cfg Config, bios []byte) (*Machine, error) {
	m := &Machine{cfg: cfg, log: logger.New(cfg.logEntries())}
	if cfg.EchoLog != nil {
		m.log.SetEcho(cfg.EchoLog)
	}
	if len(bios) > 0 {
		m.bios = append([]byte(nil), bios...)
	}
	if err := m.build(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Machine) build() error {
	b, err := bus.New(m.bios)
	if err != nil {
		return err
	}
	c := cpu.New(b)
	c.SetTraceWriter(m.cfg.traceWriter())
	c.OnFault = m.fault
	if len(m.bios) == 0 {
		c.ResetNoBoot()
	}
	m.bus, m.cpu = b, c
	m.faults = 0
	if m.rom != nil {
		var se *bus.ROMSizeError
		if err := b.LoadROM(m.rom); err != nil && !errors.As(err, &se) {
			return err
		}
	}
	return nil
}

// LoadROM installs a cartridge image. An oversized image is truncated and
// the *bus.ROMSizeError is returned, but the machine stays usable.
func (m *Machine) LoadROM(rom []byte) error {
	m.rom = append([]byte(nil), rom...)
	m.header, _ = cart.ParseHeader(rom)
	m.log.Log("cart", cart.Describe(rom))
	err := m.bus.LoadROM(m.rom)
	if err != nil {
		m.log.Logf("cart", "%v", err)
	}
	return err
}

// LoadROMFromFile is LoadROM for a file on disk.
func (m *Machine) LoadROMFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.LoadROM(data)
}

// Reset rebuilds the bus and CPU from the stored images, so RAM and the BIOS
// latch return to their power-on state.
func (m *Machine) Reset() error {
	m.log.Log("machine", "reset")
	return m.build()
}

func (m *Machine) fault(pc uint16, err error) {
	m.faults++
	m.log.Logf("cpu", "%04X: %v", pc, err)
}

// Step executes one instruction and returns its cycle cost. Faults are
// logged and returned.
func (m *Machine) Step() (int, error) {
	pc := m.cpu.PC
	if err := m.cpu.Tick(); err != nil {
		m.fault(pc, err)
		return m.cpu.LastOpCycles(), err
	}
	return m.cpu.LastOpCycles(), nil
}

// StepCycles runs whole instructions until at least budget cycles have
// passed and returns the cycles actually spent.
func (m *Machine) StepCycles(budget int) int {
	acc := 0
	for acc < budget {
		cyc, _ := m.Step()
		if cyc == 0 {
			// a faulting fetch costs nothing; charge a quantum so the loop ends
			cyc = 4
		}
		acc += cyc
	}
	return acc
}

// Run executes until ctx is done or Stop is called. Cancellation takes effect
// at the next instruction boundary. It returns ctx.Err(), which is nil when
// the machine was stopped with Stop.
func (m *Machine) Run(ctx context.Context) error {
	m.cpu.Resume()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.cpu.Stop()
		case <-done:
		}
	}()
	m.cpu.Start(m.cfg.Verbose)
	return ctx.Err()
}

// Stop asks a running machine to return from Run. Safe from any goroutine.
func (m *Machine) Stop() { m.cpu.Stop() }

// Wake releases a HALT or STOP.
func (m *Machine) Wake() { m.cpu.Wake() }

func (m *Machine) State() cpu.State     { return m.cpu.State() }
func (m *Machine) Log() *logger.Logger  { return m.log }
func (m *Machine) Header() *cart.Header { return m.header }
func (m *Machine) InBIOS() bool         { return m.bus.InBIOS() }

// Faults counts errors reported since the last reset.
func (m *Machine) Faults() uint64 { return m.faults }

// Peek reads a byte the way the CPU would for data. It never flips the BIOS
// latch.
func (m *Machine) Peek(addr uint16) (byte, error) { return m.bus.ReadByte(addr) }

// ReadRange fills dst from consecutive addresses starting at start. Bytes in
// regions that fault read as 0xFF.
func (m *Machine) ReadRange(start uint16, dst []byte) {
	for i := range dst {
		v, _ := m.bus.ReadByte(start + uint16(i))
		dst[i] = v
	}
}

// Summary is a one line description of where the machine is.
func (m *Machine) Summary() string {
	s := m.cpu.State()
	return fmt.Sprintf("PC=%04X SP=%04X AF=%04X BC=%04X DE=%04X HL=%04X cycles=%d faults=%d",
		s.PC, s.SP, s.AF(), s.BC(), s.DE(), s.HL(), s.TotalCycles, m.faults)
}

// --- Save/Load state ---

type machineState struct {
	Bus []byte
	CPU cpu.State
}

func (m *Machine) SaveState() ([]byte, error) {
	b, err := m.bus.SaveState()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(machineState{Bus: b, CPU: m.cpu.State()}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m *Machine) LoadState(data []byte) error {
	var s machineState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return err
	}
	if err := m.bus.LoadState(s.Bus); err != nil {
		return err
	}
	m.cpu.Restore(s.CPU)
	return nil
}

func (m *Machine) SaveStateToFile(path string) error {
	data, err := m.SaveState()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (m *Machine) LoadStateFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.LoadState(data)
}
