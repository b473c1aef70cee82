package emu

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/FabianRolfMatthiasNoll/gbnet/internal/bus"
)

// romWith returns a 32KiB image with code placed at the cartridge entry point.
func romWith(code ...byte) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], code)
	return rom
}

func newMachine(t *testing.T, bios []byte, rom []byte) *Machine {
	t.Helper()
	m, err := New(Config{TraceWriter: io.Discard}, bios)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if rom != nil {
		if err := m.LoadROM(rom); err != nil {
			t.Fatalf("LoadROM: %v", err)
		}
	}
	return m
}

func TestMachine_BIOSBoot(t *testing.T) {
	m := newMachine(t, []byte{0x3E, 0x42, 0x00}, nil)
	for i := 0; i < 2; i++ {
		if _, err := m.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	s := m.State()
	if s.A != 0x42 || s.PC != 0x0003 || s.TotalCycles != 12 || !m.InBIOS() {
		t.Fatalf("after BIOS: %s", m.Summary())
	}
}

func TestMachine_NoBIOSStartsAtEntry(t *testing.T) {
	m := newMachine(t, nil, romWith(0x3E, 0x99)) // LD A,99
	if s := m.State(); s.PC != 0x0100 || s.SP != 0xFFFE {
		t.Fatalf("initial PC=%04X SP=%04X", s.PC, s.SP)
	}
	cyc, err := m.Step()
	if err != nil || cyc != 8 || m.State().A != 0x99 || m.InBIOS() {
		t.Fatalf("Step cyc=%d err=%v A=%02X inBios=%t", cyc, err, m.State().A, m.InBIOS())
	}
}

func TestMachine_FaultsAreLoggedAndCollapsed(t *testing.T) {
	m := newMachine(t, nil, romWith(0xEA, 0x00, 0x80, 0x18, 0xFB)) // LD (8000),A; JR -5
	m.StepCycles(1000)

	if m.Faults() < 2 {
		t.Fatalf("faults got %d", m.Faults())
	}
	entries := m.Log().Entries()
	if len(entries) != 2 {
		t.Fatalf("log entries got %d want 2: %v", len(entries), entries)
	}
	last := entries[1]
	if last.Tag != "cpu" || !strings.Contains(last.Detail, "0100") || !strings.Contains(last.Detail, "VRAM") {
		t.Fatalf("fault entry got %q", last.String())
	}
	if uint64(last.Repeated+1) != m.Faults() {
		t.Fatalf("repeat count %d, faults %d", last.Repeated+1, m.Faults())
	}
}

func TestMachine_RunHonoursContext(t *testing.T) {
	m := newMachine(t, nil, romWith(0x18, 0xFE)) // JR -2
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := m.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run got %v", err)
	}
	s := m.State()
	if s.PC != 0x0100 || s.TotalCycles == 0 || s.TotalCycles%12 != 0 {
		t.Fatalf("stopped mid-instruction? %s", m.Summary())
	}
}

func TestMachine_StopEndsRun(t *testing.T) {
	m := newMachine(t, nil, romWith(0x18, 0xFE))
	errc := make(chan error, 1)
	go func() { errc <- m.Run(context.Background()) }()
	time.Sleep(5 * time.Millisecond)
	m.Stop()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run after Stop got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after Stop")
	}
}

func TestMachine_OversizedROMStillRuns(t *testing.T) {
	m := newMachine(t, nil, nil)
	big := make([]byte, 0x10000)
	big[0x0100] = 0x3C // INC A
	err := m.LoadROM(big)
	var se *bus.ROMSizeError
	if !errors.As(err, &se) {
		t.Fatalf("LoadROM got %v", err)
	}
	a := m.State().A
	if _, err := m.Step(); err != nil || m.State().A != a+1 {
		t.Fatalf("Step after truncation: err=%v A=%02X", err, m.State().A)
	}
}

func TestMachine_ResetAndSaveState(t *testing.T) {
	// LD A,5A; LD (C000),A; INC A; JR -3
	m := newMachine(t, nil, romWith(0x3E, 0x5A, 0xEA, 0x00, 0xC0, 0x3C, 0x18, 0xFD))
	for i := 0; i < 4; i++ {
		m.Step()
	}
	saved, err := m.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	want := m.State()

	m.StepCycles(200)
	if m.State() == want {
		t.Fatalf("machine did not advance")
	}
	if err := m.LoadState(saved); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got := m.State(); got != want {
		t.Fatalf("restored state\n%v\nwant\n%v", got, want)
	}
	if v, _ := m.Peek(0xC000); v != 0x5A {
		t.Fatalf("restored WRAM got %02X", v)
	}

	path := filepath.Join(t.TempDir(), "state.gob")
	if err := m.SaveStateToFile(path); err != nil {
		t.Fatalf("SaveStateToFile: %v", err)
	}
	if err := m.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if v, _ := m.Peek(0xC000); v != 0 || m.State().PC != 0x0100 || m.Faults() != 0 {
		t.Fatalf("after Reset: mem=%02X %s", v, m.Summary())
	}
	if err := m.LoadStateFromFile(path); err != nil {
		t.Fatalf("LoadStateFromFile: %v", err)
	}
	if m.State() != want {
		t.Fatalf("state from file differs")
	}
}

func TestFindROMs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.gb", "sub/a.GBC", "notes.txt"} {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte{0}, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := FindROMs(dir)
	if err != nil {
		t.Fatalf("FindROMs: %v", err)
	}
	if len(got) != 2 || filepath.Base(got[0]) != "b.gb" || filepath.Base(got[1]) != "a.GBC" {
		t.Fatalf("FindROMs got %v", got)
	}
}

func TestMachine_ReadRange(t *testing.T) {
	m := newMachine(t, nil, romWith(0x3E, 0x7F, 0xEA, 0xFF, 0x9F)) // LD A,7F; LD (9FFF),A
	m.Step()
	if _, err := m.Step(); !errors.Is(err, bus.ErrFeatureNotImplemented) {
		t.Fatalf("VRAM write got %v", err)
	}
	buf := make([]byte, 4)
	m.ReadRange(0x9FFE, buf) // two VRAM bytes then ERAM
	if buf[0] != 0xFF || buf[1] != 0xFF || buf[2] != 0 || buf[3] != 0 {
		t.Fatalf("ReadRange got % X", buf)
	}
}
