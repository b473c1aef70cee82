package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/FabianRolfMatthiasNoll/gbnet/internal/cart"
	"github.com/FabianRolfMatthiasNoll/gbnet/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/gbnet/internal/emu"
	"github.com/FabianRolfMatthiasNoll/gbnet/internal/logger"
	"github.com/FabianRolfMatthiasNoll/gbnet/internal/statsview"
)

type options struct {
	steps       int
	untilPC     int
	maxFaults   int
	timeout     time.Duration
	trace       bool
	traceOnFail bool
	traceWindow int
}

// process exit codes
const (
	exitOK      = 0
	exitFail    = 1
	exitTimeout = 2
)

type result struct {
	rom    string
	steps  int
	cycles uint64
	code   int
	out    bytes.Buffer
	m      *emu.Machine
}

func main() {
	romFlag := flag.String("rom", "", "ROM file, comma separated list of files, or a directory of .gb/.gbc files")
	biosPath := flag.String("bios", "", "optional 256 byte boot image run from 0x0000 until execution leaves it")
	steps := flag.Int("steps", 5_000_000, "max CPU steps to run per ROM")
	untilPC := flag.Int("untilPC", -1, "stop when PC reaches this address (e.g. 0x0150); -1 disables")
	maxFaults := flag.Int("maxFaults", 0, "fail once this many faults were reported; 0 disables")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout per ROM (e.g. 30s, 2m); 0 disables")
	trace := flag.Bool("trace", false, "print one line per instruction")
	traceOnFail := flag.Bool("traceOnFail", false, "on failure, print a recent trace window")
	traceWindow := flag.Int("traceWindow", 200, "number of recent instructions kept for -traceOnFail")
	jobs := flag.Int("jobs", 4, "ROMs run in parallel when several are given; 0 for no limit")
	interactive := flag.Bool("interactive", false, "single-step from the terminal (space: step, r: run 1000 cycles, s: summary, q: quit)")
	dot := flag.String("dot", "", "write a graphviz dump of the final machine state to this file")
	stats := flag.Bool("statsview", false, "serve runtime statistics while running")
	flag.Parse()

	if *romFlag == "" {
		log.Fatal("-rom is required")
	}
	roms, err := romList(*romFlag)
	if err != nil {
		log.Fatalf("rom: %v", err)
	}
	if len(roms) == 0 {
		log.Fatalf("no ROMs found in %s", *romFlag)
	}
	var bios []byte
	if *biosPath != "" {
		if bios, err = os.ReadFile(*biosPath); err != nil {
			log.Fatalf("read bios: %v", err)
		}
	}
	if *stats {
		statsview.Launch(os.Stdout)
	}

	opts := options{
		steps:       *steps,
		untilPC:     *untilPC,
		maxFaults:   *maxFaults,
		timeout:     *timeout,
		trace:       *trace,
		traceOnFail: *traceOnFail,
		traceWindow: *traceWindow,
	}

	if *interactive {
		if len(roms) != 1 {
			log.Fatal("-interactive needs exactly one ROM")
		}
		m := mustMachine(bios, roms[0])
		if err := runInteractive(m); err != nil {
			log.Fatal(err)
		}
		writeDot(*dot, m)
		return
	}

	results := make([]*result, len(roms))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(jobLimit(*jobs))
	for i, path := range roms {
		r := &result{rom: path}
		results[i] = r
		g.Go(func() error {
			m, err := newMachine(bios, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			r.m = m
			run(m, opts, r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	code := exitOK
	for _, r := range results {
		if len(results) > 1 {
			fmt.Printf("=== %s\n", r.rom)
		}
		io.Copy(os.Stdout, &r.out)
		if r.code > code {
			code = r.code
		}
	}
	if len(results) == 1 {
		writeDot(*dot, results[0].m)
	}
	os.Exit(code)
}

// jobLimit maps -jobs onto errgroup.SetLimit, where 0 would block every Go
// call. Anything below 1 means no limit.
func jobLimit(n int) int {
	if n < 1 {
		return -1
	}
	return n
}

// romList expands the -rom flag: a directory is searched recursively,
// anything else is split on commas.
func romList(arg string) ([]string, error) {
	if fi, err := os.Stat(arg); err == nil && fi.IsDir() {
		return emu.FindROMs(arg)
	}
	var out []string
	for _, p := range strings.Split(arg, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func newMachine(bios []byte, romPath string) (*emu.Machine, error) {
	m, err := emu.New(emu.Config{TraceWriter: io.Discard}, bios)
	if err != nil {
		return nil, err
	}
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return nil, err
	}
	log.Printf("%s: %s", romPath, cart.Describe(rom))
	// an oversized image is truncated and still runs
	if err := m.LoadROM(rom); err != nil {
		log.Printf("%s: %v", romPath, err)
	}
	return m, nil
}

func mustMachine(bios []byte, romPath string) *emu.Machine {
	m, err := newMachine(bios, romPath)
	if err != nil {
		log.Fatal(err)
	}
	return m
}

// run steps m until one of the stop conditions in o is met. All output goes
// to r.out so parallel runs do not interleave.
func run(m *emu.Machine, o options, r *result) {
	w := &r.out
	start := time.Now()
	var deadline time.Time
	if o.timeout > 0 {
		deadline = start.Add(o.timeout)
	}

	var ring []string
	ringIdx, ringFill := 0, 0
	if o.traceOnFail && o.traceWindow > 0 {
		ring = make([]string, o.traceWindow)
	}
	dumpRing := func() {
		if ringFill == 0 {
			return
		}
		fmt.Fprintf(w, "\n--- recent trace (last %d instructions) ---\n", ringFill)
		first := (ringIdx - ringFill + len(ring)) % len(ring)
		for j := 0; j < ringFill; j++ {
			fmt.Fprintln(w, ring[(first+j)%len(ring)])
		}
		fmt.Fprintf(w, "--- end trace ---\n")
	}
	done := func(n int) {
		r.steps = n
		r.cycles = m.State().TotalCycles
		fmt.Fprintf(w, "\nDone: steps=%d cycles~=%d elapsed=%s\n", n, r.cycles, time.Since(start).Truncate(time.Millisecond))
	}

	for i := 0; i < o.steps; i++ {
		if o.untilPC >= 0 && int(m.State().PC) == o.untilPC {
			fmt.Fprintf(w, "\nReached PC=%04X.\n", o.untilPC)
			done(i)
			return
		}
		m.Step()
		if o.trace || ring != nil {
			line := m.State().TraceLine()
			if o.trace {
				fmt.Fprintln(w, line)
			}
			if ring != nil {
				ring[ringIdx] = line
				ringIdx = (ringIdx + 1) % len(ring)
				if ringFill < len(ring) {
					ringFill++
				}
			}
		}
		if o.maxFaults > 0 && m.Faults() >= uint64(o.maxFaults) {
			fmt.Fprintf(w, "\nFault limit reached (%d).\n", m.Faults())
			m.Log().Write(w)
			dumpRing()
			r.code = exitFail
			done(i + 1)
			return
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			fmt.Fprintf(w, "\nTimeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
			r.code = exitTimeout
			done(i + 1)
			return
		}
	}
	if m.Faults() > 0 {
		fmt.Fprintf(w, "\n%d faults:\n", m.Faults())
		m.Log().Tail(w, 10)
	}
	done(o.steps)
}

// runInteractive puts the terminal in raw mode and reads single keys.
func runInteractive(m *emu.Machine) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("-interactive needs a terminal on stdin")
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, old)

	// raw mode turns off output processing, so lines end in \r\n
	say := func(s string) { fmt.Print(s + "\r\n") }
	say("space: step  r: run 1000 cycles  s: summary  q: quit")
	say(m.Summary())

	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return err
		}
		switch buf[0] {
		case ' ', 'n':
			_, err := m.Step()
			say(m.State().TraceLine())
			if err != nil {
				say("fault: " + err.Error())
			}
		case 'r':
			before := m.Faults()
			m.StepCycles(1000)
			say(m.State().TraceLine())
			if n := m.Faults() - before; n > 0 {
				say(fmt.Sprintf("%d faults", n))
			}
		case 's':
			say(m.Summary())
			for _, e := range m.Log().Entries() {
				say(e.String())
			}
		case 'q', 3: // ctrl-c arrives as a byte in raw mode
			return nil
		}
	}
}

// dotState is what -dot renders: the CPU snapshot, the cartridge header
// and the fault log.
type dotState struct {
	CPU    cpu.State
	Header *cart.Header
	Log    []logger.Entry
}

func writeDot(path string, m *emu.Machine) {
	if path == "" || m == nil {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Printf("dot: %v", err)
		return
	}
	defer f.Close()
	memviz.Map(f, &dotState{CPU: m.State(), Header: m.Header(), Log: m.Log().Entries()})
	log.Printf("wrote %s", path)
}
