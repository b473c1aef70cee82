package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/FabianRolfMatthiasNoll/gbnet/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbnet/internal/emu"
	"github.com/FabianRolfMatthiasNoll/gbnet/internal/ui"
)

type CLIFlags struct {
	BIOSPath string
	ROMPath  string
	Verbose  bool

	Window bool
	Scale  int
	Title  string

	// headless
	Steps     int
	StatePath string // write a save state here on exit
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.BIOSPath, "bios", "", "boot image (at most 256 bytes), run from 0x0000")
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.gb)")
	flag.BoolVar(&f.Verbose, "verbose", false, "print one trace line per instruction")
	flag.BoolVar(&f.Window, "window", false, "open the register monitor instead of running headless")
	flag.IntVar(&f.Scale, "scale", 2, "window scale")
	flag.StringVar(&f.Title, "title", "gbnet", "window title")
	flag.IntVar(&f.Steps, "steps", 0, "headless: stop after this many instructions; 0 runs until interrupted")
	flag.StringVar(&f.StatePath, "savestate", "", "headless: write a save state to this path on exit")
	flag.Parse()

	// positional form: gbnet bios rom [verbose]
	args := flag.Args()
	if len(args) > 0 && f.BIOSPath == "" {
		f.BIOSPath = args[0]
	}
	if len(args) > 1 && f.ROMPath == "" {
		f.ROMPath = args[1]
	}
	if len(args) > 2 {
		v, err := strconv.ParseBool(args[2])
		if err != nil {
			log.Fatalf("verbose argument %q: %v", args[2], err)
		}
		f.Verbose = f.Verbose || v
	}
	return f
}

func mustRead(path string) []byte {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	return b
}

func runHeadless(m *emu.Machine, steps int) error {
	start := time.Now()
	if steps > 0 {
		cycles := 0
		for i := 0; i < steps; i++ {
			n, _ := m.Step()
			cycles += n
		}
		log.Printf("headless: steps=%d cycles=%d elapsed=%s", steps, cycles, time.Since(start).Truncate(time.Millisecond))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := m.Run(ctx)
	log.Printf("headless: stopped after %s", time.Since(start).Truncate(time.Millisecond))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	f := parseFlags()
	if f.ROMPath == "" && f.BIOSPath == "" {
		log.Fatal("usage: gbnet [-verbose] [-window] -bios file -rom file  |  gbnet bios rom [true]")
	}

	cfg := emu.Config{Verbose: f.Verbose}
	if !f.Window {
		cfg.EchoLog = os.Stderr
	}
	m, err := emu.New(cfg, mustRead(f.BIOSPath))
	if err != nil {
		log.Fatalf("bios: %v", err)
	}
	if f.ROMPath != "" {
		if err := m.LoadROMFromFile(f.ROMPath); err != nil {
			// oversized images are truncated and still run
			var se *bus.ROMSizeError
			if !errors.As(err, &se) {
				log.Fatalf("load rom: %v", err)
			}
		}
	}

	if f.Window {
		app := ui.NewApp(ui.Config{Title: f.Title, Scale: f.Scale}, m)
		if err := app.Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := runHeadless(m, f.Steps); err != nil {
		log.Fatal(err)
	}
	log.Print(m.Summary())
	if f.StatePath != "" {
		if err := m.SaveStateToFile(f.StatePath); err != nil {
			log.Fatalf("save state: %v", err)
		}
		log.Printf("wrote %s", f.StatePath)
	}
}
