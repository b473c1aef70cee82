package ui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/gbnet/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/gbnet/internal/emu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	screenW = 320
	screenH = 240

	// WRAM is shown as a 128x64 grid, one pixel per byte
	memW    = 128
	memH    = 64
	memBase = 0xC000
	memX    = screenW - memW - 8
	memY    = 8
)

// App is a register monitor: it steps the machine from Update and draws
// the CPU snapshot, a WRAM map and the tail of the log.
type App struct {
	cfg    Config
	m      *emu.Machine
	tex    *ebiten.Image
	mem    [memW * memH]byte
	pix    []byte
	paused bool
	fast   bool
	status string

	showMenu bool
	menuIdx  int
}

func NewApp(cfg Config, m *emu.Machine) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(screenW*cfg.Scale, screenH*cfg.Scale)
	return &App{cfg: cfg, m: m, pix: make([]byte, memW*memH*4)}
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.showMenu = !a.showMenu
	}
	if a.showMenu {
		return a.updateMenu()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	a.fast = ebiten.IsKeyPressed(ebiten.KeyTab)

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		a.m.Wake()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.saveState()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		a.loadState()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if err := a.saveScreenshot(); err != nil {
			a.status = err.Error()
		}
	}

	// single instruction step when paused (N)
	if a.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.m.Step()
	}

	if !a.paused {
		n := a.cfg.StepsPerFrame
		if a.fast {
			n *= a.cfg.FastFactor
		}
		for i := 0; i < n; i++ {
			a.m.Step()
		}
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(memW, memH)
	}
	a.m.ReadRange(memBase, a.mem[:])
	heatmap(a.mem[:], a.pix)
	a.tex.WritePixels(a.pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(memX, memY)
	screen.DrawImage(a.tex, op)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("WRAM %04X-%04X", memBase, memBase+memW*memH-1), memX, memY+memH+2)

	y := 4
	for _, line := range registerLines(a.m.State()) {
		ebitenutil.DebugPrintAt(screen, line, 4, y)
		y += 14
	}
	mode := "running"
	if a.paused {
		mode = "paused (N: step)"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  faults=%d", mode, a.m.Faults()), 4, y)
	y += 20

	for _, e := range tail(a.m.Log().Entries(), a.cfg.LogLines) {
		ebitenutil.DebugPrintAt(screen, truncate(e.String(), 52), 4, y)
		y += 14
	}
	if a.status != "" {
		ebitenutil.DebugPrintAt(screen, truncate(a.status, 52), 4, screenH-16)
	}

	if a.showMenu {
		a.drawMenu(screen)
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return screenW, screenH }

func (a *App) reset() {
	if err := a.m.Reset(); err != nil {
		a.status = err.Error()
		return
	}
	a.status = "reset"
}

func (a *App) saveState() {
	if err := a.m.SaveStateToFile(a.cfg.StatePath); err != nil {
		a.status = err.Error()
		return
	}
	a.status = "saved " + a.cfg.StatePath
}

func (a *App) loadState() {
	if err := a.m.LoadStateFromFile(a.cfg.StatePath); err != nil {
		a.status = err.Error()
		return
	}
	a.status = "loaded " + a.cfg.StatePath
}

// registerLines lays out the snapshot for the monitor.
func registerLines(s cpu.State) []string {
	last := s.LastMnemonic()
	return []string{
		fmt.Sprintf("AF %04X   BC %04X", s.AF(), s.BC()),
		fmt.Sprintf("DE %04X   HL %04X", s.DE(), s.HL()),
		fmt.Sprintf("SP %04X   PC %04X", s.SP, s.PC),
		fmt.Sprintf("F  %s    IME %t", s.Flags(), s.IME),
		fmt.Sprintf("halted %t stopped %t", s.Halted, s.Stopped),
		fmt.Sprintf("last %04X %s (%d)", s.LastPC, last, s.LastOpCycles),
		fmt.Sprintf("cycles %d", s.TotalCycles),
	}
}

// heatmap turns bytes into grey RGBA pixels.
func heatmap(src, dst []byte) {
	for i, v := range src {
		p := dst[i*4 : i*4+4]
		p[0], p[1], p[2], p[3] = v, v, v, 0xFF
	}
}

func tail[T any](s []T, n int) []T {
	if n > len(s) {
		n = len(s)
	}
	return s[len(s)-n:]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func (a *App) saveScreenshot() error {
	img := &image.RGBA{
		Pix:    make([]byte, len(a.pix)),
		Stride: 4 * memW,
		Rect:   image.Rect(0, 0, memW, memH),
	}
	copy(img.Pix, a.pix)
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("wram_%s.png", ts)
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	a.status = "wrote " + name
	return nil
}
