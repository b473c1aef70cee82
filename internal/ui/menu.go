package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var menuItems = []string{
	"Save state",
	"Load state",
	"Reset",
	"Wake CPU",
	"Close",
}

func (a *App) updateMenu() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < len(menuItems)-1 {
		a.menuIdx++
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return nil
	}
	switch a.menuIdx {
	case 0:
		a.saveState()
	case 1:
		a.loadState()
	case 2:
		a.reset()
	case 3:
		a.m.Wake()
	}
	a.showMenu = false
	return nil
}

func (a *App) drawMenu(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, screenW, screenH, color.RGBA{0, 0, 0, 160}, false)
	ebitenutil.DebugPrintAt(screen, "Menu:", 10, 10)
	for i, s := range menuItems {
		prefix := "  "
		if i == a.menuIdx {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+s, 10, 24+i*14)
	}
	hint := "P: pause  N: step  Tab: fast  F5/F9: state  F12: WRAM png"
	ebitenutil.DebugPrintAt(screen, hint, 10, 24+len(menuItems)*14+8)
}
