package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/milk9111/gsandbox/common"
	"github.com/milk9111/gsandbox/gamemode"
	"github.com/milk9111/gsandbox/prefabs"
)

var backgroundColor = color.NRGBA{R: 0x1b, G: 0x1e, B: 0x26, A: 0xff}

type Game struct {
	mode    *gamemode.GameMode
	watcher *prefabs.Watcher
	log     *zap.SugaredLogger

	paused bool
	ui     *ebitenui.UI
}

// NewGame takes ownership of watcher, which may be nil.
func NewGame(mode *gamemode.GameMode, watcher *prefabs.Watcher, log *zap.SugaredLogger) *Game {
	g := &Game{
		mode:    mode,
		watcher: watcher,
		log:     log,
	}
	g.ui = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}

	if g.paused {
		g.ui.Update()
		return nil
	}

	if g.watcher != nil {
		for _, err := range g.watcher.DrainErrors() {
			g.log.Warnw("prefab watcher error", "error", err)
		}
		if changed := g.watcher.Drain(); len(changed) > 0 {
			if err := g.mode.ReloadChanged(changed); err != nil {
				g.log.Warnw("hot reload failed", "files", changed, "error", err)
			}
		}
	}

	g.mode.Tick(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.mode.Draw(screen)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  t=%.2fs  actors=%d",
		ebiten.ActualFPS(), g.mode.World().TimeSeconds(), len(g.mode.Hub().Spawned(g.mode.World()))),
		8, common.BaseHeight-20)

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) respawn() {
	if err := g.mode.Respawn(); err != nil {
		g.log.Errorw("respawn failed", "error", err)
	}
	g.paused = false
}

func (g *Game) close() error {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	return g.mode.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
