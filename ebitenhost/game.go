package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/canopy"
)

// fpsRefresh is how often, in milliseconds, the FPS overlay text is rebuilt.
const fpsRefresh = 500

// RunConfig configures Run and NewGame.
type RunConfig struct {
	Title         string
	Width, Height int
	Background    canopy.Color
	// ShowFPS draws the actual FPS and TPS in the top-left corner.
	ShowFPS bool
	// DisablePointer stops mouse input from reaching the world.
	DisablePointer bool
}

// Game implements ebiten.Game for a canopy World and doubles as the World's
// frame Ticker: every ebiten Update delivers one tick of 1000/TPS
// milliseconds to each subscriber.
type Game struct {
	world    *canopy.World
	renderer *Renderer
	cfg      RunConfig
	subs     []func(deltaMS float64)

	fpsOverlay *ebiten.Image
	fpsElapsed float64
}

// NewGame creates a Game drawing w through r. Zero Width or Height are taken
// from the world's viewport.
func NewGame(w *canopy.World, r *Renderer, cfg RunConfig) *Game {
	vp := w.Viewport()
	if cfg.Width <= 0 {
		cfg.Width = int(vp.X)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(vp.Y)
	}
	return &Game{world: w, renderer: r, cfg: cfg}
}

// Subscribe implements canopy.Ticker.
func (g *Game) Subscribe(fn func(deltaMS float64)) {
	g.subs = append(g.subs, fn)
}

// Update feeds the mouse into the world and ticks every subscriber.
func (g *Game) Update() error {
	if !g.cfg.DisablePointer {
		x, y := ebiten.CursorPosition()
		g.world.ProcessPointer(
			FromScreen(x, y, float64(g.cfg.Height)),
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		)
	}
	g.step(1000 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) step(deltaMS float64) {
	for _, fn := range g.subs {
		fn(deltaMS)
	}
	g.fpsElapsed += deltaMS
}

// Draw clears the screen to the background color and draws the world.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(g.cfg.Background, 1))
	g.renderer.Draw(screen)
	if g.cfg.ShowFPS {
		g.drawFPS(screen)
	}
}

func (g *Game) drawFPS(screen *ebiten.Image) {
	if g.fpsOverlay == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		g.fpsOverlay = ebiten.NewImage(100, 32)
		g.fpsElapsed = fpsRefresh
	}
	if g.fpsElapsed >= fpsRefresh {
		g.fpsElapsed = 0
		g.fpsOverlay.Clear()
		g.fpsOverlay.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(g.fpsOverlay, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(g.fpsOverlay, nil)
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window, starts the world on the game's ticker and blocks
// until the window closes.
func Run(w *canopy.World, r *Renderer, cfg RunConfig) error {
	g := NewGame(w, r, cfg)
	w.Start(g)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	if g.cfg.Title != "" {
		ebiten.SetWindowTitle(g.cfg.Title)
	}
	return ebiten.RunGame(g)
}
