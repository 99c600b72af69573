// menu builds a settings panel from nested layouts: a vertical stack with a
// stepper row, a collapsible section and a button that bounces the panel
// with a tween.
package main

import (
	"fmt"
	"os"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/ebitenhost"
)

const (
	screenW = 640
	screenH = 480
	inset   = 40
)

var (
	textColor   = canopy.Color{R: 0.95, G: 0.95, B: 0.95, A: 1}
	buttonColor = canopy.Color{R: 0.2, G: 0.35, B: 0.6, A: 1}
	panelColor  = canopy.Color{R: 0.12, G: 0.13, B: 0.17, A: 1}
)

func button(w *canopy.World, label string, onClick func()) canopy.ID {
	return w.NewButton(label, canopy.ButtonConfig{
		Text:       label,
		TextSize:   12,
		TextColor:  textColor,
		Background: buttonColor,
		Padding:    6,
		OnClick:    onClick,
	})
}

func main() {
	cfg := canopy.DefaultConfig()
	cfg.Width, cfg.Height = screenW, screenH

	cmd := ebitenhost.NewCommand(ebitenhost.App{
		Name:   "menu",
		Short:  "Settings panel built from nested layouts",
		Config: cfg,
		Window: ebitenhost.RunConfig{
			Title:      "canopy: menu",
			Background: canopy.Color{R: 0.05, G: 0.05, B: 0.07, A: 1},
			ShowFPS:    true,
		},
		Setup: setup,
	})
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(w *canopy.World) error {
	vh := w.Config().Height
	scene := w.NewScene("menu")
	w.SetActiveScene(scene)

	var tweens []*canopy.TweenGroup
	w.Bus().Subscribe(canopy.EventTick, canopy.NewListener(func(e canopy.Event) {
		dt := float32(e.Data.(float64) / 1000)
		live := tweens[:0]
		for _, g := range tweens {
			g.Update(dt)
			if !g.Done {
				live = append(live, g)
			}
		}
		tweens = live
	}), nil)

	// The panel background follows the stack's size, pinned to the top-left.
	bg := w.NewRect("panel", 0, 0, panelColor)
	scene.Attach(bg)
	stack := w.NewLayout("stack", canopy.LayoutConfig{Orientation: canopy.DownFromTop, Margin: 10, Spacing: 6})
	w.AddChild(bg, stack)
	w.Events(stack).Subscribe(canopy.EventSizeChanged, canopy.NewListener(func(e canopy.Event) {
		s := e.Data.(canopy.Vec2)
		w.SetSize(bg, s.X, s.Y)
		w.SetPosition(bg, canopy.Vec2{X: inset, Y: vh - inset - s.Y})
	}), nil)

	title := w.NewText("title", "Settings", 16, textColor)

	volume := w.NewText("volume", "", 12, textColor)
	w.SetStepper(volume, 0, 10, 1, 5)
	showVolume := func() {
		w.SetText(volume, fmt.Sprintf("Volume: %d", int(w.StepperValue(volume))))
	}
	showVolume()
	w.Events(volume).Subscribe(canopy.EventValueChanged, canopy.NewListener(func(canopy.Event) { showVolume() }), nil)

	row := w.NewLayout("row", canopy.LayoutConfig{Orientation: canopy.RightFromLeft, Spacing: 4})
	w.AddChild(row, button(w, "-", func() { w.StepDown(volume) }))
	w.AddChild(row, volume)
	w.AddChild(row, button(w, "+", func() { w.StepUp(volume) }))

	details := w.NewLayout("details", canopy.LayoutConfig{Orientation: canopy.DownFromTop, Spacing: 4})
	w.AddChild(details, w.NewText("vsync", "VSync: on", 12, textColor))
	w.AddChild(details, w.NewText("scale", "Scale: 1x", 12, textColor))
	header := button(w, "Advanced", nil)
	advanced := w.NewLayoutExpander("advanced", canopy.LayoutConfig{Orientation: canopy.DownFromTop, Spacing: 4}, header, details)
	w.Events(advanced).Subscribe(canopy.EventToggled, canopy.NewListener(func(e canopy.Event) {
		if e.Data.(bool) {
			w.SetButtonText(header, "Advanced (open)")
		} else {
			w.SetButtonText(header, "Advanced")
		}
	}), nil)

	bounce := button(w, "Bounce", func() {
		from := w.Position(stack)
		w.SetPosition(stack, from.Add(canopy.Vec2{X: 30}))
		tweens = append(tweens, canopy.TweenPosition(w, stack, from, 0.6, ease.OutBounce))
	})

	w.Batch(func() {
		w.AddChild(stack, title)
		w.AddChild(stack, row)
		w.AddChild(stack, advanced)
		w.AddChild(stack, bounce)
	})
	return nil
}
