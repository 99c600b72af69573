// physics drops circles and boxes into a walled arena. Bodies bounce off the
// static walls and each other; click a shape to kick it upward.
//
//	go run ./demos/physics --config arena.yaml --script kicks.json
package main

import (
	"math/rand/v2"
	"os"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/ebitenhost"
)

const (
	screenW    = 800
	screenH    = 600
	shapeCount = 24
	wallThick  = 20
	kickSpeed  = 220
)

func main() {
	cfg := canopy.DefaultConfig()
	cfg.Width, cfg.Height = screenW, screenH
	cfg.Gravity = 300
	cfg.Drag = 0.05

	cmd := ebitenhost.NewCommand(ebitenhost.App{
		Name:   "physics",
		Short:  "Bouncing shapes in a walled arena",
		Config: cfg,
		Window: ebitenhost.RunConfig{
			Title:      "canopy: physics",
			Background: canopy.Color{R: 0.06, G: 0.06, B: 0.09, A: 1},
			ShowFPS:    true,
		},
		Setup: setup,
	})
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(w *canopy.World) error {
	vw, vh := w.Config().Width, w.Config().Height
	scene := w.NewScene("arena")
	w.SetActiveScene(scene)

	wallColor := canopy.Color{R: 0.25, G: 0.27, B: 0.32, A: 1}
	walls := []struct{ x, y, w, h float64 }{
		{0, 0, vw, wallThick},
		{0, 0, wallThick, vh},
		{vw - wallThick, 0, wallThick, vh},
		{0, vh - wallThick, vw, wallThick},
	}
	for _, wl := range walls {
		id := w.NewRect("wall", wl.w, wl.h, wallColor)
		w.SetPosition(id, canopy.Vec2{X: wl.x, Y: wl.y})
		w.SetCollider(id, canopy.Collider{Kind: canopy.ColliderAABB, Mass: 1, Enabled: true, Mirror: true})
		scene.Attach(id)
	}

	// Collision flashes fade back in on the world tick.
	var flashes []*canopy.TweenGroup
	w.Bus().Subscribe(canopy.EventTick, canopy.NewListener(func(e canopy.Event) {
		dt := float32(e.Data.(float64) / 1000)
		live := flashes[:0]
		for _, g := range flashes {
			g.Update(dt)
			if !g.Done {
				live = append(live, g)
			}
		}
		flashes = live
	}), nil)

	for i := 0; i < shapeCount; i++ {
		c := canopy.Color{
			R: 0.3 + rand.Float64()*0.7,
			G: 0.3 + rand.Float64()*0.7,
			B: 0.3 + rand.Float64()*0.7,
			A: 1,
		}
		size := 16 + rand.Float64()*16

		var id canopy.ID
		var kind canopy.ColliderKind
		if i%2 == 0 {
			id = w.NewCircle("ball", size/2, c)
			kind = canopy.ColliderCircle
		} else {
			id = w.NewRect("box", size, size, c)
			kind = canopy.ColliderAABB
		}
		w.SetPosition(id, canopy.Vec2{
			X: wallThick + rand.Float64()*(vw-2*wallThick-size),
			Y: vh/2 + rand.Float64()*(vh/2-wallThick-size),
		})
		w.SetCollider(id, canopy.Collider{Kind: kind, Mass: size / 16, Enabled: true, Mirror: true})
		w.SetBody(id, canopy.Body{Velocity: canopy.Vec2{X: (rand.Float64() - 0.5) * 200}})
		w.SetInteractive(id, true)
		scene.Attach(id)

		w.Events(id).Subscribe(canopy.EventClick, canopy.NewListener(func(canopy.Event) {
			v := w.Velocity(id)
			w.SetVelocity(id, canopy.Vec2{X: v.X, Y: kickSpeed})
		}), nil)
		w.Events(id).Subscribe(canopy.EventCollision, canopy.NewListener(func(canopy.Event) {
			w.SetAlpha(id, 0.4)
			flashes = append(flashes, canopy.TweenAlpha(w, id, 1, 0.3, ease.OutQuad))
		}), nil)
	}
	return nil
}
