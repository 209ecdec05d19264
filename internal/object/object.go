// Package object defines the simulation entities and the signals that move them.
package object

import (
	"github.com/tomz197/asteroids-wire/internal/draw"
	"github.com/tomz197/asteroids-wire/internal/physics"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
}

// Drawable is anything that can draw itself onto a canvas.
type Drawable interface {
	Draw(ctx DrawContext)
}

// Frame is the snapshot of the world produced by one tick.
// It is built fresh every tick; renderers must not retain it.
type Frame struct {
	Ship      Ship       `json:"ship"`
	Asteroids []Asteroid `json:"asteroids"`
	Bullets   []Bullet   `json:"bullets"`
}

// Draw renders asteroids, then bullets, then the ship.
func (f Frame) Draw(ctx DrawContext) {
	for _, a := range f.Asteroids {
		a.Draw(ctx)
	}
	for _, b := range f.Bullets {
		b.Draw(ctx)
	}
	f.Ship.Draw(ctx)
}

func point(v physics.Vec2) draw.Point {
	return draw.Point{X: v.X(), Y: v.Y()}
}
