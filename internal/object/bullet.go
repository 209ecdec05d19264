package object

import (
	"github.com/tomz197/asteroids-wire/internal/physics"
	"github.com/tomz197/asteroids-wire/internal/signal"
)

// MuzzleVelocity is the bullet velocity in ship-local coordinates.
var MuzzleVelocity = physics.Vec2{0, -300}

// Bullet is a point projectile.
type Bullet struct {
	Position physics.Vec2 `json:"position"`
}

// Bounds returns a point.
func (b Bullet) Bounds() physics.Bounds {
	return physics.Point{Position: b.Position}
}

// BulletSignal flies from position at MuzzleVelocity turned by rotation.
// The velocity is fixed at creation. The signal never inhibits by itself.
func BulletSignal(position physics.Vec2, rotation physics.Mat2) signal.Transformer[signal.Unit, Bullet] {
	velocity := physics.Rotate(rotation, MuzzleVelocity)
	return signal.Then(
		signal.Const[signal.Unit](velocity),
		signal.Then(signal.IntegralVec(position), signal.Arr(func(p physics.Vec2) Bullet {
			return Bullet{Position: p}
		})),
	)
}

// Draw renders the bullet as a single pixel.
func (b Bullet) Draw(ctx DrawContext) {
	ctx.Canvas.SetFloat(b.Position.X(), b.Position.Y())
}
