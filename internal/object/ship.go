package object

import (
	"math"

	"github.com/tomz197/asteroids-wire/internal/input"
	"github.com/tomz197/asteroids-wire/internal/physics"
	"github.com/tomz197/asteroids-wire/internal/signal"
)

// Ship handling.
const (
	TurnRate   = math.Pi // Radians per second
	ShipRadius = 8.0
)

// ThrustAcceleration is the acceleration in ship-local coordinates while
// thrusting. Local "up" is negative Y.
var ThrustAcceleration = physics.Vec2{0, -150}

// forward is the ship's nose direction in local coordinates.
var forward = physics.Vec2{0, -1}

// Ship is the player-controlled spaceship.
type Ship struct {
	Position physics.Vec2 `json:"position"`
	Rotation physics.Mat2 `json:"rotation"`
}

// Bounds returns a circle of radius ShipRadius.
func (s Ship) Bounds() physics.Bounds {
	return physics.Circle{Center: s.Position, Radius: ShipRadius}
}

// Heading returns the unit vector the nose points along.
func (s Ship) Heading() physics.Vec2 {
	return physics.Rotate(s.Rotation, forward)
}

// Draw renders the ship as a circle with a line to its nose.
func (s Ship) Draw(ctx DrawContext) {
	ctx.Canvas.DrawCircle(point(s.Position), ShipRadius)
	nose := s.Position.Add(s.Heading().Mul(ShipRadius * 1.5))
	ctx.Canvas.DrawLine(point(s.Position), point(nose))
}

func held(k input.Key) func(input.Keys) bool {
	return func(keys input.Keys) bool { return keys.Held(k) }
}

// ShipSignal drives the ship from held keys, starting at rest at start with
// identity rotation.
//
// The turn rate is +TurnRate while left is held, -TurnRate while right is
// held (left wins when both are), and zero otherwise. It is integrated into a
// heading. Thrust is rotated into world space by this tick's rotation and
// integrated twice into a position.
func ShipSignal(start physics.Vec2) signal.Transformer[input.Keys, Ship] {
	turnRate := signal.Choice(
		signal.Then(signal.When(held(input.KeyLeft)), signal.Const[input.Keys](TurnRate)),
		signal.Then(signal.When(held(input.KeyRight)), signal.Const[input.Keys](-TurnRate)),
		signal.Const[input.Keys](0.0),
	)
	rotation := signal.Then(turnRate, signal.Then(signal.Integral(0), signal.Arr(physics.Rotation)))

	thrust := signal.Choice(
		signal.Then(signal.When(held(input.KeyThrust)), signal.Const[input.Keys](ThrustAcceleration)),
		signal.Const[input.Keys](physics.Vec2{}),
	)

	toWorld := signal.Arr(func(p signal.Pair[physics.Mat2, physics.Vec2]) signal.Pair[physics.Mat2, physics.Vec2] {
		return signal.MakePair(p.First, physics.Rotate(p.First, p.Second))
	})
	motion := signal.Parallel(
		signal.Identity[physics.Mat2](),
		signal.Then(signal.IntegralVec(physics.Vec2{}), signal.IntegralVec(start)),
	)
	toShip := signal.Arr(func(p signal.Pair[physics.Mat2, physics.Vec2]) Ship {
		return Ship{Position: p.Second, Rotation: p.First}
	})

	return signal.Then(signal.Fanout(rotation, thrust), signal.Then(toWorld, signal.Then(motion, toShip)))
}
