package object

import (
	"github.com/tomz197/asteroids-wire/internal/physics"
	"github.com/tomz197/asteroids-wire/internal/signal"
)

// MaxGeneration is the generation at which asteroids stop splitting.
const MaxGeneration = 3

// Asteroid is a rock drifting at constant velocity.
type Asteroid struct {
	Position   physics.Vec2 `json:"position"`
	Generation int          `json:"generation"`
	Size       float64      `json:"size"` // Collision and draw radius
	Velocity   physics.Vec2 `json:"velocity"`
}

// Bounds returns a circle of radius Size.
func (a Asteroid) Bounds() physics.Bounds {
	return physics.Circle{Center: a.Position, Radius: a.Size}
}

// Children returns the fragments a destroyed asteroid breaks into: none once
// MaxGeneration is reached, otherwise two half-size rocks at the same
// position whose velocities are the parent's turned a quarter left and right.
func (a Asteroid) Children() []Asteroid {
	if a.Generation >= MaxGeneration {
		return nil
	}
	return []Asteroid{
		a.child(physics.QuarterTurnCCW),
		a.child(physics.QuarterTurnCW),
	}
}

func (a Asteroid) child(turn physics.Mat2) Asteroid {
	return Asteroid{
		Position:   a.Position,
		Generation: a.Generation + 1,
		Size:       a.Size / 2,
		Velocity:   physics.Rotate(turn, a.Velocity),
	}
}

// AsteroidSignal integrates a constant velocity from position.
// It ignores its input and never inhibits.
func AsteroidSignal(generation int, size float64, position, velocity physics.Vec2) signal.Transformer[signal.Unit, Asteroid] {
	return signal.Then(
		signal.Const[signal.Unit](velocity),
		signal.Then(signal.IntegralVec(position), signal.Arr(func(p physics.Vec2) Asteroid {
			return Asteroid{Position: p, Generation: generation, Size: size, Velocity: velocity}
		})),
	)
}

// Signal returns a signal that starts from a's current state.
func (a Asteroid) Signal() signal.Transformer[signal.Unit, Asteroid] {
	return AsteroidSignal(a.Generation, a.Size, a.Position, a.Velocity)
}

// Split returns signals for the children of a destroyed asteroid.
func Split(a Asteroid) []signal.Transformer[signal.Unit, Asteroid] {
	children := a.Children()
	sfs := make([]signal.Transformer[signal.Unit, Asteroid], len(children))
	for i, c := range children {
		sfs[i] = c.Signal()
	}
	return sfs
}

// Draw renders the asteroid as a circle outline.
func (a Asteroid) Draw(ctx DrawContext) {
	ctx.Canvas.DrawCircle(point(a.Position), a.Size)
}
