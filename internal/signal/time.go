package signal

import "github.com/tomz197/asteroids-wire/internal/physics"

// Integral accumulates its input over time starting from initial. Each tick
// it emits the current total and then adds dt*in to it.
func Integral(initial float64) Transformer[float64, float64] {
	return Func[float64, float64](func(dt, v float64) (float64, Transformer[float64, float64], bool) {
		return initial, Integral(initial + dt*v), true
	})
}

// IntegralVec is Integral for 2D vectors.
func IntegralVec(initial physics.Vec2) Transformer[physics.Vec2, physics.Vec2] {
	return Func[physics.Vec2, physics.Vec2](func(dt float64, v physics.Vec2) (physics.Vec2, Transformer[physics.Vec2, physics.Vec2], bool) {
		return initial, IntegralVec(initial.Add(v.Mul(dt))), true
	})
}

// Delay emits the input it received on the previous tick, or initial on the
// first tick.
func Delay[T any](initial T) Transformer[T, T] {
	return Func[T, T](func(_ float64, in T) (T, Transformer[T, T], bool) {
		return initial, Delay(in), true
	})
}

// Delayed is a one-slot buffer carrying a value from one tick to the next.
// Read returns what the last Write stored, so a value written during tick N
// is observed during tick N+1.
type Delayed[T any] struct {
	value T
}

// NewDelayed creates a buffer that reads initial until the first Write.
func NewDelayed[T any](initial T) *Delayed[T] {
	return &Delayed[T]{value: initial}
}

// Read returns the buffered value.
func (d *Delayed[T]) Read() T {
	return d.value
}

// Write replaces the buffered value for the next Read.
func (d *Delayed[T]) Write(v T) {
	d.value = v
}

// Loop closes a feedback edge around sf: the second half of sf's output is
// fed back as the second half of its input on the next tick. initial is fed
// on the first tick. Feedback is held unchanged across inhibited ticks.
func Loop[I, O, C any](sf Transformer[Pair[I, C], Pair[O, C]], initial C) Transformer[I, O] {
	return Func[I, O](func(dt float64, in I) (O, Transformer[I, O], bool) {
		fb := NewDelayed(initial)
		out, next, ok := sf.Step(dt, MakePair(in, fb.Read()))
		if ok {
			fb.Write(out.Second)
		}
		return out.First, Loop(next, fb.Read()), ok
	})
}
