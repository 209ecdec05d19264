// Package signal implements stateful time-varying transformers and the
// combinators used to wire them into a simulation network.
//
// A Transformer is stepped once per tick with the elapsed time and an input.
// It either produces an output or inhibits (ok == false) and produces
// nothing. Either way it returns the transformer to use on the next tick, so
// an inhibiting transformer can keep counting time. Transformers are values:
// stepping never mutates the receiver, so a continuation can be stored, moved
// between populations or dropped freely.
package signal

// Transformer maps (dt, input) to (output, continuation).
type Transformer[I, O any] interface {
	Step(dt float64, in I) (out O, next Transformer[I, O], ok bool)
}

// Func adapts a plain function to a Transformer.
type Func[I, O any] func(dt float64, in I) (O, Transformer[I, O], bool)

// Step calls f.
func (f Func[I, O]) Step(dt float64, in I) (O, Transformer[I, O], bool) {
	return f(dt, in)
}

// Unit is the input of transformers that ignore their input.
type Unit struct{}

// Pair is a tuple of two values.
type Pair[A, B any] struct {
	First  A
	Second B
}

// MakePair builds a Pair.
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

// inhibit returns the zero output with continuation next.
func inhibit[I, O any](next Transformer[I, O]) (O, Transformer[I, O], bool) {
	var zero O
	return zero, next, false
}

// Arr lifts a pure function into a stateless transformer.
func Arr[I, O any](f func(I) O) Transformer[I, O] {
	var self Func[I, O]
	self = func(_ float64, in I) (O, Transformer[I, O], bool) {
		return f(in), self, true
	}
	return self
}

// Const always produces v.
func Const[I, O any](v O) Transformer[I, O] {
	return Arr(func(I) O { return v })
}

// Identity passes its input through unchanged.
func Identity[T any]() Transformer[T, T] {
	return Arr(func(in T) T { return in })
}

// Inhibit never produces a value.
func Inhibit[I, O any]() Transformer[I, O] {
	var self Func[I, O]
	self = func(float64, I) (O, Transformer[I, O], bool) {
		return inhibit[I, O](self)
	}
	return self
}
