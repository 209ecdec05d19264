package signal

// Then runs a and feeds its output into b within the same tick.
// When a inhibits, b is not stepped and the composition inhibits.
func Then[I, M, O any](a Transformer[I, M], b Transformer[M, O]) Transformer[I, O] {
	return Func[I, O](func(dt float64, in I) (O, Transformer[I, O], bool) {
		mid, na, ok := a.Step(dt, in)
		if !ok {
			return inhibit(Then(na, b))
		}
		out, nb, ok := b.Step(dt, mid)
		return out, Then(na, nb), ok
	})
}

// Parallel steps a and b side by side on the two halves of a Pair.
// The result inhibits if either side inhibits; both sides always advance.
func Parallel[I1, O1, I2, O2 any](a Transformer[I1, O1], b Transformer[I2, O2]) Transformer[Pair[I1, I2], Pair[O1, O2]] {
	return Func[Pair[I1, I2], Pair[O1, O2]](func(dt float64, p Pair[I1, I2]) (Pair[O1, O2], Transformer[Pair[I1, I2], Pair[O1, O2]], bool) {
		x, na, okA := a.Step(dt, p.First)
		y, nb, okB := b.Step(dt, p.Second)
		next := Parallel(na, nb)
		if !okA || !okB {
			return inhibit(next)
		}
		return MakePair(x, y), next, true
	})
}

// Fanout feeds the same input to a and b and pairs their outputs.
func Fanout[I, O1, O2 any](a Transformer[I, O1], b Transformer[I, O2]) Transformer[I, Pair[O1, O2]] {
	return Then(Arr(func(in I) Pair[I, I] { return MakePair(in, in) }), Parallel(a, b))
}

// Choice steps the alternatives in order and yields the first output
// produced. Alternatives after the winner are not stepped this tick and keep
// their state. Choice inhibits only if every alternative inhibits.
func Choice[I, O any](alts ...Transformer[I, O]) Transformer[I, O] {
	return Func[I, O](func(dt float64, in I) (O, Transformer[I, O], bool) {
		next := make([]Transformer[I, O], len(alts))
		copy(next, alts)
		for i, alt := range alts {
			out, n, ok := alt.Step(dt, in)
			next[i] = n
			if ok {
				return out, Choice(next...), true
			}
		}
		return inhibit(Choice(next...))
	})
}

// When passes its input through on ticks where pred holds and inhibits on
// the others.
func When[T any](pred func(T) bool) Transformer[T, T] {
	var self Func[T, T]
	self = func(_ float64, in T) (T, Transformer[T, T], bool) {
		if !pred(in) {
			return inhibit[T, T](self)
		}
		return in, self, true
	}
	return self
}

// AsSoonAs inhibits until pred first holds. From that tick on it passes its
// input through unconditionally.
func AsSoonAs[T any](pred func(T) bool) Transformer[T, T] {
	var self Func[T, T]
	self = func(_ float64, in T) (T, Transformer[T, T], bool) {
		if !pred(in) {
			return inhibit[T, T](self)
		}
		return in, Identity[T](), true
	}
	return self
}

// For passes its input through while less than duration has elapsed, then
// inhibits forever.
func For[T any](duration float64) Transformer[T, T] {
	return Func[T, T](func(dt float64, in T) (T, Transformer[T, T], bool) {
		if duration <= 0 {
			return inhibit(Inhibit[T, T]())
		}
		return in, For[T](duration - dt), true
	})
}
