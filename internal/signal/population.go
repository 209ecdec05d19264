package signal

// Stepped is one member of a population after a tick: what it produced and
// the transformer that replaces it on the next tick.
type Stepped[O any] struct {
	Output O
	Next   Transformer[Unit, O]
}

// Population is an ordered collection of independent signals sharing an
// output type.
type Population[O any] []Transformer[Unit, O]

// Step advances every member exactly once. Members that inhibit are dropped.
// The result keeps the population's order.
func (p Population[O]) Step(dt float64) []Stepped[O] {
	stepped := make([]Stepped[O], 0, len(p))
	for _, sf := range p {
		out, next, ok := sf.Step(dt, Unit{})
		if !ok {
			continue
		}
		stepped = append(stepped, Stepped[O]{Output: out, Next: next})
	}
	return stepped
}

// Outputs returns the outputs of stepped members.
func Outputs[O any](stepped []Stepped[O]) []O {
	outs := make([]O, len(stepped))
	for i, s := range stepped {
		outs[i] = s.Output
	}
	return outs
}

// Continuations returns the population to step on the next tick.
func Continuations[O any](stepped []Stepped[O]) Population[O] {
	next := make(Population[O], len(stepped))
	for i, s := range stepped {
		next[i] = s.Next
	}
	return next
}
