package loop

import (
	"math"

	"github.com/tomz197/asteroids-wire/internal/input"
	"github.com/tomz197/asteroids-wire/internal/loop/config"
	"github.com/tomz197/asteroids-wire/internal/signal"
)

// AutopilotSignal produces the keys of the attract mode: the ship spins left
// continuously and holds fire for hold seconds out of every pause+hold.
func AutopilotSignal(pause, hold float64) signal.Transformer[signal.Unit, input.Keys] {
	spin := input.NewKeys(input.KeyLeft)
	return signal.Then(pulse(pause+hold, hold, 0), signal.Arr(func(on bool) input.Keys {
		if on {
			return spin.With(input.KeyFire)
		}
		return spin
	}))
}

// pulse is true for the first hold seconds of every period.
func pulse(period, hold, phase float64) signal.Transformer[signal.Unit, bool] {
	return signal.Func[signal.Unit, bool](func(dt float64, _ signal.Unit) (bool, signal.Transformer[signal.Unit, bool], bool) {
		return phase < hold, pulse(period, hold, math.Mod(phase+dt, period)), true
	})
}

// Autopilot is a KeySource that plays by itself. Each call to Keys advances
// it by a fixed step.
type Autopilot struct {
	sf   signal.Transformer[signal.Unit, input.Keys]
	step float64
}

// NewAutopilot creates an autopilot advancing step seconds per call.
func NewAutopilot(step float64) *Autopilot {
	return &Autopilot{
		sf:   AutopilotSignal(config.AttractFirePause, config.AttractFireHold),
		step: step,
	}
}

// Keys returns the keys for the next tick. It never fails.
func (a *Autopilot) Keys() (input.Keys, error) {
	var keys input.Keys
	keys, a.sf, _ = a.sf.Step(a.step, signal.Unit{})
	return keys, nil
}
