package object

import (
	"github.com/tomz197/asteroids-wire/internal/input"
	"github.com/tomz197/asteroids-wire/internal/signal"
)

// FireCooldown is the minimum time between shots while fire stays held.
const FireCooldown = 0.05

// FireInput is what fire control observes each tick.
type FireInput struct {
	Ship Ship
	Keys input.Keys
}

type fireState uint8

const (
	fireIdle fireState = iota
	fireCooldown
)

// FireControl emits the ship snapshot on ticks where a bullet should spawn
// and inhibits otherwise.
//
// Idle fires as soon as the fire key is held and enters Cooldown. Cooldown
// ends on the first tick where FireCooldown has elapsed or the fire key is
// no longer held, whichever comes first; Idle is then evaluated in that same
// tick. Releasing the key early therefore shortens the cooldown.
type FireControl struct {
	state   fireState
	elapsed float64
}

// NewFireControl returns fire control in the Idle state.
func NewFireControl() signal.Transformer[FireInput, Ship] {
	return FireControl{}
}

// Step advances the state machine.
func (f FireControl) Step(dt float64, in FireInput) (Ship, signal.Transformer[FireInput, Ship], bool) {
	firing := in.Keys.Held(input.KeyFire)

	if f.state == fireCooldown {
		elapsed := f.elapsed + dt
		if elapsed < FireCooldown && firing {
			return Ship{}, FireControl{state: fireCooldown, elapsed: elapsed}, false
		}
	}

	if !firing {
		return Ship{}, FireControl{}, false
	}
	return in.Ship, FireControl{state: fireCooldown}, true
}
