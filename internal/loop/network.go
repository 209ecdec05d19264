package loop

import (
	"github.com/pkg/errors"

	"github.com/tomz197/asteroids-wire/internal/input"
	"github.com/tomz197/asteroids-wire/internal/loop/config"
	"github.com/tomz197/asteroids-wire/internal/object"
	"github.com/tomz197/asteroids-wire/internal/physics"
	"github.com/tomz197/asteroids-wire/internal/signal"
)

// ErrInvalidDelta is returned for negative or non-finite time deltas.
var ErrInvalidDelta = errors.New("invalid time delta")

// ValidateDelta checks that dt can be integrated.
func ValidateDelta(dt float64) error {
	if !physics.Finite(dt) || dt < 0 {
		return errors.Wrapf(ErrInvalidDelta, "dt=%v", dt)
	}
	return nil
}

// Options configures a Network.
type Options struct {
	ShipStart physics.Vec2
	Seed      []object.Asteroid

	// Arena enables culling: bullets and asteroids whose position leaves
	// Arena grown by CullMargin are dropped. The zero Arena keeps everything.
	Arena      physics.Rect
	CullMargin float64

	// BulletLifetime drops bullets that many seconds after they are fired.
	// Zero lets them fly until they hit something or are culled.
	BulletLifetime float64
}

// DefaultOptions returns the standard session setup: ship in the middle of
// the arena and a single seed asteroid in the top-left corner.
func DefaultOptions() Options {
	return Options{
		ShipStart: physics.Vec2{config.ShipStartX, config.ShipStartY},
		Seed: []object.Asteroid{{
			Position:   physics.Vec2{config.SeedX, config.SeedY},
			Generation: config.SeedGeneration,
			Size:       config.SeedSize,
			Velocity:   physics.Vec2{config.SeedVelocityX, config.SeedVelocityY},
		}},
	}
}

// Culled returns o with culling against the configured arena turned on.
func (o Options) Culled() Options {
	o.Arena = Arena()
	o.CullMargin = config.CullMargin
	return o
}

// Arena returns the configured arena rectangle.
func Arena() physics.Rect {
	return physics.Rect{Max: physics.Vec2{config.ArenaWidth, config.ArenaHeight}}
}

// Tick is everything one network step produced.
type Tick struct {
	Frame      object.Frame
	Resolution Resolution

	Fired            bool // A bullet was spawned this tick
	Spawned          int  // Split children spawned this tick
	SteppedBullets   int
	SteppedAsteroids int
}

// Network wires the entity signals, fire control, population stepping and
// collision resolution into one per-tick step.
//
// Asteroids destroyed during a tick reach the split rule on the next tick
// through a one-tick buffer, so new children never take part in the
// collision pass that created them.
type Network struct {
	ship      signal.Transformer[input.Keys, object.Ship]
	fire      signal.Transformer[object.FireInput, object.Ship]
	bullets   signal.Population[object.Bullet]
	asteroids signal.Population[object.Asteroid]
	removed   *signal.Delayed[[]object.Asteroid]
	arrivals  []object.Asteroid
	area      physics.Rect
	lifetime  float64
}

// NewNetwork builds a network in its initial state.
func NewNetwork(opts Options) *Network {
	n := &Network{
		ship:     object.ShipSignal(opts.ShipStart),
		fire:     object.NewFireControl(),
		removed:  signal.NewDelayed[[]object.Asteroid](nil),
		lifetime: opts.BulletLifetime,
	}
	if !opts.Arena.IsZero() {
		n.area = opts.Arena.Grow(opts.CullMargin)
	}
	for _, a := range opts.Seed {
		n.asteroids = append(n.asteroids, cull(n.area, a.Signal()))
	}
	return n
}

// Seed adds asteroids to the population from the next step on.
func (n *Network) Seed(asteroids ...object.Asteroid) {
	n.arrivals = append(n.arrivals, asteroids...)
}

// Step advances the network by dt with the given held keys. It panics with
// ErrInvalidDelta if dt is negative or not finite.
func (n *Network) Step(dt float64, keys input.Keys) Tick {
	if err := ValidateDelta(dt); err != nil {
		panic(err)
	}

	var ship object.Ship
	ship, n.ship, _ = n.ship.Step(dt, keys)

	var newBullets signal.Population[object.Bullet]
	muzzle, fire, fired := n.fire.Step(dt, object.FireInput{Ship: ship, Keys: keys})
	n.fire = fire
	if fired {
		bullet := object.BulletSignal(muzzle.Position, muzzle.Rotation)
		if n.lifetime > 0 {
			bullet = signal.Then(signal.For[signal.Unit](n.lifetime), bullet)
		}
		newBullets = append(newBullets, cull(n.area, bullet))
	}

	var newAsteroids signal.Population[object.Asteroid]
	for _, a := range n.removed.Read() {
		for _, child := range object.Split(a) {
			newAsteroids = append(newAsteroids, cull(n.area, child))
		}
	}
	spawned := len(newAsteroids)
	for _, a := range n.arrivals {
		newAsteroids = append(newAsteroids, cull(n.area, a.Signal()))
	}
	n.arrivals = nil

	bullets := append(newBullets, n.bullets...).Step(dt)
	asteroids := append(newAsteroids, n.asteroids...).Step(dt)

	res := Resolve(bullets, asteroids)
	n.removed.Write(res.RemovedAsteroids)
	n.bullets = signal.Continuations(res.ActiveBullets)
	n.asteroids = signal.Continuations(res.ActiveAsteroids)

	return Tick{
		Frame: object.Frame{
			Ship:      ship,
			Asteroids: signal.Outputs(res.ActiveAsteroids),
			Bullets:   signal.Outputs(res.ActiveBullets),
		},
		Resolution:       res,
		Fired:            fired,
		Spawned:          spawned,
		SteppedBullets:   len(bullets),
		SteppedAsteroids: len(asteroids),
	}
}

// cull makes sf inhibit once its output leaves area. The zero area keeps
// sf as is.
func cull[O physics.Physical](area physics.Rect, sf signal.Transformer[signal.Unit, O]) signal.Transformer[signal.Unit, O] {
	if area.IsZero() {
		return sf
	}
	return signal.Then(sf, signal.When(func(o O) bool {
		return area.Contains(physics.Center(o.Bounds()))
	}))
}
