package loop

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tomz197/asteroids-wire/internal/input"
	"github.com/tomz197/asteroids-wire/internal/object"
	"github.com/tomz197/asteroids-wire/internal/physics"
	"github.com/tomz197/asteroids-wire/internal/signal"
)

func steppedBullets(ps ...physics.Vec2) []signal.Stepped[object.Bullet] {
	out := make([]signal.Stepped[object.Bullet], len(ps))
	for i, p := range ps {
		out[i] = signal.Stepped[object.Bullet]{Output: object.Bullet{Position: p}}
	}
	return out
}

func steppedAsteroids(as ...object.Asteroid) []signal.Stepped[object.Asteroid] {
	out := make([]signal.Stepped[object.Asteroid], len(as))
	for i, a := range as {
		out[i] = signal.Stepped[object.Asteroid]{Output: a}
	}
	return out
}

func TestResolve(t *testing.T) {
	big := object.Asteroid{Position: physics.Vec2{0, 0}, Size: 10}
	near := object.Asteroid{Position: physics.Vec2{12, 0}, Size: 5}
	far := object.Asteroid{Position: physics.Vec2{100, 100}, Size: 5}

	t.Run("one bullet removes every asteroid it touches", func(t *testing.T) {
		res := Resolve(steppedBullets(physics.Vec2{8, 0}), steppedAsteroids(big, near, far))
		assert.Equal(t, []object.Asteroid{big, near}, res.RemovedAsteroids)
		assert.Equal(t, []object.Asteroid{far}, signal.Outputs(res.ActiveAsteroids))
		assert.Empty(t, res.ActiveBullets)
		assert.Len(t, res.RemovedBullets, 1)
	})

	t.Run("asteroid hit twice is removed once", func(t *testing.T) {
		res := Resolve(steppedBullets(physics.Vec2{1, 0}, physics.Vec2{50, 50}, physics.Vec2{-1, 0}), steppedAsteroids(big))
		assert.Equal(t, []object.Asteroid{big}, res.RemovedAsteroids)
		assert.Equal(t, []object.Bullet{{Position: physics.Vec2{1, 0}}, {Position: physics.Vec2{-1, 0}}}, res.RemovedBullets)
		assert.Equal(t, []object.Bullet{{Position: physics.Vec2{50, 50}}}, signal.Outputs(res.ActiveBullets))
	})

	t.Run("touching is not a hit", func(t *testing.T) {
		res := Resolve(steppedBullets(physics.Vec2{10, 0}), steppedAsteroids(big))
		assert.Empty(t, res.RemovedAsteroids)
		assert.Len(t, res.ActiveBullets, 1)
	})

	t.Run("empty", func(t *testing.T) {
		res := Resolve(nil, steppedAsteroids(far))
		assert.Len(t, res.ActiveAsteroids, 1)
		assert.Empty(t, res.RemovedAsteroids)
	})
}

func TestNetworkInitialFrame(t *testing.T) {
	n := NewNetwork(DefaultOptions())
	tick := n.Step(1.0/60, 0)

	assert.Equal(t, physics.Vec2{325, 190}, tick.Frame.Ship.Position)
	assert.Equal(t, physics.Identity, tick.Frame.Ship.Rotation)
	require.Len(t, tick.Frame.Asteroids, 1)
	assert.Equal(t, object.Asteroid{
		Position:   physics.Vec2{0, 0},
		Generation: 1,
		Size:       40,
		Velocity:   physics.Vec2{10, 10},
	}, tick.Frame.Asteroids[0])
	assert.Empty(t, tick.Frame.Bullets)
}

func TestBulletHitsAsteroidAndSplits(t *testing.T) {
	const dt = 0.01
	parent := object.Asteroid{Position: physics.Vec2{325, 0}, Generation: 1, Size: 40, Velocity: physics.Vec2{10, 10}}
	n := NewNetwork(Options{
		ShipStart: physics.Vec2{325, 190},
		Seed:      []object.Asteroid{parent},
	})

	first := n.Step(dt, input.NewKeys(input.KeyFire))
	require.True(t, first.Fired)
	require.Equal(t, []object.Bullet{{Position: physics.Vec2{325, 190}}}, first.Frame.Bullets)

	var hit Tick
	for i := 0; i < 200; i++ {
		tick := n.Step(dt, 0)
		require.Zero(t, tick.Spawned, "no children before the hit")
		if len(tick.Resolution.RemovedAsteroids) > 0 {
			hit = tick
			break
		}
		require.Len(t, tick.Frame.Bullets, 1)
	}
	require.Len(t, hit.Resolution.RemovedAsteroids, 1, "bullet never reached the asteroid")

	removed := hit.Resolution.RemovedAsteroids[0]
	assert.Less(t, physics.Distance(removed.Position, hit.Resolution.RemovedBullets[0].Position), 40.0)
	assert.Empty(t, hit.Resolution.ActiveBullets)
	assert.Empty(t, hit.Frame.Bullets)
	assert.Empty(t, hit.Frame.Asteroids, "children are not spawned in the tick of the hit")

	next := n.Step(dt, 0)
	assert.Equal(t, 2, next.Spawned)
	assert.Equal(t, []object.Asteroid{
		{Position: removed.Position, Generation: 2, Size: 20, Velocity: physics.Vec2{-10, 10}},
		{Position: removed.Position, Generation: 2, Size: 20, Velocity: physics.Vec2{10, -10}},
	}, next.Frame.Asteroids)

	later := n.Step(dt, 0)
	assert.Zero(t, later.Spawned)
	assert.Len(t, later.Frame.Asteroids, 2)
}

func TestLastGenerationLeavesNothing(t *testing.T) {
	n := NewNetwork(Options{
		ShipStart: physics.Vec2{0, 100},
		Seed:      []object.Asteroid{{Position: physics.Vec2{0, 45}, Generation: object.MaxGeneration, Size: 10}},
	})
	n.Step(0.1, input.NewKeys(input.KeyFire))

	destroyed := false
	for range 20 {
		tick := n.Step(0.1, 0)
		assert.Zero(t, tick.Spawned)
		destroyed = destroyed || len(tick.Resolution.RemovedAsteroids) > 0
	}
	assert.True(t, destroyed)
	assert.Empty(t, n.Step(0.1, 0).Frame.Asteroids)
}

func TestPopulationConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := NewNetwork(DefaultOptions())
		n.Seed(object.NewWaveSpawner(Arena(), 40, rapid.Uint64().Draw(t, "seed")).Wave(6)...)

		for i, ticks := 0, rapid.IntRange(1, 300).Draw(t, "ticks"); i < ticks; i++ {
			keys := input.Keys(rapid.Uint16Range(0, 1<<5-1).Draw(t, "keys"))
			tick := n.Step(rapid.Float64Range(0, 0.05).Draw(t, "dt"), keys)
			res := tick.Resolution

			if got := len(res.ActiveAsteroids) + len(res.RemovedAsteroids); got != tick.SteppedAsteroids {
				t.Fatalf("tick %d: %d asteroids accounted for, %d stepped", i, got, tick.SteppedAsteroids)
			}
			if got := len(res.ActiveBullets) + len(res.RemovedBullets); got != tick.SteppedBullets {
				t.Fatalf("tick %d: %d bullets accounted for, %d stepped", i, got, tick.SteppedBullets)
			}
			if len(tick.Frame.Asteroids) != len(res.ActiveAsteroids) || len(tick.Frame.Bullets) != len(res.ActiveBullets) {
				t.Fatalf("tick %d: frame does not match survivors", i)
			}
		}
	})
}

func TestHeldFireIsRateLimited(t *testing.T) {
	const dt = 1.0 / 60
	n := NewNetwork(Options{})
	fire := input.NewKeys(input.KeyFire)

	fired := 0
	for range 60 {
		if n.Step(dt, fire).Fired {
			fired++
		}
	}
	assert.LessOrEqual(t, fired, int(math.Ceil(1/0.05))+1)
	assert.Greater(t, fired, 1)
}

func TestCulling(t *testing.T) {
	opts := Options{
		Seed:  []object.Asteroid{{Position: physics.Vec2{50, 50}, Generation: 1, Size: 5, Velocity: physics.Vec2{80, 0}}},
		Arena: physics.Rect{Max: physics.Vec2{100, 100}},
	}

	n := NewNetwork(opts)
	for i := range 6 {
		tick := n.Step(0.125, 0)
		require.Len(t, tick.Frame.Asteroids, 1, "tick %d", i)
	}
	tick := n.Step(0.125, 0)
	assert.Empty(t, tick.Frame.Asteroids, "left the arena")
	assert.Empty(t, tick.Resolution.RemovedAsteroids, "culling is not a collision")
	assert.Zero(t, n.Step(0.125, 0).Spawned)

	opts.CullMargin = 20
	n = NewNetwork(opts)
	for range 7 {
		n.Step(0.125, 0)
	}
	assert.Len(t, n.Step(0.125, 0).Frame.Asteroids, 1, "within the margin")

	opts.Arena = physics.Rect{}
	n = NewNetwork(opts)
	for range 100 {
		n.Step(0.125, 0)
	}
	assert.Len(t, n.Step(0.125, 0).Frame.Asteroids, 1, "no arena, no culling")
}

func TestCullingBullets(t *testing.T) {
	n := NewNetwork(Options{
		ShipStart: physics.Vec2{50, 20},
		Arena:     physics.Rect{Max: physics.Vec2{100, 100}},
	})
	assert.Len(t, n.Step(0.1, input.NewKeys(input.KeyFire)).Frame.Bullets, 1)
	assert.Len(t, n.Step(0.1, 0).Frame.Bullets, 0, "flew past the top edge")
}

func TestBulletLifetime(t *testing.T) {
	n := NewNetwork(Options{ShipStart: physics.Vec2{325, 190}, BulletLifetime: 0.25})

	assert.Len(t, n.Step(0.1, input.NewKeys(input.KeyFire)).Frame.Bullets, 1)
	assert.Len(t, n.Step(0.1, 0).Frame.Bullets, 1)
	assert.Len(t, n.Step(0.1, 0).Frame.Bullets, 1)
	tick := n.Step(0.1, 0)
	assert.Empty(t, tick.Frame.Bullets, "expired after 0.25s")
	assert.Empty(t, tick.Resolution.RemovedBullets, "expiry is not a hit")

	forever := NewNetwork(Options{ShipStart: physics.Vec2{325, 190}})
	forever.Step(0.1, input.NewKeys(input.KeyFire))
	for range 50 {
		forever.Step(0.1, 0)
	}
	assert.Len(t, forever.Step(0.1, 0).Frame.Bullets, 1, "no lifetime, no culling")
}

func TestInvalidDelta(t *testing.T) {
	for _, dt := range []float64{-0.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
		require.ErrorIs(t, ValidateDelta(dt), ErrInvalidDelta)
		assert.Panics(t, func() { NewNetwork(DefaultOptions()).Step(dt, 0) })
	}
	assert.NoError(t, ValidateDelta(0))
	assert.NotPanics(t, func() { NewNetwork(DefaultOptions()).Step(0, 0) })
}

func TestSeedArrivesNextStep(t *testing.T) {
	n := NewNetwork(Options{})
	assert.Empty(t, n.Step(0.1, 0).Frame.Asteroids)

	n.Seed(object.Asteroid{Position: physics.Vec2{1, 1}, Generation: 1, Size: 3})
	tick := n.Step(0.1, 0)
	assert.Len(t, tick.Frame.Asteroids, 1)
	assert.Zero(t, tick.Spawned, "seeded asteroids are not split children")
	assert.Len(t, n.Step(0.1, 0).Frame.Asteroids, 1, "seeded once")
}

func TestCulledOptions(t *testing.T) {
	opts := DefaultOptions().Culled()
	assert.Equal(t, Arena(), opts.Arena)
	assert.Positive(t, opts.CullMargin)
	assert.Equal(t, DefaultOptions().Seed, opts.Seed)
}
