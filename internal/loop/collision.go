package loop

import (
	"github.com/tomz197/asteroids-wire/internal/object"
	"github.com/tomz197/asteroids-wire/internal/physics"
	"github.com/tomz197/asteroids-wire/internal/signal"
)

// Resolution partitions one tick's stepped entities by collision outcome.
// Every stepped entity lands in exactly one of its kind's two lists, in the
// order it was stepped.
type Resolution struct {
	ActiveBullets    []signal.Stepped[object.Bullet]
	ActiveAsteroids  []signal.Stepped[object.Asteroid]
	RemovedAsteroids []object.Asteroid
	RemovedBullets   []object.Bullet
}

// Resolve tests every bullet against every asteroid. A bullet that overlaps
// any asteroid is dropped; so is every asteroid that overlaps any bullet. One
// bullet can remove several asteroids and an asteroid hit by several bullets
// is removed once.
func Resolve(bullets []signal.Stepped[object.Bullet], asteroids []signal.Stepped[object.Asteroid]) Resolution {
	var res Resolution
	hit := make([]bool, len(asteroids))

	for _, b := range bullets {
		bb := b.Output.Bounds()
		colliding := false
		for i, a := range asteroids {
			if physics.Intersecting(bb, a.Output.Bounds()) {
				colliding = true
				hit[i] = true
			}
		}
		if colliding {
			res.RemovedBullets = append(res.RemovedBullets, b.Output)
		} else {
			res.ActiveBullets = append(res.ActiveBullets, b)
		}
	}

	for i, a := range asteroids {
		if hit[i] {
			res.RemovedAsteroids = append(res.RemovedAsteroids, a.Output)
		} else {
			res.ActiveAsteroids = append(res.ActiveAsteroids, a)
		}
	}

	return res
}
