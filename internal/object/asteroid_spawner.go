package object

import (
	"math"
	"math/rand/v2"

	"github.com/tomz197/asteroids-wire/internal/physics"
)

// Wave speeds in units per second.
const (
	waveMinSpeed = 10.0
	waveMaxSpeed = 30.0
)

// WaveSpawner produces first-generation asteroids on the arena edges, each
// aimed roughly at the center.
type WaveSpawner struct {
	arena physics.Rect
	size  float64
	rng   *rand.Rand
}

// NewWaveSpawner creates a spawner for arena. The seed makes waves
// reproducible.
func NewWaveSpawner(arena physics.Rect, size float64, seed uint64) *WaveSpawner {
	return &WaveSpawner{
		arena: arena,
		size:  size,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Wave returns count new asteroids.
func (s *WaveSpawner) Wave(count int) []Asteroid {
	wave := make([]Asteroid, 0, max(count, 0))
	for range count {
		wave = append(wave, s.atEdge())
	}
	return wave
}

func (s *WaveSpawner) atEdge() Asteroid {
	minX, minY := s.arena.Min.X(), s.arena.Min.Y()
	maxX, maxY := s.arena.Max.X(), s.arena.Max.Y()
	w, h := maxX-minX, maxY-minY

	var pos physics.Vec2
	switch s.rng.IntN(4) {
	case 0: // Top
		pos = physics.Vec2{minX + s.rng.Float64()*w, minY}
	case 1: // Bottom
		pos = physics.Vec2{minX + s.rng.Float64()*w, maxY}
	case 2: // Left
		pos = physics.Vec2{minX, minY + s.rng.Float64()*h}
	default: // Right
		pos = physics.Vec2{maxX, minY + s.rng.Float64()*h}
	}

	center := physics.Vec2{minX + w/2, minY + h/2}
	angle := math.Atan2(center.Y()-pos.Y(), center.X()-pos.X())
	angle += (s.rng.Float64() - 0.5) * math.Pi / 2 // ±45° variation
	speed := waveMinSpeed + s.rng.Float64()*(waveMaxSpeed-waveMinSpeed)

	return Asteroid{
		Position:   pos,
		Generation: 1,
		Size:       s.size,
		Velocity:   physics.Vec2{math.Cos(angle) * speed, math.Sin(angle) * speed},
	}
}
