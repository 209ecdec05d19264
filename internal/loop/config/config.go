// Package config centralizes all tunable simulation parameters.
package config

import "time"

// Arena - the logical coordinate space the simulation runs in.
// Rendering scales it to fit the terminal.
const (
	ArenaWidth  = 650
	ArenaHeight = 380
)

// Ship
const (
	ShipStartX = ArenaWidth / 2
	ShipStartY = ArenaHeight / 2
)

// Seed asteroid present at session start.
const (
	SeedGeneration = 1
	SeedSize       = 40.0
	SeedX          = 0.0
	SeedY          = 0.0
	SeedVelocityX  = 10.0
	SeedVelocityY  = 10.0
)

// Culling
const (
	// CullMargin is how far past the arena edge an entity may drift before it
	// is dropped. Large enough for the biggest asteroid to leave the view.
	CullMargin = 2 * SeedSize
)

// Attract mode
const (
	AttractWaveSize   = 4
	AttractFirePause  = 0.4 // Seconds between autopilot bursts
	AttractFireHold   = 0.1 // Seconds the fire key stays down per burst
	AttractBulletLife = 1.2 // Seconds before an autopilot bullet fades
)

// Tick rate
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Input
const (
	// KeyHoldDuration is how long a key counts as held after its last
	// press on inputs that never report key-up.
	KeyHoldDuration = 30 * time.Millisecond
)

// Spectators
const (
	SpectatorMaxDuration  = 10 * time.Minute // Attract-mode stream length per connection
	SpectatorWriteTimeout = 2 * time.Second
)
