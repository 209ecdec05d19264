// Package input turns raw key events into per-tick snapshots of held keys.
package input

import (
	"strings"
	"sync"
	"time"
)

// Key is a control the simulation reacts to.
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyThrust
	KeyFire
	KeyQuit
	numKeys
)

var keyNames = [numKeys]string{"left", "right", "thrust", "fire", "quit"}

func (k Key) String() string {
	if k >= numKeys {
		return "unknown"
	}
	return keyNames[k]
}

// Keys is an immutable set of held keys.
type Keys uint16

// NewKeys builds a set from ks. Unknown keys are ignored.
func NewKeys(ks ...Key) Keys {
	var set Keys
	for _, k := range ks {
		set = set.With(k)
	}
	return set
}

// Held reports whether k is in the set.
func (s Keys) Held(k Key) bool {
	return k < numKeys && s&(1<<k) != 0
}

// With returns the set with k added.
func (s Keys) With(k Key) Keys {
	if k >= numKeys {
		return s
	}
	return s | 1<<k
}

// Without returns the set with k removed.
func (s Keys) Without(k Key) Keys {
	if k >= numKeys {
		return s
	}
	return s &^ (1 << k)
}

func (s Keys) String() string {
	var names []string
	for k := range numKeys {
		if s.Held(k) {
			names = append(names, k.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Tracker records key-down and key-up events and reports which keys are held.
// Terminals only report presses (and auto-repeats), so a key is released
// automatically once hold has passed since its last press. A hold of zero
// disables expiry and keys stay down until Release.
// Tracker is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	hold    time.Duration
	down    [numKeys]bool
	pressed [numKeys]time.Time
}

// NewTracker creates a tracker with the given hold window.
func NewTracker(hold time.Duration) *Tracker {
	return &Tracker{hold: hold}
}

// Press marks k as down at now.
func (t *Tracker) Press(k Key, now time.Time) {
	if k >= numKeys {
		return
	}
	t.mu.Lock()
	t.down[k] = true
	t.pressed[k] = now
	t.mu.Unlock()
}

// Release marks k as up.
func (t *Tracker) Release(k Key) {
	if k >= numKeys {
		return
	}
	t.mu.Lock()
	t.down[k] = false
	t.mu.Unlock()
}

// Snapshot returns the keys held at now.
func (t *Tracker) Snapshot(now time.Time) Keys {
	t.mu.Lock()
	defer t.mu.Unlock()

	var s Keys
	for k := range numKeys {
		if !t.down[k] {
			continue
		}
		if t.hold > 0 && now.Sub(t.pressed[k]) >= t.hold {
			t.down[k] = false
			continue
		}
		s = s.With(k)
	}
	return s
}
