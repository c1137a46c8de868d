package domain

import "github.com/jonboulle/clockwork"

// clock stamps datasets and derives default seeds. Tests inject a fake
// through SetClock for deterministic output.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// DefaultSeed returns a seed derived from the current clock reading. Callers
// that need reproducible output should pass their own seed instead and log
// the one they used.
func DefaultSeed() uint64 {
	return uint64(clock.Now().UnixNano())
}
