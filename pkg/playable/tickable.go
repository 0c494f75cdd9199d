package playable

import "time"

// Tickable is an interface that allows a periodic tick to update the game state
// The Xuanwei game uses ticks for the trick settle delay and for polling AI seats.
type Tickable interface {
	// Interval is how long the wait between each tick should be
	Interval() time.Duration

	// Tick will be called periodically
	// Return true if the dealer should push updated state
	Tick() (bool, error)
}
