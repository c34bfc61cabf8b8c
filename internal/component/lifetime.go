package component

import "github.com/overworld/core/internal/calendar"

// Expiry destroys its entity once Remaining seconds have elapsed.
type Expiry struct {
	Remaining float64
}

// Clock is the world singleton holding game time. Rate is day-phase radians
// per real second.
type Clock struct {
	Now  calendar.Stamp
	Rate float64
}
