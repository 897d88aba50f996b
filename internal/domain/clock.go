package domain

import "github.com/jonboulle/clockwork"

// clock supplies the report generation date. Production uses the real clock;
// tests freeze it via SetClock so rendered reports are byte-stable.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used when rendering reports. Pass nil to
// reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
