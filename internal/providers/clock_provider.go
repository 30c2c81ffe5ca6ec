package providers

import "github.com/jonboulle/clockwork"

// NewClockProvider supplies the host clock. Tests substitute a
// clockwork.FakeClock to drive the vesting calendar.
func NewClockProvider() clockwork.Clock {
	return clockwork.NewRealClock()
}
