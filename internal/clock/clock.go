package clock

import "time"

// Clock supplies the current time. Services take it as a dependency so
// account and transfer timestamps are replayable in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
