package context

import "time"

// Environment is the interface to the process environment.
type Environment interface {
	Get(string) string
}

// TimeSource is the interface to the system clock.
type TimeSource interface {
	Now() time.Time
}
