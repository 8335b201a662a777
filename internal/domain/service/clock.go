package service

import "time"

// Clock returns the current time. Tests substitute a fixed or stepping clock.
type Clock func() time.Time

// SystemClock returns the UTC wall clock.
func SystemClock() Clock {
	return func() time.Time {
		return time.Now().UTC()
	}
}
