// Package clock provides an injectable time source so that period fallbacks
// and temporary-ID seeding stay deterministic in tests.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System is the real wall clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}
