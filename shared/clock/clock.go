// Package clock lets services read the current time through an injectable seam.
package clock

import (
	"hotelbook/shared/timezone"
	"time"
)

type Clock interface {
	Now() time.Time
	// Today is the current calendar date in the application timezone, as midnight UTC.
	Today() time.Time
}

type systemClock struct{}

// New returns a clock backed by the application timezone.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return timezone.Now()
}

func (systemClock) Today() time.Time {
	return timezone.Today()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock frozen at t.
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

func (f fixedClock) Today() time.Time {
	return timezone.Date(f.now)
}
