// Package clock provides the time sources the simulation reads once per tick
package clock

import "time"

// Provider is any source of the current time
type Provider interface {
	Now() time.Time
}

// System provides the real system time with monotonic clock readings
type System struct{}

// NewSystem creates a new monotonic time provider
func NewSystem() *System {
	return &System{}
}

// Now returns the current time with monotonic clock reading
func (p *System) Now() time.Time {
	return time.Now()
}
