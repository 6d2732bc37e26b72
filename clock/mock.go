package clock

import (
	"sync"
	"time"
)

// Mock provides a controllable time source for testing and replay
type Mock struct {
	mu          sync.RWMutex
	currentTime time.Time
	step        time.Duration
}

// NewMock creates a new mock time provider with the given start time
func NewMock(startTime time.Time) *Mock {
	return &Mock{
		currentTime: startTime,
	}
}

// NewStepping creates a mock that advances by step after every Now call,
// so consecutive ticks observe distinct timestamps
func NewStepping(startTime time.Time, step time.Duration) *Mock {
	return &Mock{
		currentTime: startTime,
		step:        step,
	}
}

// Now returns the current mocked time
func (m *Mock) Now() time.Time {
	if m.step == 0 {
		m.mu.RLock()
		defer m.mu.RUnlock()
		return m.currentTime
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.currentTime
	m.currentTime = m.currentTime.Add(m.step)
	return now
}

// SetTime sets the current time for the mock
func (m *Mock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
