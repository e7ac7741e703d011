package util

import (
	"sync"
	"time"
)

// Clock supplies the current time so date-sensitive logic can be tested
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock returns a fixed instant until it is moved
type MockClock struct {
	mu       sync.RWMutex
	FixedNow time.Time
}

// NewMockClock creates a clock frozen at the given calendar date (UTC noon)
func NewMockClock(date string) *MockClock {
	t, err := ParseDate(date)
	if err != nil {
		panic(err)
	}
	return &MockClock{FixedNow: t.Add(12 * time.Hour)}
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FixedNow = now
}

// SetDate moves the clock to noon UTC on the given calendar date
func (m *MockClock) SetDate(date string) {
	t, err := ParseDate(date)
	if err != nil {
		panic(err)
	}
	m.SetNow(t.Add(12 * time.Hour))
}

// Today returns the clock's current calendar date in the clock's own zone
func Today(c Clock) string {
	return FormatDate(c.Now())
}
