package testutil

import (
	"fmt"
	"sync"
	"time"
)

// StubClock returns a fixed time. Safe for concurrent use.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewStubClock creates a StubClock set to the given time.
func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

// FixedClock returns a StubClock set to 2024-01-15 10:30:00 UTC.
func FixedClock() *StubClock {
	return NewStubClock(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// StubDisambiguator returns sequential tokens: "d1", "d2", etc.
// Fix pins every token to a single value to force filename collisions.
type StubDisambiguator struct {
	mu      sync.Mutex
	counter int
	fixed   string
}

func NewStubDisambiguator() *StubDisambiguator {
	return &StubDisambiguator{}
}

func (g *StubDisambiguator) Fix(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fixed = token
}

func (g *StubDisambiguator) Next(time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fixed != "" {
		return g.fixed
	}
	g.counter++
	return fmt.Sprintf("d%d", g.counter)
}
