package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time in the app's reference zone. Everything
// that computes durations takes time from here so tests can pin it.
type Clock interface {
	Now() time.Time
}

// ZoneClock reads the wall clock in a fixed location.
type ZoneClock struct {
	loc *time.Location
}

// NewZone builds a clock for the named IANA zone.
func NewZone(name string) (*ZoneClock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return &ZoneClock{loc: loc}, nil
}

func (c *ZoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fake is a manually advanced clock for tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Fake) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *Fake) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
