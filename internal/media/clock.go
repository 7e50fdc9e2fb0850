package media

import (
	"sync"
	"time"
)

// playClock models a resource's internal position: frozen while stopped,
// advancing at wall-clock rate while running.
type playClock struct {
	mu      sync.Mutex
	base    time.Duration
	started time.Time
	running bool
	now     func() time.Time
}

func newPlayClock() *playClock {
	return &playClock{now: time.Now}
}

func (c *playClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.started = c.now()
	c.running = true
}

func (c *playClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.base += c.now().Sub(c.started)
	c.running = false
}

func (c *playClock) SeekTo(offset time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = offset
	if c.running {
		c.started = c.now()
	}
}

func (c *playClock) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return c.base
	}
	return c.base + c.now().Sub(c.started)
}
