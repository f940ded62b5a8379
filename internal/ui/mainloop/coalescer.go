// Package mainloop serializes host callbacks and UI work onto a single
// event-loop goroutine, with keyed coalescing and timer-based debouncing.
package mainloop

import "sync"

// Coalescer merges bursts of same-key tasks into one posted task that runs
// the most recent callback.
type Coalescer struct {
	mu        sync.Mutex
	latest    map[string]func()
	post      func(func())
	destroyed bool
}

// NewCoalescer creates a Coalescer scheduling work through post, usually
// (*Loop).Post.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}
	return &Coalescer{
		latest: make(map[string]func()),
		post:   post,
	}
}

// Post schedules fn under key. If a task for key is already scheduled,
// fn replaces its callback and nothing new is posted.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	_, scheduled := c.latest[key]
	c.latest[key] = fn
	c.mu.Unlock()
	if scheduled {
		return
	}

	c.post(func() {
		c.mu.Lock()
		if c.destroyed {
			c.mu.Unlock()
			return
		}
		run := c.latest[key]
		delete(c.latest, key)
		c.mu.Unlock()

		if run != nil {
			run()
		}
	})
}

// Pending returns the number of keys with a scheduled task.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.latest)
}

// Destroy drops scheduled work. Later posts are ignored.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.latest = map[string]func(){}
	c.mu.Unlock()
}
