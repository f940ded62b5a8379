package mainloop

import (
	"context"
	"fmt"
	"sync"

	"github.com/egdesk/taehwa/internal/logging"
)

// Loop runs posted functions one at a time, in posting order, on the
// goroutine that called Run. Engine adapters deliver surface callbacks
// through it so events for a tab keep the order the engine raised them.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	done   chan struct{}
	closed bool
}

// NewLoop creates a Loop. Work posted before Run is kept.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post enqueues fn. It never blocks, so it is safe to call from inside a
// running task. Returns false after Close.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run processes tasks until ctx is cancelled or Close is called. Tasks still
// queued at Close are run before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	for {
		for _, fn := range l.drain() {
			l.runTask(ctx, fn)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			for _, fn := range l.drain() {
				l.runTask(ctx, fn)
			}
			log.Debug().Msg("mainloop: stopped")
			return nil
		case <-l.wake:
		}
	}
}

func (l *Loop) drain() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	batch := l.queue
	l.queue = nil
	return batch
}

func (l *Loop) runTask(ctx context.Context, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error().
				Str("panic", fmt.Sprint(r)).
				Msg("mainloop: task panicked")
		}
	}()
	fn()
}

// Sync blocks until every task posted before the call has run.
func (l *Loop) Sync(ctx context.Context) error {
	reached := make(chan struct{})
	if !l.Post(func() { close(reached) }) {
		return nil
	}
	select {
	case <-reached:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting work and makes Run return after draining.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()
	close(l.done)
}
