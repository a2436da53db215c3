package differ

import (
	"context"
	"sync"
)

// Executor runs functions on the render context.
type Executor interface {
	Post(fn func())
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(fn func())

// Post calls f(fn).
func (f ExecutorFunc) Post(fn func()) { f(fn) }

// Immediate runs posted functions inline on the posting goroutine, which
// may be a background diff goroutine. The Differ never overlaps host.Apply
// calls, but they are only confined to one goroutine when every Submit and
// every pager callback come from that goroutine and no diff runs in the
// background. Use Loop when the host needs a fixed render goroutine.
var Immediate Executor = ExecutorFunc(func(fn func()) { fn() })

// Loop is an Executor backed by a single goroutine, standing in for a UI
// thread. Functions run in the order they were posted.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a loop with the given queue size. Call Run to start it.
func NewLoop(size int) *Loop {
	if size < 1 {
		size = 64
	}
	return &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn. Functions posted after Close are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Do runs fn on the loop and waits for it to finish.
// It returns false if the loop closed first.
func (l *Loop) Do(fn func()) bool {
	finished := make(chan struct{})
	l.Post(func() {
		defer close(finished)
		fn()
	})
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

// Run drains the queue until ctx is cancelled or Close is called.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case fn := <-l.queue:
			fn()
		case <-ctx.Done():
			l.Close()
			return
		case <-l.done:
			return
		}
	}
}

// Close stops the loop.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}
