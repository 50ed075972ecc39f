package livereload

import (
	"context"
	"sync"
	"time"

	"github.com/eapache/queue"
)

// Scheduler runs callbacks on the client's event loop.
type Scheduler interface {
	// Post queues f to run on the loop. It never blocks.
	Post(f func())
	// AfterFunc queues f to run on the loop once d has elapsed.
	AfterFunc(d time.Duration, f func())
}

// Loop is a single-goroutine Scheduler. Callbacks run one at a time, in the
// order they became ready, on the goroutine calling Run or Drain.
type Loop struct {
	mu     sync.Mutex
	queue  *queue.Queue
	timers int
	wake   chan struct{}
}

func NewLoop() *Loop {
	return &Loop{
		queue: queue.New(),
		wake:  make(chan struct{}, 1),
	}
}

func (l *Loop) Post(f func()) {
	l.mu.Lock()
	l.queue.Add(f)
	l.mu.Unlock()

	l.notify()
}

func (l *Loop) AfterFunc(d time.Duration, f func()) {
	l.mu.Lock()
	l.timers++
	l.mu.Unlock()

	time.AfterFunc(d, func() {
		l.mu.Lock()
		l.timers--
		l.queue.Add(f)
		l.mu.Unlock()

		l.notify()
	})
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
		// loop already woken
	}
}

// Run executes callbacks until ctx is done. Run and Drain must not be called
// concurrently.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.runReady()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Drain executes callbacks until nothing is queued and no timer is pending.
func (l *Loop) Drain(ctx context.Context) error {
	for {
		l.runReady()

		l.mu.Lock()
		idle := l.queue.Length() == 0 && l.timers == 0
		l.mu.Unlock()
		if idle {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) runReady() {
	for {
		l.mu.Lock()
		if l.queue.Length() == 0 {
			l.mu.Unlock()
			return
		}
		f := l.queue.Remove().(func())
		l.mu.Unlock()

		f()
	}
}
