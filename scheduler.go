package urx

import (
	"sync"
	"time"
)

// Scheduler runs a task now or after a delay, returning a cancellable
// handle. Unsubscribing the handle before the task starts guarantees the
// task body never runs; when cancellation and firing race, cancellation
// wins (the body re-checks the handle's state under its lock before
// executing).
type Scheduler interface {
	Schedule(delay time.Duration, task func()) Subscription
}

// GoroutineScheduler runs each task on its own goroutine, using a timer
// for delayed tasks. It has no capacity limit and so no scheduling
// failure mode; a panic inside a task propagates and is fatal to the
// process, it is not folded into any stream's error channel.
type GoroutineScheduler struct{}

func NewGoroutineScheduler() GoroutineScheduler {
	return GoroutineScheduler{}
}

func (GoroutineScheduler) Schedule(delay time.Duration, task func()) Subscription {
	h := &scheduledTask{}
	run := func() {
		h.mu.Lock()
		if h.closed {
			h.mu.Unlock()
			return
		}
		h.closed = true
		h.mu.Unlock()
		task()
	}
	if delay <= 0 {
		go run()
		return h
	}
	h.mu.Lock()
	h.timer = time.AfterFunc(delay, run)
	h.mu.Unlock()
	return h
}

type scheduledTask struct {
	mu     sync.Mutex
	closed bool
	timer  *time.Timer
}

func (h *scheduledTask) Unsubscribe() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	if h.timer != nil {
		h.timer.Stop()
	}
}

func (h *scheduledTask) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// ImmediateScheduler runs the task synchronously in the caller's stack,
// sleeping through any delay first. It exists to make time-based
// operators deterministic in tests; the handle it returns is already
// closed since the work is done before Schedule returns.
type ImmediateScheduler struct{}

func NewImmediateScheduler() ImmediateScheduler {
	return ImmediateScheduler{}
}

func (ImmediateScheduler) Schedule(delay time.Duration, task func()) Subscription {
	if delay > 0 {
		time.Sleep(delay)
	}
	task()
	return closedSubscription{}
}
