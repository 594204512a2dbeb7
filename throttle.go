package urx

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ThrottleEdge selects which item of a throttle window is emitted.
type ThrottleEdge int

const (
	// ThrottleLeading emits the first item of each window immediately
	// and drops the rest of the window.
	ThrottleLeading ThrottleEdge = iota
	// ThrottleTailing emits the last item observed in each window when
	// the window expires.
	ThrottleTailing
)

// ThrottleTime opens a window of length d on the first item after an
// idle period and emits at most one item per window, per edge policy.
// Errors bypass the window and are forwarded immediately; completion
// flushes a buffered tailing item first.
//
// The producer and the window-expiry callback race for the same state,
// so it is guarded by a mutex in both concurrency modes. sched must be
// asynchronous: it must not run the task inside the Schedule call stack
// (GoroutineScheduler or urxtest's virtual scheduler, not
// ImmediateScheduler).
func (o Observable[T]) ThrottleTime(d time.Duration, edge ThrottleEdge, sched Scheduler) Observable[T] {
	return o.derive(func(down *Subscriber[T]) {
		t := &throttle[T]{down: down, delay: d, edge: edge, sched: sched}
		up := NewSubscriber(observerFuncs[T]{
			next:     t.next,
			err:      t.error,
			complete: t.complete,
		}, down.Subscription())
		o.subscribeWith(up)
	})
}

type throttle[T any] struct {
	mu       sync.Mutex
	down     *Subscriber[T]
	sched    Scheduler
	delay    time.Duration
	edge     ThrottleEdge
	trailing *T
	pending  bool
	timerKey uuid.UUID
}

func (t *throttle[T]) next(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.edge == ThrottleTailing {
		val := v
		t.trailing = &val
	}
	if t.pending {
		// a window is open; the item was absorbed above (or dropped,
		// for the leading edge)
		return
	}
	t.pending = true
	handle := t.sched.Schedule(t.delay, t.expire)
	t.timerKey = t.down.Subscription().Add(handle)
	if t.edge == ThrottleLeading {
		t.down.Next(v)
	}
}

// expire runs on the scheduler's goroutine when the window closes.
func (t *throttle[T]) expire() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.trailing != nil {
		t.down.Next(*t.trailing)
		t.trailing = nil
	}
	t.pending = false
	// the fired timer detaches itself so a later unsubscribe does not
	// double-cancel it
	t.down.Subscription().Remove(t.timerKey)
	t.timerKey = uuid.Nil
}

func (t *throttle[T]) error(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.down.Error(err)
}

func (t *throttle[T]) complete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.trailing != nil {
		t.down.Next(*t.trailing)
		t.trailing = nil
	}
	t.down.Complete()
}
