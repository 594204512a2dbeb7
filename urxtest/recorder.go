// Package urxtest provides test doubles for urx streams: a recording
// observer and a virtual-time scheduler, so time-based operator behavior
// can be asserted deterministically.
package urxtest

import (
	"sync"

	"github.com/spectonic/urx"
)

// Recorder is an Observer that materializes everything it receives. It
// is safe for concurrent delivery and deliberately does not gate late
// events, so tests can assert that no event arrives after a terminal one.
type Recorder[T any] struct {
	mu    sync.Mutex
	notes []urx.Notification[T]
}

func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}

func (r *Recorder[T]) Next(v T) {
	r.mu.Lock()
	r.notes = append(r.notes, urx.Next(v))
	r.mu.Unlock()
}

func (r *Recorder[T]) Error(err error) {
	r.mu.Lock()
	r.notes = append(r.notes, urx.Error[T](err))
	r.mu.Unlock()
}

func (r *Recorder[T]) Complete() {
	r.mu.Lock()
	r.notes = append(r.notes, urx.Complete[T]())
	r.mu.Unlock()
}

// Notifications returns a copy of everything recorded so far, in order.
func (r *Recorder[T]) Notifications() []urx.Notification[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]urx.Notification[T], len(r.notes))
	copy(out, r.notes)
	return out
}

// Values returns the recorded next values, in order.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []T
	for _, n := range r.notes {
		if n.Kind == urx.KindNext {
			out = append(out, n.Val)
		}
	}
	return out
}

// Err returns the recorded terminal error, if any.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notes {
		if n.Kind == urx.KindError {
			return n.Err
		}
	}
	return nil
}

// Completed reports whether a completion was recorded.
func (r *Recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notes {
		if n.Kind == urx.KindComplete {
			return true
		}
	}
	return false
}

// TerminalCount counts recorded error and complete events. A correct
// stream never produces more than one.
func (r *Recorder[T]) TerminalCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.notes {
		if n.Kind != urx.KindNext {
			count++
		}
	}
	return count
}
