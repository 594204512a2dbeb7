package urxtest

import (
	"sync"
	"time"

	"github.com/spectonic/urx"
)

// VirtualScheduler queues tasks against a manual clock. Nothing runs
// until Advance moves the clock; due tasks then run in (due time,
// scheduling order) on the advancing goroutine. Cancelling a handle
// before its task runs guarantees the body never runs.
type VirtualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*virtualTask
}

func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{}
}

func (s *VirtualScheduler) Schedule(delay time.Duration, task func()) urx.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if delay < 0 {
		delay = 0
	}
	t := &virtualTask{due: s.now + delay, seq: s.seq, run: task}
	s.seq++
	s.tasks = append(s.tasks, t)
	return t
}

// Now returns the current virtual time.
func (s *VirtualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Advance moves the clock by d, running every task that becomes due.
// Tasks scheduled while advancing run too if they fall inside the
// window.
func (s *VirtualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		t := s.popDueLocked(target)
		if t == nil {
			break
		}
		s.mu.Unlock()
		t.fire()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

// popDueLocked removes and returns the earliest due task at or before
// target, moving the clock to its due time.
func (s *VirtualScheduler) popDueLocked(target time.Duration) *virtualTask {
	best := -1
	for i, t := range s.tasks {
		if t.due > target {
			continue
		}
		if best < 0 || t.due < s.tasks[best].due ||
			(t.due == s.tasks[best].due && t.seq < s.tasks[best].seq) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	t := s.tasks[best]
	s.tasks = append(s.tasks[:best], s.tasks[best+1:]...)
	if t.due > s.now {
		s.now = t.due
	}
	return t
}

type virtualTask struct {
	mu     sync.Mutex
	closed bool
	due    time.Duration
	seq    int
	run    func()
}

func (t *virtualTask) fire() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.mu.Unlock()
	t.run()
}

func (t *virtualTask) Unsubscribe() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}

func (t *virtualTask) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
