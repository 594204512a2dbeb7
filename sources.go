package urx

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Of emits the given values in order, then completes, synchronously in
// the subscribing call stack.
func Of[T any](values ...T) Observable[T] {
	return FromSlice(values)
}

// FromSlice emits each element of items, then completes. Emission is
// synchronous and stops as soon as the subscriber is closed.
func FromSlice[T any](items []T) Observable[T] {
	return Create(func(sub *Subscriber[T]) {
		for _, v := range items {
			if sub.Closed() {
				return
			}
			sub.Next(v)
		}
		sub.Complete()
	})
}

// Empty completes immediately without emitting.
func Empty[T any]() Observable[T] {
	return Create(func(sub *Subscriber[T]) {
		sub.Complete()
	})
}

// Throw fails immediately with err.
func Throw[T any](err error) Observable[T] {
	return Create(func(sub *Subscriber[T]) {
		sub.Error(err)
	})
}

// FromChannel emits every value received from ch and completes when ch
// is closed. Values are delivered from a background goroutine, so the
// resulting observable is shared.
func FromChannel[T any](ch <-chan T) Observable[T] {
	o := Create(func(sub *Subscriber[T]) {
		go func() {
			for v := range ch {
				if sub.Closed() {
					return
				}
				sub.Next(v)
			}
			sub.Complete()
		}()
	})
	o.src.shared = true
	return o
}

// Interval emits 0, 1, 2, ... every d, forever, via sched. The
// observable is shared; unsubscribing cancels the pending tick so its
// body never runs. sched must be asynchronous.
func Interval(d time.Duration, sched Scheduler) Observable[int] {
	o := Create(func(sub *Subscriber[int]) {
		var mu sync.Mutex
		var key uuid.UUID
		var tick func()
		i := 0
		tick = func() {
			mu.Lock()
			sub.Subscription().Remove(key)
			mu.Unlock()
			if sub.Closed() {
				return
			}
			sub.Next(i)
			i++
			mu.Lock()
			key = sub.Subscription().Add(sched.Schedule(d, tick))
			mu.Unlock()
		}
		mu.Lock()
		key = sub.Subscription().Add(sched.Schedule(d, tick))
		mu.Unlock()
	})
	o.src.shared = true
	return o
}
