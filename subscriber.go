package urx

import "sync/atomic"

// Subscriber binds an Observer to a Subscription and gates delivery: no
// event reaches the observer after the subscription closes, and at most
// one terminal event is ever forwarded, whichever goroutine delivers it.
type Subscriber[T any] struct {
	observer   Observer[T]
	sub        *CompositeSubscription
	terminated atomic.Bool
}

func NewSubscriber[T any](observer Observer[T], sub *CompositeSubscription) *Subscriber[T] {
	return &Subscriber[T]{observer: observer, sub: sub}
}

// Subscription returns the composite this subscriber gates on. Operators
// attach timer children and unsubscribe hooks through it.
func (s *Subscriber[T]) Subscription() *CompositeSubscription {
	return s.sub
}

func (s *Subscriber[T]) Next(v T) {
	if s.terminated.Load() || s.sub.Closed() {
		return
	}
	s.observer.Next(v)
}

func (s *Subscriber[T]) Error(err error) {
	if s.sub.Closed() || !s.terminated.CompareAndSwap(false, true) {
		return
	}
	s.observer.Error(err)
	s.sub.Unsubscribe()
}

func (s *Subscriber[T]) Complete() {
	if s.sub.Closed() || !s.terminated.CompareAndSwap(false, true) {
		return
	}
	s.observer.Complete()
	s.sub.Unsubscribe()
}

func (s *Subscriber[T]) Unsubscribe() {
	s.sub.Unsubscribe()
}

func (s *Subscriber[T]) Closed() bool {
	return s.terminated.Load() || s.sub.Closed()
}
