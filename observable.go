package urx

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrConsumed is delivered through the error path when an observable that
// has already been subscribed is subscribed again. Wrap with Multicast to
// share one execution between several consumers.
var ErrConsumed = errors.New("urx: observable already consumed")

// Observable is a blueprint for a stream of values of type T. It holds no
// running state until subscribed, and is consumed by subscribing.
type Observable[T any] struct {
	src *source[T]
}

type source[T any] struct {
	onSubscribe func(*Subscriber[T])
	shared      bool
	consumed    atomic.Bool
}

// Create builds an observable from a producer function. The producer is
// invoked once per (successful) subscription with the subscriber to feed;
// it should stop producing when the subscriber reports Closed.
func Create[T any](onSubscribe func(*Subscriber[T])) Observable[T] {
	return Observable[T]{src: &source[T]{onSubscribe: onSubscribe}}
}

// ToShared returns an observable whose callbacks may be invoked from any
// goroutine. Downstream operator state is mutex-guarded from here on.
func (o Observable[T]) ToShared() Observable[T] {
	d := o.derive(func(down *Subscriber[T]) {
		o.subscribeWith(down)
	})
	d.src.shared = true
	return d
}

// Shared reports the concurrency mode of this observable.
func (o Observable[T]) Shared() bool {
	return o.src.shared
}

// derive wraps a producer into a downstream observable that inherits the
// concurrency mode.
func (o Observable[T]) derive(onSubscribe func(*Subscriber[T])) Observable[T] {
	return Observable[T]{src: &source[T]{onSubscribe: onSubscribe, shared: o.src.shared}}
}

// newGuard returns the locker protecting one subscription's operator
// state: a real mutex in shared mode, a no-op in local mode.
func (o Observable[T]) newGuard() sync.Locker {
	if o.src.shared {
		return &sync.Mutex{}
	}
	return nopLocker{}
}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

// subscribeWith runs the blueprint against an already-built subscriber,
// enforcing single consumption.
func (o Observable[T]) subscribeWith(s *Subscriber[T]) {
	if !o.src.consumed.CompareAndSwap(false, true) {
		s.Error(ErrConsumed)
		return
	}
	o.src.onSubscribe(s)
}

// Subscribe begins producing, delivering each value to next. The returned
// subscription cancels the whole chain.
func (o Observable[T]) Subscribe(next func(T)) Subscription {
	return o.SubscribeAll(next, nil, nil)
}

// SubscribeErr is Subscribe with an error callback.
func (o Observable[T]) SubscribeErr(next func(T), onError func(error)) Subscription {
	return o.SubscribeAll(next, onError, nil)
}

// SubscribeComplete is Subscribe with a completion callback.
func (o Observable[T]) SubscribeComplete(next func(T), complete func()) Subscription {
	return o.SubscribeAll(next, nil, complete)
}

// SubscribeAll subscribes with callbacks for every event kind. Nil
// callbacks drop their event.
func (o Observable[T]) SubscribeAll(next func(T), onError func(error), complete func()) Subscription {
	return o.SubscribeObserver(observerFuncs[T]{next: next, err: onError, complete: complete})
}

// SubscribeObserver subscribes a full Observer implementation.
func (o Observable[T]) SubscribeObserver(observer Observer[T]) Subscription {
	s := NewSubscriber(observer, NewCompositeSubscription())
	o.subscribeWith(s)
	return s
}
