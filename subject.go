package urx

import (
	"github.com/google/uuid"
)

// Subject is a producer-facing entry point into a broadcast core: values
// pushed with Next fan out to every currently-subscribed fork. A subject
// with no subscribers drops what it is given. Subject implements
// Observer and may itself be subscribed to another observable.
type Subject[T any] struct {
	core *multicastCore[T]
}

func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{core: &multicastCore[T]{
		shared:    true,
		connected: true,
		sinks:     make(map[uuid.UUID]*Subscriber[T]),
	}}
}

func (s *Subject[T]) Next(v T) {
	s.core.forward(v)
}

func (s *Subject[T]) Error(err error) {
	s.core.terminate(Error[T](err))
}

func (s *Subject[T]) Complete() {
	s.core.terminate(Complete[T]())
}

// Fork returns a new observable handle attached to the subject's core.
func (s *Subject[T]) Fork() Observable[T] {
	return s.core.fork(false)
}

// Subscribe is shorthand for Fork().Subscribe(next).
func (s *Subject[T]) Subscribe(next func(T)) Subscription {
	return s.Fork().Subscribe(next)
}
