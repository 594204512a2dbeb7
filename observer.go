package urx

// Observer is the consumer side of a stream. Next may be called any
// number of times while the subscription is active; Error and Complete
// are mutually exclusive terminal signals, each delivered at most once.
// Implementations receiving a call after a terminal event must treat it
// as a no-op.
type Observer[T any] interface {
	Next(T)
	Error(error)
	Complete()
}

// observerFuncs adapts a set of optional callbacks to Observer. Nil
// callbacks drop their event.
type observerFuncs[T any] struct {
	next     func(T)
	err      func(error)
	complete func()
}

func (o observerFuncs[T]) Next(v T) {
	if o.next != nil {
		o.next(v)
	}
}

func (o observerFuncs[T]) Error(err error) {
	if o.err != nil {
		o.err(err)
	}
}

func (o observerFuncs[T]) Complete() {
	if o.complete != nil {
		o.complete()
	}
}
