package urx

// Map transforms each value with t. A Fallible transform's failure is
// delivered as the stream's terminal error. Map is a free function
// because Go methods cannot introduce the output type parameter.
func Map[T, R any](o Observable[T], t Transform[T, R]) Observable[R] {
	return Observable[R]{src: &source[R]{shared: o.src.shared, onSubscribe: func(down *Subscriber[R]) {
		up := NewSubscriber(observerFuncs[T]{
			next: func(v T) {
				out, err := t.apply(v)
				if err != nil {
					down.Error(err)
					return
				}
				down.Next(out)
			},
			err:      down.Error,
			complete: down.Complete,
		}, down.Subscription())
		o.subscribeWith(up)
	}}}
}

// Filter drops values for which t yields false.
func (o Observable[T]) Filter(t Transform[T, bool]) Observable[T] {
	return o.derive(func(down *Subscriber[T]) {
		up := NewSubscriber(observerFuncs[T]{
			next: func(v T) {
				keep, err := t.apply(v)
				if err != nil {
					down.Error(err)
					return
				}
				if keep {
					down.Next(v)
				}
			},
			err:      down.Error,
			complete: down.Complete,
		}, down.Subscription())
		o.subscribeWith(up)
	})
}

// Take emits the first n values, then completes on its own, whether or
// not the upstream ever completes. An upstream terminal event arriving
// after the cutoff is swallowed by the subscriber's terminal gate.
func (o Observable[T]) Take(n int) Observable[T] {
	return o.derive(func(down *Subscriber[T]) {
		if n <= 0 {
			down.Complete()
			return
		}
		guard := o.newGuard()
		taken := 0
		up := NewSubscriber(observerFuncs[T]{
			next: func(v T) {
				guard.Lock()
				if taken >= n {
					guard.Unlock()
					return
				}
				taken++
				last := taken == n
				guard.Unlock()
				down.Next(v)
				if last {
					down.Complete()
				}
			},
			err:      down.Error,
			complete: down.Complete,
		}, down.Subscription())
		o.subscribeWith(up)
	})
}

// First emits only the first value, then completes.
func (o Observable[T]) First() Observable[T] {
	return o.Take(1)
}

// FirstOr emits the first value, or def if the source completes without
// ever emitting. def is never emitted for a non-empty source.
func (o Observable[T]) FirstOr(def T) Observable[T] {
	first := o.First()
	return first.derive(func(down *Subscriber[T]) {
		guard := first.newGuard()
		passed := false
		up := NewSubscriber(observerFuncs[T]{
			next: func(v T) {
				guard.Lock()
				passed = true
				guard.Unlock()
				down.Next(v)
			},
			err: down.Error,
			complete: func() {
				guard.Lock()
				p := passed
				guard.Unlock()
				if !p {
					down.Next(def)
				}
				down.Complete()
			},
		}, down.Subscription())
		first.subscribeWith(up)
	})
}
