package urx

// NotificationKind discriminates materialized stream events.
type NotificationKind int

const (
	KindNext NotificationKind = iota
	KindError
	KindComplete
)

func (k NotificationKind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindComplete:
		return "complete"
	}
	return "unknown"
}

// Notification is a stream event reified as a value, used where events
// need to be stored or compared (the urxtest recorder, subject replay of
// a terminal event to late sinks).
type Notification[T any] struct {
	Kind NotificationKind
	Val  T
	Err  error
}

func Next[T any](v T) Notification[T] {
	return Notification[T]{Kind: KindNext, Val: v}
}

func Error[T any](err error) Notification[T] {
	return Notification[T]{Kind: KindError, Err: err}
}

func Complete[T any]() Notification[T] {
	return Notification[T]{Kind: KindComplete}
}

// Deliver replays the materialized event into an observer.
func (n Notification[T]) Deliver(o Observer[T]) {
	switch n.Kind {
	case KindNext:
		o.Next(n.Val)
	case KindError:
		o.Error(n.Err)
	case KindComplete:
		o.Complete()
	}
}
