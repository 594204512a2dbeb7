package urx

import (
	"sync"

	"github.com/google/uuid"
)

// multicastCore sits between one upstream subscription and any number of
// downstream sinks. Sinks register into a keyed registry and deregister
// themselves by key through an unsubscribe hook, so no sink holds a
// strong reference back into the core's lifecycle.
type multicastCore[T any] struct {
	mu        sync.Mutex
	source    Observable[T]
	shared    bool
	sinks     map[uuid.UUID]*Subscriber[T]
	upstream  *Subscriber[T]
	connected bool
	terminal  *Notification[T]
}

func newMulticastCore[T any](source Observable[T]) *multicastCore[T] {
	return &multicastCore[T]{
		source: source,
		shared: source.Shared(),
		sinks:  make(map[uuid.UUID]*Subscriber[T]),
	}
}

// fork yields a fresh observable handle that registers into the shared
// registry when subscribed instead of re-subscribing the source. When
// eager, the first fork subscription connects the upstream.
func (c *multicastCore[T]) fork(eager bool) Observable[T] {
	return Observable[T]{src: &source[T]{shared: c.shared, onSubscribe: func(down *Subscriber[T]) {
		c.attach(down, eager)
	}}}
}

func (c *multicastCore[T]) attach(down *Subscriber[T], eager bool) {
	c.mu.Lock()
	if c.terminal != nil {
		// upstream already finished; late sinks get the terminal event
		n := *c.terminal
		c.mu.Unlock()
		n.Deliver(down)
		return
	}
	id := uuid.New()
	c.sinks[id] = down
	c.mu.Unlock()
	down.Subscription().OnUnsubscribe(func() {
		c.remove(id)
	})
	if eager {
		c.connect()
	}
}

func (c *multicastCore[T]) remove(id uuid.UUID) {
	c.mu.Lock()
	if c.sinks != nil {
		delete(c.sinks, id)
	}
	c.mu.Unlock()
}

// connect subscribes the upstream source, at most once across the core's
// lifetime, and returns the upstream subscription handle.
func (c *multicastCore[T]) connect() Subscription {
	c.mu.Lock()
	if c.connected {
		up := c.upstream
		c.mu.Unlock()
		if up == nil {
			return closedSubscription{}
		}
		return up
	}
	c.connected = true
	up := NewSubscriber(observerFuncs[T]{
		next:     c.forward,
		err:      func(err error) { c.terminate(Error[T](err)) },
		complete: func() { c.terminate(Complete[T]()) },
	}, NewCompositeSubscription())
	c.upstream = up
	c.mu.Unlock()
	c.source.subscribeWith(up)
	return up
}

func (c *multicastCore[T]) forward(v T) {
	for _, sink := range c.snapshot() {
		sink.Next(v)
	}
}

func (c *multicastCore[T]) terminate(n Notification[T]) {
	c.mu.Lock()
	if c.terminal != nil {
		c.mu.Unlock()
		return
	}
	c.terminal = &n
	sinks := c.snapshotLocked()
	c.sinks = nil
	c.mu.Unlock()
	for _, sink := range sinks {
		n.Deliver(sink)
	}
}

// snapshot copies the registry so delivery happens outside the core's
// lock; a sink unsubscribing mid-delivery is gated by its own subscriber.
func (c *multicastCore[T]) snapshot() []*Subscriber[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *multicastCore[T]) snapshotLocked() []*Subscriber[T] {
	sinks := make([]*Subscriber[T], 0, len(c.sinks))
	for _, sink := range c.sinks {
		sinks = append(sinks, sink)
	}
	return sinks
}

// Multicasted shares one upstream execution between any number of forks.
// The upstream is subscribed when the first fork subscribes; forks that
// subscribe later observe only what the upstream emits from then on.
type Multicasted[T any] struct {
	core *multicastCore[T]
}

// Multicast wraps the observable in a broadcast core. The source itself
// must no longer be subscribed directly.
func (o Observable[T]) Multicast() *Multicasted[T] {
	return &Multicasted[T]{core: newMulticastCore(o)}
}

// Fork returns a new observable handle attached to the shared core.
func (m *Multicasted[T]) Fork() Observable[T] {
	return m.core.fork(true)
}

// Connectable is the multicast variant whose upstream subscription waits
// for an explicit Connect, so every intended fork can register before the
// first item flows.
type Connectable[T any] struct {
	core *multicastCore[T]
}

// Publish wraps the observable in a connectable broadcast core.
func (o Observable[T]) Publish() *Connectable[T] {
	return &Connectable[T]{core: newMulticastCore(o)}
}

// Fork returns a new observable handle attached to the shared core.
// Subscribing it does not start the upstream.
func (c *Connectable[T]) Fork() Observable[T] {
	return c.core.fork(false)
}

// Connect subscribes the upstream source. Repeated calls return the same
// upstream subscription; unsubscribing it tears down the whole broadcast.
func (c *Connectable[T]) Connect() Subscription {
	return c.core.connect()
}
