package urx

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription is a cancellable handle to ongoing work. Unsubscribe is
// idempotent; once it has run the subscription is closed for good.
type Subscription interface {
	Unsubscribe()
	Closed() bool
}

// CompositeSubscription owns child subscriptions and unsubscribe hooks.
// Unsubscribing cascades to every child exactly once. Children are keyed
// so that one which finishes naturally (a fired timer, a detached sink)
// can remove itself without cancelling the rest.
type CompositeSubscription struct {
	mu       sync.Mutex
	closed   bool
	children map[uuid.UUID]Subscription
	hooks    []func()
}

func NewCompositeSubscription() *CompositeSubscription {
	return &CompositeSubscription{children: make(map[uuid.UUID]Subscription)}
}

// Add registers a child and returns its key. If the composite is already
// closed the child is unsubscribed immediately and uuid.Nil is returned.
func (c *CompositeSubscription) Add(child Subscription) uuid.UUID {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		child.Unsubscribe()
		return uuid.Nil
	}
	id := uuid.New()
	c.children[id] = child
	c.mu.Unlock()
	return id
}

// Remove detaches the child with the given key without unsubscribing it.
func (c *CompositeSubscription) Remove(id uuid.UUID) {
	c.mu.Lock()
	if !c.closed {
		delete(c.children, id)
	}
	c.mu.Unlock()
}

// OnUnsubscribe registers a hook invoked when the composite closes. A
// hook added after closing runs immediately.
func (c *CompositeSubscription) OnUnsubscribe(hook func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		hook()
		return
	}
	c.hooks = append(c.hooks, hook)
	c.mu.Unlock()
}

func (c *CompositeSubscription) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Unsubscribe closes the composite, cancels every child and runs the
// hooks. Children and hooks execute outside the composite's lock.
func (c *CompositeSubscription) Unsubscribe() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	children := c.children
	hooks := c.hooks
	c.children = nil
	c.hooks = nil
	c.mu.Unlock()

	for _, child := range children {
		child.Unsubscribe()
	}
	for _, hook := range hooks {
		hook()
	}
}

// closedSubscription is the zero-cost handle for work that is already
// done or was never started.
type closedSubscription struct{}

func (closedSubscription) Unsubscribe() {}
func (closedSubscription) Closed() bool { return true }
