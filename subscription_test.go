package urx_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/spectonic/urx"
)

type countingSub struct {
	unsubs int
	closed bool
}

func (c *countingSub) Unsubscribe() {
	c.unsubs++
	c.closed = true
}

func (c *countingSub) Closed() bool { return c.closed }

func TestCompositeCascadesOnce(t *testing.T) {
	parent := urx.NewCompositeSubscription()
	a := &countingSub{}
	b := &countingSub{}
	parent.Add(a)
	parent.Add(b)

	hooks := 0
	parent.OnUnsubscribe(func() { hooks++ })

	parent.Unsubscribe()
	parent.Unsubscribe()

	assert.True(t, parent.Closed())
	assert.Equal(t, 1, a.unsubs)
	assert.Equal(t, 1, b.unsubs)
	assert.Equal(t, 1, hooks)
}

func TestCompositeRemoveDetachesChild(t *testing.T) {
	parent := urx.NewCompositeSubscription()
	kept := &countingSub{}
	detached := &countingSub{}
	parent.Add(kept)
	id := parent.Add(detached)

	parent.Remove(id)
	parent.Unsubscribe()

	assert.Equal(t, 1, kept.unsubs)
	assert.Zero(t, detached.unsubs)
}

func TestCompositeAddAfterClose(t *testing.T) {
	parent := urx.NewCompositeSubscription()
	parent.Unsubscribe()

	late := &countingSub{}
	id := parent.Add(late)

	assert.Equal(t, uuid.Nil, id)
	assert.Equal(t, 1, late.unsubs)

	ran := false
	parent.OnUnsubscribe(func() { ran = true })
	assert.True(t, ran)
}
