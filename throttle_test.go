package urx_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spectonic/urx"
	"github.com/spectonic/urx/urxtest"
)

const window = 10 * time.Millisecond

func throttled(edge urx.ThrottleEdge) (*urx.Subject[int], *urxtest.VirtualScheduler, *urxtest.Recorder[int], urx.Subscription) {
	subj := urx.NewSubject[int]()
	sched := urxtest.NewVirtualScheduler()
	rec := urxtest.NewRecorder[int]()
	sub := subj.Fork().ThrottleTime(window, edge, sched).SubscribeObserver(rec)
	return subj, sched, rec, sub
}

func TestThrottleLeading(t *testing.T) {
	subj, sched, rec, _ := throttled(urx.ThrottleLeading)

	subj.Next(1) // opens the window, emitted immediately
	subj.Next(2) // same window, dropped
	subj.Next(3) // same window, dropped
	assert.Equal(t, []int{1}, rec.Values())

	sched.Advance(window)
	subj.Next(4) // new window
	assert.Equal(t, []int{1, 4}, rec.Values())

	sched.Advance(window)
	assert.Equal(t, []int{1, 4}, rec.Values())
}

func TestThrottleTailing(t *testing.T) {
	subj, sched, rec, _ := throttled(urx.ThrottleTailing)

	subj.Next(1)
	subj.Next(2)
	subj.Next(3) // last write wins within the window
	assert.Empty(t, rec.Values())

	sched.Advance(window)
	assert.Equal(t, []int{3}, rec.Values())

	subj.Next(4)
	sched.Advance(window)
	assert.Equal(t, []int{3, 4}, rec.Values())
}

func TestThrottleTailingFlushesOnComplete(t *testing.T) {
	subj, sched, rec, _ := throttled(urx.ThrottleTailing)

	subj.Next(1)
	subj.Complete()

	assert.Equal(t, []int{1}, rec.Values())
	assert.True(t, rec.Completed())

	// the pending window timer was cancelled with the subscription
	sched.Advance(window)
	assert.Equal(t, []int{1}, rec.Values())
	assert.Equal(t, 1, rec.TerminalCount())
}

func TestThrottleErrorBypassesWindow(t *testing.T) {
	boom := errors.New("boom")
	subj, sched, rec, _ := throttled(urx.ThrottleTailing)

	subj.Next(1)
	subj.Error(boom)

	// the buffered tailing value is never emitted on error
	assert.Empty(t, rec.Values())
	assert.ErrorIs(t, rec.Err(), boom)

	sched.Advance(window)
	assert.Empty(t, rec.Values())
	assert.Equal(t, 1, rec.TerminalCount())
}

func TestThrottleUnsubscribeCancelsTimer(t *testing.T) {
	subj, sched, rec, sub := throttled(urx.ThrottleTailing)

	subj.Next(1)
	sub.Unsubscribe()

	sched.Advance(window)
	assert.Empty(t, rec.Values())
	assert.Zero(t, rec.TerminalCount())
}

func TestThrottleWindowReopens(t *testing.T) {
	subj, sched, rec, _ := throttled(urx.ThrottleLeading)

	for i := 0; i < 3; i++ {
		subj.Next(i * 10)     // first of window i, emitted
		subj.Next(i*10 + 1)   // absorbed
		sched.Advance(window) // window expires
	}

	assert.Equal(t, []int{0, 10, 20}, rec.Values())
}
