package urx_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spectonic/urx"
	"github.com/spectonic/urx/urxtest"
)

func TestMapPure(t *testing.T) {
	rec := urxtest.NewRecorder[string]()
	src := urx.Of(1, 2, 3)

	urx.Map(src, urx.Pure(func(v int) string {
		return string(rune('a' + v - 1))
	})).SubscribeObserver(rec)

	assert.Equal(t, []string{"a", "b", "c"}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestMapFallibleFoldsIntoErrorChannel(t *testing.T) {
	boom := errors.New("boom")
	rec := urxtest.NewRecorder[int]()

	urx.Map(urx.Of(1, 2, 3), urx.Fallible(func(v int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v * 10, nil
	})).SubscribeObserver(rec)

	assert.Equal(t, []int{10}, rec.Values())
	assert.ErrorIs(t, rec.Err(), boom)
	assert.Equal(t, 1, rec.TerminalCount())
}

func TestFilter(t *testing.T) {
	rec := urxtest.NewRecorder[int]()

	urx.Of(1, 2, 3, 4, 5, 6).
		Filter(urx.Pure(func(v int) bool { return v%2 == 0 })).
		SubscribeObserver(rec)

	assert.Equal(t, []int{2, 4, 6}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestTakeBound(t *testing.T) {
	cases := []struct {
		name   string
		source []int
		n      int
		want   []int
	}{
		{"fewer than bound", []int{1, 2}, 5, []int{1, 2}},
		{"exactly bound", []int{1, 2, 3}, 3, []int{1, 2, 3}},
		{"more than bound", []int{1, 2, 3, 4, 5}, 3, []int{1, 2, 3}},
		{"zero bound", []int{1, 2}, 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := urxtest.NewRecorder[int]()
			urx.FromSlice(tc.source).Take(tc.n).SubscribeObserver(rec)
			assert.Equal(t, tc.want, rec.Values())
			assert.True(t, rec.Completed())
			assert.Equal(t, 1, rec.TerminalCount())
		})
	}
}

func TestTakeCompletesWithoutUpstreamCompletion(t *testing.T) {
	subj := urx.NewSubject[int]()
	rec := urxtest.NewRecorder[int]()
	subj.Fork().Take(2).SubscribeObserver(rec)

	subj.Next(1)
	subj.Next(2)
	subj.Next(3)

	assert.Equal(t, []int{1, 2}, rec.Values())
	assert.True(t, rec.Completed())
	assert.Equal(t, 1, rec.TerminalCount())
}

func TestFirst(t *testing.T) {
	rec := urxtest.NewRecorder[int]()
	urx.Of(7, 8, 9).First().SubscribeObserver(rec)

	assert.Equal(t, []int{7}, rec.Values())
	assert.True(t, rec.Completed())
}

func TestFirstOrDefault(t *testing.T) {
	empty := urxtest.NewRecorder[int]()
	urx.Empty[int]().FirstOr(100).SubscribeObserver(empty)
	assert.Equal(t, []int{100}, empty.Values())
	assert.True(t, empty.Completed())

	nonEmpty := urxtest.NewRecorder[int]()
	urx.Of(1, 2).FirstOr(100).SubscribeObserver(nonEmpty)
	assert.Equal(t, []int{1}, nonEmpty.Values())
	assert.True(t, nonEmpty.Completed())
}

func TestFirstOrForwardsError(t *testing.T) {
	boom := errors.New("boom")
	rec := urxtest.NewRecorder[int]()
	urx.Throw[int](boom).FirstOr(100).SubscribeObserver(rec)

	assert.Empty(t, rec.Values())
	assert.ErrorIs(t, rec.Err(), boom)
}
