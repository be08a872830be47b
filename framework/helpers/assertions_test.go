package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// returns a function that yields before, then after once it has been called more than
// flipAfter times
func valueAfterCalls[V any](before, after V, flipAfter int) func() V {
	calls := 0
	return func() V {
		calls++
		if calls <= flipAfter {
			return before
		}
		return after
	}
}

func TestPollForSpecificResultValue(t *testing.T) {
	t.Run("value appears before timeout", func(t *testing.T) {
		assert.True(t, PollForSpecificResultValue(valueAfterCalls("pending", "done", 1),
			time.Second, time.Millisecond, "done"))
	})

	t.Run("value never appears", func(t *testing.T) {
		assert.False(t, PollForSpecificResultValue(valueAfterCalls("pending", "done", 100),
			time.Millisecond*10, time.Millisecond, "done"))
	})
}

func TestEventually(t *testing.T) {
	t.Run("condition becomes true", func(t *testing.T) {
		var tr1 TestRecorder
		ok := AssertEventually(&tr1, valueAfterCalls(false, true, 1), time.Second, time.Millisecond, "too %s", "late")
		assert.True(t, ok)
		assert.Len(t, tr1.Errors, 0)
		assert.False(t, tr1.Terminated)

		var tr2 TestRecorder
		RequireEventually(&tr2, valueAfterCalls(false, true, 1), time.Second, time.Millisecond, "too %s", "late")
		assert.Len(t, tr2.Errors, 0)
		assert.False(t, tr2.Terminated)
	})

	t.Run("condition stays false", func(t *testing.T) {
		var tr1 TestRecorder
		ok := AssertEventually(&tr1, valueAfterCalls(false, true, 100), time.Millisecond*10, time.Millisecond,
			"too %s", "late")
		assert.False(t, ok)
		if assert.Len(t, tr1.Errors, 1) {
			assert.Equal(t, "too late", tr1.Errors[0])
		}
		assert.False(t, tr1.Terminated)

		var tr2 TestRecorder
		RequireEventually(&tr2, valueAfterCalls(false, true, 100), time.Millisecond*10, time.Millisecond,
			"too %s", "late")
		if assert.Len(t, tr2.Errors, 1) {
			assert.Equal(t, "too late", tr2.Errors[0])
		}
		assert.True(t, tr2.Terminated)
	})
}

func TestNever(t *testing.T) {
	t.Run("condition becomes true", func(t *testing.T) {
		var tr1 TestRecorder
		ok := AssertNever(&tr1, valueAfterCalls(false, true, 1), time.Second, time.Millisecond, "too %s", "soon")
		assert.False(t, ok)
		if assert.Len(t, tr1.Errors, 1) {
			assert.Equal(t, "too soon", tr1.Errors[0])
			assert.False(t, tr1.Terminated)
		}

		var tr2 TestRecorder
		RequireNever(&tr2, valueAfterCalls(false, true, 1), time.Second, time.Millisecond, "too %s", "soon")
		if assert.Len(t, tr2.Errors, 1) {
			assert.Equal(t, "too soon", tr2.Errors[0])
		}
		assert.True(t, tr2.Terminated)
	})

	t.Run("condition stays false", func(t *testing.T) {
		var tr1 TestRecorder
		ok := AssertNever(&tr1, valueAfterCalls(false, true, 100), time.Millisecond*10, time.Millisecond,
			"too %s", "soon")
		assert.True(t, ok)
		assert.Len(t, tr1.Errors, 0)
		assert.False(t, tr1.Terminated)

		var tr2 TestRecorder
		RequireNever(&tr2, valueAfterCalls(false, true, 100), time.Millisecond*10, time.Millisecond,
			"too %s", "soon")
		assert.Len(t, tr2.Errors, 0)
		assert.False(t, tr2.Terminated)
	})
}
