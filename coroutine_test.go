package dot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoroutineTimeline(t *testing.T) {
	s := NewScheduler(nil)
	var invoked []int
	tick := 0
	co := s.Start(Sequence(
		func() YieldInstruction { invoked = append(invoked, tick); return WaitSeconds(2) },
		func() YieldInstruction { invoked = append(invoked, tick); return WaitSeconds(1) },
		func() YieldInstruction { invoked = append(invoked, tick); return nil },
	))

	for tick = 0; tick < 10; tick++ {
		s.Tick(0.5)
	}

	assert.Equal(t, []int{0, 4, 6}, invoked)
	assert.True(t, co.Done())
	assert.Equal(t, 0, s.Len())
}

func TestCoroutineNotInvokedBeforeTick(t *testing.T) {
	s := NewScheduler(nil)
	calls := 0
	s.Start(func() YieldInstruction { calls++; return nil })
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, s.Len())
	s.Tick(0)
	assert.Equal(t, 1, calls)
	s.Tick(0)
	assert.Equal(t, 1, calls, "finished coroutine must not run again")
}

func TestCoroutineRegistrationOrder(t *testing.T) {
	s := NewScheduler(nil)
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		s.Start(func() YieldInstruction {
			order = append(order, name)
			return WaitFrames(1)
		})
	}
	s.Tick(0.1)
	s.Tick(0.1)
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, order)
}

func TestCoroutineRemovalDoesNotSkipNeighbours(t *testing.T) {
	s := NewScheduler(nil)
	counts := map[string]int{}
	mk := func(name string, runs int) Step {
		return func() YieldInstruction {
			counts[name]++
			if counts[name] >= runs {
				return nil
			}
			return WaitFrames(1)
		}
	}
	s.Start(mk("a", 1))
	s.Start(mk("b", 3))
	s.Start(mk("c", 1))
	s.Start(mk("d", 3))

	s.Tick(0.1)
	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}, counts)
	assert.Equal(t, 2, s.Len())

	s.Tick(0.1)
	s.Tick(0.1)
	assert.Equal(t, map[string]int{"a": 1, "b": 3, "c": 1, "d": 3}, counts)
	assert.Equal(t, 0, s.Len())
}

func TestCoroutineStartedDuringTickRunsNextTick(t *testing.T) {
	s := NewScheduler(nil)
	childRuns := 0
	s.Start(func() YieldInstruction {
		s.Start(func() YieldInstruction { childRuns++; return nil })
		return nil
	})
	s.Tick(0.1)
	assert.Equal(t, 0, childRuns)
	assert.Equal(t, 1, s.Len())
	s.Tick(0.1)
	assert.Equal(t, 1, childRuns)
}

func TestCoroutineStopDuringTick(t *testing.T) {
	s := NewScheduler(nil)
	var bRuns, cRuns int
	var b *Coroutine
	s.Start(func() YieldInstruction {
		s.Stop(b)
		return WaitFrames(1)
	})
	b = s.Start(func() YieldInstruction { bRuns++; return WaitFrames(1) })
	s.Start(func() YieldInstruction { cRuns++; return WaitFrames(1) })

	s.Tick(0.1)
	assert.Equal(t, 0, bRuns, "stopped coroutine must not run")
	assert.Equal(t, 1, cRuns, "neighbour after a stopped coroutine must still run")
	assert.True(t, b.Done())
	assert.Equal(t, 2, s.Len())
	assert.Nil(t, s.Lookup(b.ID()))
}

func TestCoroutineStopSelf(t *testing.T) {
	s := NewScheduler(nil)
	runs := 0
	var self *Coroutine
	self = s.Start(func() YieldInstruction {
		runs++
		s.Stop(self)
		return WaitFrames(1)
	})
	s.Tick(0.1)
	s.Tick(0.1)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, s.Len())
}

func TestCoroutineStopAllDuringTick(t *testing.T) {
	s := NewScheduler(nil)
	runs := 0
	s.Start(func() YieldInstruction { s.StopAll(); return WaitFrames(1) })
	s.Start(func() YieldInstruction { runs++; return nil })
	s.Tick(0.1)
	assert.Equal(t, 0, runs)
	assert.Equal(t, 0, s.Len())
}

func TestCoroutineLookup(t *testing.T) {
	s := NewScheduler(nil)
	a := s.Start(func() YieldInstruction { return WaitFrames(5) })
	b := s.Start(func() YieldInstruction { return WaitFrames(5) })
	require.NotEqual(t, a.ID(), b.ID())
	assert.Same(t, a, s.Lookup(a.ID()))
	assert.Same(t, b, s.Lookup(b.ID()))
	assert.Nil(t, s.Lookup(999))
}

func TestStartNilPanics(t *testing.T) {
	s := NewScheduler(nil)
	assert.Panics(t, func() { s.Start(nil) })
}

func TestWaitForSeconds(t *testing.T) {
	w := WaitSeconds(1)
	assert.False(t, w.IsComplete(0.25))
	assert.False(t, w.IsComplete(0.5))
	assert.True(t, w.IsComplete(0.25), "completes when remaining reaches zero")
}

func TestWaitFrames(t *testing.T) {
	w := WaitFrames(3)
	assert.False(t, w.IsComplete(0))
	assert.False(t, w.IsComplete(0))
	assert.True(t, w.IsComplete(0))
}

func TestWaitUntilAndWhile(t *testing.T) {
	ready := false
	until := WaitUntil(func() bool { return ready })
	while := WaitWhile(func() bool { return !ready })
	assert.False(t, until.IsComplete(0))
	assert.False(t, while.IsComplete(0))
	ready = true
	assert.True(t, until.IsComplete(0))
	assert.True(t, while.IsComplete(0))
}

func TestSequenceFallsThroughNilStages(t *testing.T) {
	var ran []int
	step := Sequence(
		func() YieldInstruction { ran = append(ran, 1); return nil },
		func() YieldInstruction { ran = append(ran, 2); return WaitFrames(1) },
		func() YieldInstruction { ran = append(ran, 3); return nil },
	)
	y := step()
	assert.NotNil(t, y)
	assert.Equal(t, []int{1, 2}, ran)
	assert.Nil(t, step())
	assert.Equal(t, []int{1, 2, 3}, ran)
	assert.Nil(t, step(), "exhausted sequence stays finished")
}
