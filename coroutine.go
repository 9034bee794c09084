package dot

import (
	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
)

// Coroutine is a step function resumed across ticks by a Scheduler.
type Coroutine struct {
	id      uint64
	step    Step
	pending YieldInstruction
	done    bool
}

// ID returns the scheduler-assigned id.
func (c *Coroutine) ID() uint64 { return c.id }

// Done reports whether the coroutine finished or was stopped.
func (c *Coroutine) Done() bool { return c.done }

// Scheduler advances coroutines once per tick in start order.
type Scheduler struct {
	coroutines []*Coroutine
	byID       *intmap.Map[uint64, *Coroutine]
	nextID     uint64
	ticking    bool
	logger     *log.Logger
}

// NewScheduler creates an empty scheduler. A nil logger discards output.
func NewScheduler(logger *log.Logger) *Scheduler {
	return &Scheduler{
		byID:   intmap.New[uint64, *Coroutine](16),
		logger: loggerOr(logger),
	}
}

// Start registers step with no pending instruction. It is first invoked on
// the next Tick; a coroutine started during a Tick waits for the following one.
func (s *Scheduler) Start(step Step) *Coroutine {
	if step == nil {
		panic("dot: cannot start nil coroutine")
	}
	s.nextID++
	c := &Coroutine{id: s.nextID, step: step}
	s.coroutines = append(s.coroutines, c)
	s.byID.Put(c.id, c)
	return c
}

// Lookup returns the live coroutine with the given id, or nil.
func (s *Scheduler) Lookup(id uint64) *Coroutine {
	c, ok := s.byID.Get(id)
	if !ok {
		return nil
	}
	return c
}

// Stop ends c without invoking it again. Safe to call from inside a step.
func (s *Scheduler) Stop(c *Coroutine) {
	if c == nil || c.done {
		return
	}
	c.done = true
	c.pending = nil
	s.byID.Del(c.id)
}

// StopAll stops every coroutine.
func (s *Scheduler) StopAll() {
	for _, c := range s.coroutines {
		s.Stop(c)
	}
	if !s.ticking {
		s.coroutines = nil
	}
}

// Len returns the number of live coroutines.
func (s *Scheduler) Len() int {
	return s.byID.Len()
}

// Tick advances every coroutine that was live when the tick began.
func (s *Scheduler) Tick(dt float64) {
	// Coroutines appended by steps during this tick are not in the snapshot.
	snapshot := s.coroutines
	s.ticking = true
	defer func() { s.ticking = false }()
	for _, c := range snapshot {
		if c.done {
			continue
		}
		if c.pending != nil {
			if !c.pending.IsComplete(dt) {
				continue
			}
			c.pending = nil
		}
		next := c.step()
		if c.done {
			continue
		}
		if next == nil {
			s.logger.Debug("coroutine finished", "id", c.id)
			s.Stop(c)
			continue
		}
		c.pending = next
	}
	s.compact()
}

// compact drops finished coroutines while keeping start order.
func (s *Scheduler) compact() {
	live := s.coroutines[:0]
	for _, c := range s.coroutines {
		if !c.done {
			live = append(live, c)
		}
	}
	clear(s.coroutines[len(live):])
	s.coroutines = live
}
