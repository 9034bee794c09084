package dot

// YieldInstruction gates a paused coroutine. IsComplete is called once per
// scheduler tick with the tick's elapsed seconds and reports whether the
// coroutine may resume.
type YieldInstruction interface {
	IsComplete(dt float64) bool
}

// WaitForSeconds completes once the accumulated tick time reaches its
// duration. Each check subtracts dt from the time remaining.
type WaitForSeconds struct {
	Remaining float64
}

// WaitSeconds returns a timed wait.
func WaitSeconds(seconds float64) *WaitForSeconds {
	return &WaitForSeconds{Remaining: seconds}
}

func (w *WaitForSeconds) IsComplete(dt float64) bool {
	w.Remaining -= dt
	return w.Remaining <= 0
}

// waitFrames completes after n checks.
type waitFrames struct {
	n int
}

// WaitFrames returns an instruction that completes on the n-th tick after it
// was yielded. n <= 1 resumes on the next tick.
func WaitFrames(n int) YieldInstruction {
	return &waitFrames{n: n}
}

func (w *waitFrames) IsComplete(float64) bool {
	w.n--
	return w.n <= 0
}

// YieldFunc adapts a function to YieldInstruction.
type YieldFunc func(dt float64) bool

func (f YieldFunc) IsComplete(dt float64) bool { return f(dt) }

// WaitUntil resumes once cond returns true.
func WaitUntil(cond func() bool) YieldInstruction {
	return YieldFunc(func(float64) bool { return cond() })
}

// WaitWhile resumes once cond returns false.
func WaitWhile(cond func() bool) YieldInstruction {
	return YieldFunc(func(float64) bool { return !cond() })
}

// Step is one resumption of a coroutine. Returning a YieldInstruction pauses
// the coroutine until it completes; returning nil finishes it.
type Step func() YieldInstruction

// Sequence runs stages in order, one per resumption. A stage that returns nil
// falls through to the next stage in the same resumption. The sequence
// finishes after the last stage.
func Sequence(stages ...Step) Step {
	i := 0
	return func() YieldInstruction {
		for i < len(stages) {
			stage := stages[i]
			i++
			if y := stage(); y != nil {
				return y
			}
		}
		return nil
	}
}
