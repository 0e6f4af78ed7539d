package dpor

// ThreadState holds the per-execution state of one modeled thread.
//
// Causality tracks semantic happens-before as induced by synchronization
// events. DporClock tracks scheduling-decision causality and is the clock
// snapshotted into access records and compared during conflict detection.
// Both start at zero and grow monotonically.
type ThreadState struct {
	Causality VectorClock
	DporClock VectorClock
	Finished  bool
	Blocked   bool
	Yielded   bool
}

func newThreadState(n int) *ThreadState {
	return &ThreadState{
		Causality: NewVectorClock(n),
		DporClock: NewVectorClock(n),
	}
}

// runnable reports whether the thread is eligible for scheduling.
func (t *ThreadState) runnable() bool {
	return !t.Finished && !t.Blocked
}
