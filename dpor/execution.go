package dpor

import "fmt"

// AbortReason says why an execution stopped before all threads finished.
type AbortReason int

const (
	AbortNone AbortReason = iota
	// AbortDeadlock means every unfinished thread was blocked.
	AbortDeadlock
	// AbortBranchLimit means the per-execution branch cap was hit.
	AbortBranchLimit
)

func (r AbortReason) String() string {
	switch r {
	case AbortNone:
		return "none"
	case AbortDeadlock:
		return "deadlock: all unfinished threads are blocked"
	case AbortBranchLimit:
		return "branch limit exceeded"
	}
	return "unknown abort reason"
}

// Execution holds all per-run state: thread states, object access
// histories, lock release clocks and the schedule trace. It lives for one
// run; the exploration tree persists in the engine across executions.
type Execution struct {
	threads       []*ThreadState
	objects       map[uint64]*ObjectState
	lockClocks    map[uint64]VectorClock
	locksAcquired map[uint64]bool
	scheduleTrace []int

	aborted     bool
	abortReason AbortReason
}

func newExecution(n int) *Execution {
	e := &Execution{
		threads:       make([]*ThreadState, n),
		objects:       make(map[uint64]*ObjectState),
		lockClocks:    make(map[uint64]VectorClock),
		locksAcquired: make(map[uint64]bool),
		scheduleTrace: make([]int, 0, 64),
	}
	for i := range e.threads {
		e.threads[i] = newThreadState(n)
	}
	// the initial thread has already performed its birth event
	e.threads[0].Causality.Increment(0)
	e.threads[0].DporClock.Increment(0)
	return e
}

// NumThreads returns the fixed thread count of the execution.
func (e *Execution) NumThreads() int {
	return len(e.threads)
}

// Thread returns the state of the given thread.
func (e *Execution) Thread(tid int) *ThreadState {
	return e.threads[tid]
}

// ScheduleTrace returns the sequence of thread ids chosen so far.
func (e *Execution) ScheduleTrace() []int {
	trace := make([]int, len(e.scheduleTrace))
	copy(trace, e.scheduleTrace)
	return trace
}

// Aborted reports whether the execution stopped early, and why.
func (e *Execution) Aborted() (bool, AbortReason) {
	return e.aborted, e.abortReason
}

// Deadlocked reports whether the execution ended with unfinished threads
// all blocked on each other.
func (e *Execution) Deadlocked() bool {
	return e.aborted && e.abortReason == AbortDeadlock
}

func (e *Execution) abort(reason AbortReason) {
	e.aborted = true
	e.abortReason = reason
}

// RunnableThreads lists the threads currently eligible for scheduling.
func (e *Execution) RunnableThreads() []int {
	runnable := make([]int, 0, len(e.threads))
	for i, t := range e.threads {
		if t.runnable() {
			runnable = append(runnable, i)
		}
	}
	return runnable
}

// FinishThread marks a thread as finished. Finishing a thread twice is a
// driver bug and leaves the execution unchanged.
func (e *Execution) FinishThread(tid int) error {
	if err := e.checkThread(tid); err != nil {
		return err
	}
	if e.threads[tid].Finished {
		return fmt.Errorf("dpor: thread %d: %w", tid, ErrThreadFinished)
	}
	e.threads[tid].Finished = true
	e.threads[tid].Blocked = false
	return nil
}

// BlockThread marks a thread as blocked, e.g. waiting on a held lock.
func (e *Execution) BlockThread(tid int) error {
	if err := e.checkThread(tid); err != nil {
		return err
	}
	e.threads[tid].Blocked = true
	return nil
}

// UnblockThread clears a thread's blocked flag.
func (e *Execution) UnblockThread(tid int) error {
	if err := e.checkThread(tid); err != nil {
		return err
	}
	e.threads[tid].Blocked = false
	return nil
}

// YieldThread marks a thread as having given up its turn; it is scheduled
// again only when no pending thread remains.
func (e *Execution) YieldThread(tid int) error {
	if err := e.checkThread(tid); err != nil {
		return err
	}
	e.threads[tid].Yielded = true
	return nil
}

func (e *Execution) checkThread(tid int) error {
	if tid < 0 || tid >= len(e.threads) {
		return fmt.Errorf("dpor: thread %d with %d threads: %w", tid, len(e.threads), ErrThreadOutOfRange)
	}
	return nil
}

func (e *Execution) allFinished() bool {
	for _, t := range e.threads {
		if !t.Finished {
			return false
		}
	}
	return true
}

func (e *Execution) anyBlocked() bool {
	for _, t := range e.threads {
		if !t.Finished && t.Blocked {
			return true
		}
	}
	return false
}
