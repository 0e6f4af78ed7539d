// Package dpor implements a systematic interleaving exploration engine
// based on dynamic partial order reduction with optional preemption
// bounding.
//
// The engine is a single-threaded library driven by an external loop: the
// driver asks which modeled thread to run next (Schedule), runs that
// thread to its next observable event, and reports the event back
// (ReportAccess / ReportSync). When no thread can run, the driver calls
// NextExecution to advance the exploration tree; it returns false once
// every meaningfully distinct interleaving has been explored.
package dpor

import "fmt"

const (
	// DefaultMaxBranches caps the path length within one execution.
	DefaultMaxBranches = 100_000
	// NoPreemptionBound disables preemption bounding.
	NoPreemptionBound = -1
)

// Config carries the immutable engine configuration.
type Config struct {
	// NumThreads is the fixed thread count per execution. Required, >= 1.
	NumThreads int
	// PreemptionBound is the maximum number of preemptions per
	// execution. Negative means unbounded.
	PreemptionBound int
	// MaxBranches caps the path length within one execution. Zero means
	// DefaultMaxBranches.
	MaxBranches int
	// MaxExecutions caps the total number of executions. Zero means
	// unlimited.
	MaxExecutions int
}

// DefaultConfig returns an unbounded configuration for n threads.
func DefaultConfig(n int) Config {
	return Config{
		NumThreads:      n,
		PreemptionBound: NoPreemptionBound,
		MaxBranches:     DefaultMaxBranches,
	}
}

// Engine orchestrates the exploration. It owns the path (the exploration
// tree position shared across executions) and the cross-execution metrics
// (completed executions, last tree depth); all per-run state lives in the
// Execution.
type Engine struct {
	config              Config
	path                *Path
	executionsCompleted int
	lastDepth           int
}

// New validates the configuration and creates an engine.
func New(config Config) (*Engine, error) {
	if config.NumThreads < 1 {
		return nil, fmt.Errorf("dpor: num threads %d: %w", config.NumThreads, ErrInvalidConfig)
	}
	if config.MaxBranches < 0 || config.MaxExecutions < 0 {
		return nil, fmt.Errorf("dpor: negative limits: %w", ErrInvalidConfig)
	}
	if config.MaxBranches == 0 {
		config.MaxBranches = DefaultMaxBranches
	}
	return &Engine{
		config: config,
		path:   newPath(),
	}, nil
}

// NumThreads returns the configured thread count.
func (e *Engine) NumThreads() int {
	return e.config.NumThreads
}

// ExecutionsCompleted returns the number of executions finished so far.
func (e *Engine) ExecutionsCompleted() int {
	return e.executionsCompleted
}

// TreeDepth returns the path length at the end of the last execution.
func (e *Engine) TreeDepth() int {
	return e.lastDepth
}

// BeginExecution creates a fresh execution. All threads start runnable;
// the exploration tree persists from previous executions and its recorded
// prefix is replayed from the start.
func (e *Engine) BeginExecution() *Execution {
	e.path.replayPos = 0
	return newExecution(e.config.NumThreads)
}

// Schedule decides which thread runs next. It returns false when the
// execution is over: all threads finished, every unfinished thread
// blocked (deadlock, flagged on the execution), or the branch limit was
// hit (aborts the execution).
func (e *Engine) Schedule(exec *Execution) (int, bool) {
	if exec.aborted {
		return -1, false
	}
	if e.path.replayPos >= e.config.MaxBranches {
		exec.abort(AbortBranchLimit)
		return -1, false
	}
	tid, ok := e.path.schedule(exec)
	if !ok {
		if !exec.allFinished() && exec.anyBlocked() {
			exec.abort(AbortDeadlock)
		}
		return -1, false
	}
	exec.scheduleTrace = append(exec.scheduleTrace, tid)
	return tid, true
}

// ReportAccess records a shared-memory access by tid on the given object
// and inserts backtrack points for every prior dependent access that is
// concurrent with it in the scheduling causality order.
func (e *Engine) ReportAccess(exec *Execution, tid int, object uint64, kind AccessKind) error {
	if err := exec.checkThread(tid); err != nil {
		return err
	}
	th := exec.threads[tid]
	th.Causality.Increment(tid)
	th.DporClock.Increment(tid)

	state, ok := exec.objects[object]
	if !ok {
		state = NewObjectState()
		exec.objects[object] = state
	}
	for _, dep := range state.DependentAccesses(kind, tid) {
		if !dep.Clock.PartialLE(th.DporClock) {
			e.path.addBacktrack(dep.PathID, tid, e.config.PreemptionBound)
		}
	}
	state.RecordAccess(AccessRecord{
		PathID:   e.path.replayPos - 1,
		ThreadID: tid,
		Clock:    th.DporClock.Copy(),
		Kind:     kind,
	})
	return nil
}

// ReportSync applies a synchronization event to the reporting thread's
// clocks. These events produce exactly the happens-before edges needed so
// that properly synchronized accesses never look concurrent.
func (e *Engine) ReportSync(exec *Execution, tid int, event SyncEvent) error {
	if err := exec.checkThread(tid); err != nil {
		return err
	}
	th := exec.threads[tid]
	switch event.Kind {
	case LockAcquire:
		if release, ok := exec.lockClocks[event.Target]; ok {
			th.Causality.Join(release)
			th.DporClock.Join(release)
		}
		exec.locksAcquired[event.Target] = true
		th.Causality.Increment(tid)
		th.DporClock.Increment(tid)
	case LockRelease:
		exec.lockClocks[event.Target] = th.Causality.Copy()
		if !exec.locksAcquired[event.Target] {
			return fmt.Errorf("dpor: lock %d: %w", event.Target, ErrUnknownLock)
		}
	case ThreadSpawn:
		child := int(event.Target)
		if err := exec.checkThread(child); err != nil {
			return err
		}
		exec.threads[child].Causality = th.Causality.Copy()
		exec.threads[child].DporClock = th.DporClock.Copy()
		th.Causality.Increment(tid)
		th.DporClock.Increment(tid)
	case ThreadJoin:
		target := int(event.Target)
		if err := exec.checkThread(target); err != nil {
			return err
		}
		if !exec.threads[target].Finished {
			return fmt.Errorf("dpor: thread %d: %w", target, ErrThreadNotFinished)
		}
		th.Causality.Join(exec.threads[target].Causality)
		th.DporClock.Join(exec.threads[target].DporClock)
	default:
		return fmt.Errorf("dpor: unknown sync kind %d", event.Kind)
	}
	return nil
}

// NextExecution advances the exploration tree to the next unexplored
// branch. It returns false when the tree is exhausted or the execution
// limit is reached.
func (e *Engine) NextExecution() bool {
	e.executionsCompleted++
	e.lastDepth = e.path.Length()
	if e.config.MaxExecutions > 0 && e.executionsCompleted >= e.config.MaxExecutions {
		return false
	}
	return e.path.advance()
}
