package explore

import (
	"errors"
	"fmt"

	"github.com/interleave-dev/interleave/dpor"
)

// Config controls a systematic exploration.
type Config struct {
	// PreemptionBound caps preemptions per execution; negative means
	// unbounded.
	PreemptionBound int
	// MaxBranches caps the schedule length of one execution. Zero means
	// the engine default.
	MaxBranches int
	// MaxExecutions caps the number of executions. Zero means explore to
	// exhaustion.
	MaxExecutions int
	// Recorder, when set, receives every trace log.
	Recorder *Recorder
}

// Unbounded is the default exploration configuration.
func Unbounded() Config {
	return Config{PreemptionBound: dpor.NoPreemptionBound}
}

// Explore enumerates the meaningfully distinct interleavings of the
// scenario with the dpor engine, checking the invariant after every
// execution.
func Explore(s Scenario, cfg Config) (*Result, error) {
	if len(s.Threads) == 0 {
		return nil, errors.New("explore: scenario has no threads")
	}
	eng, err := dpor.New(dpor.Config{
		NumThreads:      len(s.Threads),
		PreemptionBound: cfg.PreemptionBound,
		MaxBranches:     cfg.MaxBranches,
		MaxExecutions:   cfg.MaxExecutions,
	})
	if err != nil {
		return nil, fmt.Errorf("explore: %w", err)
	}

	result := &Result{PropertyHolds: true}
	for {
		exec := eng.BeginExecution()
		r := launch(s)
		r.run(&dporScheduler{eng: eng, exec: exec, trace: r.trace})

		trace := r.trace
		trace.Execution = result.ExecutionsExplored
		trace.Deadlock = exec.Deadlocked()
		aborted, reason := exec.Aborted()
		trace.Aborted = aborted
		if aborted {
			trace.AbortReason = reason.String()
		}

		trace.InvariantHolds = true
		switch {
		case trace.Deadlock:
			trace.InvariantHolds = false
			result.Deadlocks++
		case aborted:
			// branch-limit abort: the final state is not meaningful
			result.Incomplete = true
		case s.Invariant != nil && trace.Err == "":
			trace.InvariantHolds = s.Invariant(r.state)
		}
		if !trace.InvariantHolds {
			result.PropertyHolds = false
			result.Failures = append(result.Failures, Failure{
				Execution: trace.Execution,
				Trace:     trace.Schedule,
				Deadlock:  trace.Deadlock,
			})
			if result.Counterexample == nil {
				result.Counterexample = trace.Schedule
			}
		}

		result.Traces = append(result.Traces, trace)
		if cfg.Recorder != nil {
			if err := cfg.Recorder.Record(trace); err != nil {
				return nil, fmt.Errorf("explore: recording trace: %w", err)
			}
		}
		result.ExecutionsExplored++

		if !eng.NextExecution() {
			break
		}
	}
	if cfg.MaxExecutions > 0 && result.ExecutionsExplored >= cfg.MaxExecutions {
		result.Incomplete = true
	}
	return result, nil
}
