package explore

import (
	"errors"

	"github.com/interleave-dev/interleave/policies"
)

// SampleConfig controls randomized exploration.
type SampleConfig struct {
	// Episodes is the number of executions to sample.
	Episodes int
	// Policy picks threads; required.
	Policy policies.Policy
	// MaxSteps bounds one episode. Zero means 10000.
	MaxSteps int
	// Recorder, when set, receives every trace log.
	Recorder *Recorder
}

// Sample runs the scenario under a randomized scheduling policy for a
// fixed number of episodes. It finds bugs only by luck; it exists as the
// baseline the systematic exploration is compared against.
func Sample(s Scenario, cfg SampleConfig) (*Result, error) {
	if len(s.Threads) == 0 {
		return nil, errors.New("explore: scenario has no threads")
	}
	if cfg.Policy == nil {
		return nil, errors.New("explore: sampling needs a policy")
	}
	if cfg.Episodes <= 0 {
		return nil, errors.New("explore: sampling needs a positive episode count")
	}
	maxSteps := cfg.MaxSteps
	if maxSteps == 0 {
		maxSteps = 10_000
	}

	result := &Result{PropertyHolds: true}
	for episode := 0; episode < cfg.Episodes; episode++ {
		r := launch(s)
		sched := &sampledScheduler{
			policy:   cfg.Policy,
			last:     -1,
			maxSteps: maxSteps,
			finished: make([]bool, len(s.Threads)),
			blocked:  make([]bool, len(s.Threads)),
		}
		r.run(sched)

		trace := r.trace
		trace.Execution = episode
		trace.Deadlock = sched.deadlocked
		trace.InvariantHolds = true
		if trace.Deadlock {
			trace.InvariantHolds = false
			result.Deadlocks++
		} else if s.Invariant != nil && trace.Err == "" {
			trace.InvariantHolds = s.Invariant(r.state)
		}
		if !trace.InvariantHolds {
			result.PropertyHolds = false
			result.Failures = append(result.Failures, Failure{
				Execution: episode,
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
				return nil, err
			}
		}
		result.ExecutionsExplored++
	}
	return result, nil
}

// sampledScheduler picks threads with a randomized policy and keeps its
// own view of thread runnability.
type sampledScheduler struct {
	policy     policies.Policy
	step       int
	last       int
	maxSteps   int
	finished   []bool
	blocked    []bool
	deadlocked bool
}

func (s *sampledScheduler) next() (int, bool) {
	if s.step >= s.maxSteps {
		return -1, false
	}
	runnable := make([]int, 0, len(s.finished))
	allFinished := true
	for tid := range s.finished {
		if !s.finished[tid] {
			allFinished = false
			if !s.blocked[tid] {
				runnable = append(runnable, tid)
			}
		}
	}
	if len(runnable) == 0 {
		s.deadlocked = !allFinished
		return -1, false
	}
	tid, ok := s.policy.Next(s.step, s.last, runnable)
	if !ok {
		return -1, false
	}
	s.step++
	s.last = tid
	return tid, true
}

func (s *sampledScheduler) setBlocked(tid int, blocked bool) {
	s.blocked[tid] = blocked
}

func (s *sampledScheduler) finish(tid int) {
	s.finished[tid] = true
}

func (s *sampledScheduler) reportOp(tid int, o op) {}
