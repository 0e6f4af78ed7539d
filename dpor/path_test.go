package dpor

import "testing"

// buildPath runs one serial execution of n threads with the given number
// of steps each, returning the engine and the final execution.
func buildPath(t *testing.T, steps []int) (*Engine, *Execution) {
	t.Helper()
	eng, err := New(DefaultConfig(len(steps)))
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	exec := eng.BeginExecution()
	remaining := make([]int, len(steps))
	copy(remaining, steps)
	for {
		tid, ok := eng.Schedule(exec)
		if !ok {
			break
		}
		remaining[tid]--
		if remaining[tid] == 0 {
			exec.FinishThread(tid)
		}
	}
	return eng, exec
}

func TestPathRecordsSerialSchedule(t *testing.T) {
	eng, exec := buildPath(t, []int{2, 1})
	if got := exec.ScheduleTrace(); traceKey(got) != traceKey([]int{0, 0, 1}) {
		t.Errorf("schedule trace %v, want [0 0 1]", got)
	}
	if eng.path.Length() != 3 {
		t.Errorf("path length %d, want 3", eng.path.Length())
	}
	for i := 0; i < eng.path.Length(); i++ {
		if got := eng.path.Branch(i).Preemptions(); got != 0 {
			t.Errorf("serial branch %d has %d preemptions", i, got)
		}
	}
}

func TestAddBacktrackPromotesPending(t *testing.T) {
	eng, _ := buildPath(t, []int{1, 1})
	eng.path.addBacktrack(0, 1, NoPreemptionBound)
	if got := eng.path.Branch(0).Status(1); got != StatusBacktrack {
		t.Errorf("thread 1 at branch 0 has status %v, want backtrack", got)
	}
}

func TestAddBacktrackIgnoresNonPending(t *testing.T) {
	eng, _ := buildPath(t, []int{1, 1})
	// thread 0 is the active thread of branch 0
	eng.path.addBacktrack(0, 0, NoPreemptionBound)
	if got := eng.path.Branch(0).Status(0); got != StatusActive {
		t.Errorf("active thread was overwritten to %v", got)
	}
}

func TestAdvancePromotesLowestBacktrack(t *testing.T) {
	eng, _ := buildPath(t, []int{1, 1, 1})
	eng.path.addBacktrack(0, 2, NoPreemptionBound)
	eng.path.addBacktrack(0, 1, NoPreemptionBound)

	if !eng.path.advance() {
		t.Fatalf("advance found no alternative")
	}
	if eng.path.Length() != 1 {
		t.Errorf("path truncated to %d branches, want 1", eng.path.Length())
	}
	b := eng.path.Branch(0)
	if b.ActiveThread() != 1 {
		t.Errorf("promoted thread %d, want the lowest-indexed backtrack (1)", b.ActiveThread())
	}
	if b.Status(0) != StatusVisited {
		t.Errorf("previous active thread not marked visited: %v", b.Status(0))
	}
	if b.Status(2) != StatusBacktrack {
		t.Errorf("remaining backtrack lost: %v", b.Status(2))
	}
}

func TestAdvanceExhaustsTree(t *testing.T) {
	eng, _ := buildPath(t, []int{1, 1})
	if eng.path.advance() {
		t.Errorf("a tree without backtracks should be exhausted")
	}
	if eng.path.Length() != 0 {
		t.Errorf("exhausted path still has %d branches", eng.path.Length())
	}
}

func TestConservativeBacktrackFallsBackToEarliestBranch(t *testing.T) {
	cfg := DefaultConfig(2)
	cfg.PreemptionBound = 0
	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	exec := eng.BeginExecution()
	// serial run: thread 0 takes three steps, then thread 1 one step
	for i := 0; i < 3; i++ {
		eng.Schedule(exec)
	}
	exec.FinishThread(0)
	eng.Schedule(exec)
	exec.FinishThread(1)

	// promoting thread 1 at branch 2 would preempt thread 0; the request
	// must fall back to branch 0 where thread 1 can start first
	eng.path.addBacktrack(2, 1, 0)
	if got := eng.path.Branch(2).Status(1); got == StatusBacktrack {
		t.Errorf("branch 2 accepted a bound-violating backtrack")
	}
	if got := eng.path.Branch(0).Status(1); got != StatusBacktrack {
		t.Errorf("conservative fallback missed branch 0: %v", got)
	}
}

func TestConservativeBacktrackDropsInfeasibleRequest(t *testing.T) {
	cfg := DefaultConfig(2)
	cfg.PreemptionBound = 0
	eng, _ := New(cfg)
	exec := eng.BeginExecution()
	for i := 0; i < 2; i++ {
		eng.Schedule(exec)
	}
	exec.FinishThread(0)
	eng.Schedule(exec)
	exec.FinishThread(1)

	// consume the only feasible earlier branch, then request again
	eng.path.Branch(0).statuses[1] = StatusVisited
	eng.path.addBacktrack(1, 1, 0)
	for i := 0; i < eng.path.Length(); i++ {
		if eng.path.Branch(i).Status(1) == StatusBacktrack {
			t.Errorf("infeasible request was recorded at branch %d", i)
		}
	}
}

func TestAdvanceRecomputesPreemptions(t *testing.T) {
	eng, _ := buildPath(t, []int{2, 1})
	// thread 1 explored at branch 1 preempts thread 0
	eng.path.addBacktrack(1, 1, NoPreemptionBound)
	if !eng.path.advance() {
		t.Fatalf("advance found no alternative")
	}
	b := eng.path.Branch(1)
	if b.ActiveThread() != 1 {
		t.Fatalf("promoted thread %d, want 1", b.ActiveThread())
	}
	if b.Preemptions() != 1 {
		t.Errorf("promoted branch carries %d preemptions, want 1", b.Preemptions())
	}
}
