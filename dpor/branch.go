package dpor

// ThreadStatus tags a thread at one specific branch of the exploration
// tree.
type ThreadStatus int

const (
	// StatusDisabled marks a thread that cannot run at this branch
	// (already finished).
	StatusDisabled ThreadStatus = iota
	// StatusPending marks a runnable thread that has not been explored
	// at this branch.
	StatusPending
	// StatusActive marks the thread chosen to run at this branch.
	StatusActive
	// StatusBacktrack marks a thread that conflict detection scheduled
	// for exploration at this branch in a later execution.
	StatusBacktrack
	// StatusVisited marks an alternative that has been fully explored.
	StatusVisited
	// StatusBlocked marks a thread waiting on a lock at this branch.
	StatusBlocked
	// StatusYielded marks a thread that gave up its turn voluntarily.
	StatusYielded
)

func (s ThreadStatus) String() string {
	switch s {
	case StatusDisabled:
		return "disabled"
	case StatusPending:
		return "pending"
	case StatusActive:
		return "active"
	case StatusBacktrack:
		return "backtrack"
	case StatusVisited:
		return "visited"
	case StatusBlocked:
		return "blocked"
	case StatusYielded:
		return "yielded"
	}
	return "unknown status"
}

// Branch is one scheduling decision in the exploration tree: the status of
// every thread at the decision point, the thread that was chosen, and the
// cumulative preemption count up to and including this branch.
type Branch struct {
	statuses     []ThreadStatus
	activeThread int
	preemptions  int
}

// ActiveThread returns the thread chosen at this branch.
func (b *Branch) ActiveThread() int {
	return b.activeThread
}

// Preemptions returns the cumulative preemption count.
func (b *Branch) Preemptions() int {
	return b.preemptions
}

// Status returns the recorded status of the given thread.
func (b *Branch) Status(tid int) ThreadStatus {
	return b.statuses[tid]
}

// couldRun reports whether the thread was schedulable at this branch in
// some execution: everything except disabled, blocked and yielded counts.
func (b *Branch) couldRun(tid int) bool {
	switch b.statuses[tid] {
	case StatusPending, StatusActive, StatusBacktrack, StatusVisited:
		return true
	}
	return false
}
