package benchmarks

import (
	"github.com/interleave-dev/interleave/explore"
)

// Shared object ids used by the scenarios. Lock ids live in their own
// space.
const (
	objCounter uint64 = 0
	objAccount uint64 = 0
	objSavings uint64 = 1
	lockMain   uint64 = 1
	lockA      uint64 = 1
	lockB      uint64 = 2
)

type counterState struct {
	value int
}

func counterIncrement(c *explore.Ctx, state any) {
	s := state.(*counterState)
	c.Read(objCounter)
	tmp := s.value
	c.Write(objCounter)
	s.value = tmp + 1
}

// LostUpdateScenario is the classic two-thread read-modify-write race.
func LostUpdateScenario() explore.Scenario {
	return explore.Scenario{
		Name:      "lost-update",
		Setup:     func() any { return &counterState{} },
		Threads:   []explore.ThreadFunc{counterIncrement, counterIncrement},
		Invariant: func(state any) bool { return state.(*counterState).value == 2 },
	}
}

type pairState struct {
	a, b int
}

// DisjointScenario has two threads touching different objects; a single
// execution covers it.
func DisjointScenario() explore.Scenario {
	return explore.Scenario{
		Name:  "disjoint",
		Setup: func() any { return &pairState{} },
		Threads: []explore.ThreadFunc{
			func(c *explore.Ctx, state any) {
				s := state.(*pairState)
				c.Write(0)
				s.a = 1
			},
			func(c *explore.Ctx, state any) {
				s := state.(*pairState)
				c.Write(1)
				s.b = 1
			},
		},
		Invariant: func(state any) bool {
			s := state.(*pairState)
			return s.a == 1 && s.b == 1
		},
	}
}

func lockedIncrement(c *explore.Ctx, state any) {
	s := state.(*counterState)
	c.Acquire(lockMain)
	c.Read(objCounter)
	tmp := s.value
	c.Write(objCounter)
	s.value = tmp + 1
	c.Release(lockMain)
}

// LockedCounterScenario protects the counter with a lock; only the two
// acquisition orders are explored and both keep the invariant.
func LockedCounterScenario() explore.Scenario {
	return explore.Scenario{
		Name:      "locked-counter",
		Setup:     func() any { return &counterState{} },
		Threads:   []explore.ThreadFunc{lockedIncrement, lockedIncrement},
		Invariant: func(state any) bool { return state.(*counterState).value == 2 },
	}
}

func tripleWrite(c *explore.Ctx, state any) {
	s := state.(*counterState)
	for i := 0; i < 3; i++ {
		c.Write(objCounter)
		s.value++
	}
}

// BoundedScenario is meant to run with --bound 0: each thread runs to
// completion before the other starts, two executions regardless of the
// conflict count.
func BoundedScenario() explore.Scenario {
	return explore.Scenario{
		Name:      "bounded",
		Setup:     func() any { return &counterState{} },
		Threads:   []explore.ThreadFunc{tripleWrite, tripleWrite},
		Invariant: func(state any) bool { return state.(*counterState).value == 6 },
	}
}

// DeadlockScenario takes two locks in opposite orders.
func DeadlockScenario() explore.Scenario {
	return explore.Scenario{
		Name:  "deadlock",
		Setup: func() any { return &counterState{} },
		Threads: []explore.ThreadFunc{
			func(c *explore.Ctx, state any) {
				c.Acquire(lockA)
				c.Acquire(lockB)
				c.Release(lockB)
				c.Release(lockA)
			},
			func(c *explore.Ctx, state any) {
				c.Acquire(lockB)
				c.Acquire(lockA)
				c.Release(lockA)
				c.Release(lockB)
			},
		},
	}
}

type readersState struct {
	value    int
	observed [2]int
}

// ThreeReadersScenario has two readers racing one writer; every order of
// each read against the write is explored.
func ThreeReadersScenario() explore.Scenario {
	return explore.Scenario{
		Name:  "three-readers",
		Setup: func() any { return &readersState{} },
		Threads: []explore.ThreadFunc{
			func(c *explore.Ctx, state any) {
				s := state.(*readersState)
				c.Read(objCounter)
				s.observed[0] = s.value
			},
			func(c *explore.Ctx, state any) {
				s := state.(*readersState)
				c.Read(objCounter)
				s.observed[1] = s.value
			},
			func(c *explore.Ctx, state any) {
				s := state.(*readersState)
				c.Write(objCounter)
				s.value = 1
			},
		},
	}
}

type bankState struct {
	a, b int
}

func bankTransfer(c *explore.Ctx, state any) {
	s := state.(*bankState)
	c.Read(objAccount)
	tmpA := s.a
	c.Read(objSavings)
	tmpB := s.b
	c.Write(objAccount)
	s.a = tmpA - 50
	c.Write(objSavings)
	s.b = tmpB + 50
}

// BankTransferScenario is the classic balance-preservation race: two
// concurrent transfers from the same account.
func BankTransferScenario() explore.Scenario {
	return explore.Scenario{
		Name:    "bank-transfer",
		Setup:   func() any { return &bankState{a: 100, b: 100} },
		Threads: []explore.ThreadFunc{bankTransfer, bankTransfer},
		Invariant: func(state any) bool {
			s := state.(*bankState)
			return s.a+s.b == 200
		},
	}
}
