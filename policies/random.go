package policies

import (
	"golang.org/x/exp/rand"
)

// RandomPolicy schedules a uniformly random runnable thread at every step.
type RandomPolicy struct {
	seed uint64
	r    *rand.Rand
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{
		seed: seed,
		r:    rand.New(rand.NewSource(seed)),
	}
}

var _ Policy = &RandomPolicy{}

func (p *RandomPolicy) Name() string {
	return "random"
}

func (p *RandomPolicy) Next(step int, last int, runnable []int) (int, bool) {
	if len(runnable) == 0 {
		return -1, false
	}
	return runnable[p.r.Intn(len(runnable))], true
}

func (p *RandomPolicy) Reset() {
	p.r = rand.New(rand.NewSource(p.seed))
}
