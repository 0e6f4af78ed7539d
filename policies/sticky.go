package policies

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// StickyPolicy keeps the previously running thread with probability p and
// otherwise switches uniformly, modeling a preemption-averse random walk.
type StickyPolicy struct {
	p    float64
	seed uint64
	r    *rand.Rand
}

func NewStickyPolicy(p float64, seed uint64) *StickyPolicy {
	return &StickyPolicy{
		p:    p,
		seed: seed,
		r:    rand.New(rand.NewSource(seed)),
	}
}

var _ Policy = &StickyPolicy{}

func (s *StickyPolicy) Name() string {
	return "sticky"
}

func (s *StickyPolicy) Next(step int, last int, runnable []int) (int, bool) {
	if len(runnable) == 0 {
		return -1, false
	}
	lastIndex := -1
	for i, tid := range runnable {
		if tid == last {
			lastIndex = i
			break
		}
	}
	if lastIndex < 0 {
		return runnable[s.r.Intn(len(runnable))], true
	}
	if len(runnable) == 1 {
		return runnable[0], true
	}

	weights := make([]float64, len(runnable))
	rest := (1 - s.p) / float64(len(runnable)-1)
	for i := range weights {
		if i == lastIndex {
			weights[i] = s.p
		} else {
			weights[i] = rest
		}
	}
	i, ok := sampleuv.NewWeighted(weights, s.r).Take()
	if !ok {
		return -1, false
	}
	return runnable[i], true
}

func (s *StickyPolicy) Reset() {
	s.r = rand.New(rand.NewSource(s.seed))
}
