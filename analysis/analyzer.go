// Package analysis compresses exploration traces into datasets and
// compares them across exploration strategies.
package analysis

import (
	"github.com/interleave-dev/interleave/explore"
)

// DataSet is the result of processing the traces of one run.
type DataSet interface{}

// Analyzer folds trace logs into a dataset.
type Analyzer interface {
	// Analyze consumes one trace: run, episode, experiment name, trace.
	Analyze(run, episode int, name string, trace *explore.TraceLog)
	// DataSet returns the accumulated dataset.
	DataSet() DataSet
	// Reset clears the analyzer for the next experiment.
	Reset()
}

// Comparator differentiates between the datasets of named experiments:
// run, experiment names, datasets.
type Comparator func(run int, names []string, datasets []DataSet)

func NoopComparator() Comparator {
	return func(int, []string, []DataSet) {}
}

// ScheduleCoverage counts distinct schedules seen so far, one cumulative
// entry per episode.
type ScheduleCoverage struct {
	seen   map[string]bool
	counts []int
}

func NewScheduleCoverage() *ScheduleCoverage {
	return &ScheduleCoverage{seen: make(map[string]bool)}
}

var _ Analyzer = &ScheduleCoverage{}

func (s *ScheduleCoverage) Analyze(run, episode int, name string, trace *explore.TraceLog) {
	s.seen[trace.Hash()] = true
	s.counts = append(s.counts, len(s.seen))
}

func (s *ScheduleCoverage) DataSet() DataSet {
	counts := make([]int, len(s.counts))
	copy(counts, s.counts)
	return counts
}

func (s *ScheduleCoverage) Reset() {
	s.seen = make(map[string]bool)
	s.counts = nil
}

// BugEpisode records the episode at which the invariant first failed, or
// -1 when it never did.
type BugEpisode struct {
	first int
}

func NewBugEpisode() *BugEpisode {
	return &BugEpisode{first: -1}
}

var _ Analyzer = &BugEpisode{}

func (b *BugEpisode) Analyze(run, episode int, name string, trace *explore.TraceLog) {
	if b.first < 0 && !trace.InvariantHolds {
		b.first = episode
	}
}

func (b *BugEpisode) DataSet() DataSet {
	return b.first
}

func (b *BugEpisode) Reset() {
	b.first = -1
}
