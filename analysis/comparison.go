package analysis

import (
	"fmt"

	"github.com/interleave-dev/interleave/explore"
)

// Experiment is one named exploration whose traces feed the analyzers.
type Experiment struct {
	Name string
	// Run performs the exploration and returns its result.
	Run func() (*explore.Result, error)
}

// Comparison runs a set of experiments, feeds every trace through the
// registered analyzers and hands the resulting datasets to the
// comparators.
type Comparison struct {
	Experiments []*Experiment
	analyzers   map[string]Analyzer
	comparators map[string]Comparator
	runs        int
}

func NewComparison(runs int) *Comparison {
	if runs < 1 {
		runs = 1
	}
	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyzers:   make(map[string]Analyzer),
		comparators: make(map[string]Comparator),
		runs:        runs,
	}
}

// AddAnalysis registers an analyzer and the comparator consuming its
// datasets.
func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyzers[name] = analyzer
	c.comparators[name] = comparator
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

// Run executes every experiment for the configured number of runs and
// invokes the comparators on the per-run datasets.
func (c *Comparison) Run() error {
	for run := 0; run < c.runs; run++ {
		fmt.Printf("Run %d\n", run+1)
		datasets := make(map[string][]DataSet)
		for name := range c.analyzers {
			datasets[name] = make([]DataSet, len(c.Experiments))
		}
		names := make([]string, len(c.Experiments))
		for i, e := range c.Experiments {
			result, err := e.Run()
			if err != nil {
				return fmt.Errorf("experiment %s: %w", e.Name, err)
			}
			for episode, trace := range result.Traces {
				for _, a := range c.analyzers {
					a.Analyze(run, episode, e.Name, trace)
				}
			}
			for name, a := range c.analyzers {
				datasets[name][i] = a.DataSet()
				a.Reset()
			}
			names[i] = e.Name
		}
		for name, comp := range c.comparators {
			comp(run, names, datasets[name])
		}
	}
	return nil
}
