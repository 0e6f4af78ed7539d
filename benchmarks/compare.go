package benchmarks

import (
	"path"

	"github.com/spf13/cobra"

	"github.com/interleave-dev/interleave/analysis"
	"github.com/interleave-dev/interleave/explore"
	"github.com/interleave-dev/interleave/policies"
)

// CompareCommand runs the systematic exploration against randomized
// baselines on the lost-update scenario and plots schedule coverage.
func CompareCommand() *cobra.Command {
	var runs int
	cmd := &cobra.Command{
		Use: "compare",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario := LostUpdateScenario()
			c := analysis.NewComparison(runs)
			c.AddAnalysis("coverage", analysis.NewScheduleCoverage(), analysis.CoveragePlotter(path.Join(savePath, "plots")))
			c.AddAnalysis("bug", analysis.NewBugEpisode(), analysis.NoopComparator())
			c.AddExperiment(&analysis.Experiment{
				Name: "dpor",
				Run: func() (*explore.Result, error) {
					cfg := exploreConfig(scenario.Name + "_dpor")
					if cfg.MaxExecutions == 0 {
						cfg.MaxExecutions = episodes
					}
					return explore.Explore(scenario, cfg)
				},
			})
			c.AddExperiment(&analysis.Experiment{
				Name: "random",
				Run: func() (*explore.Result, error) {
					return explore.Sample(scenario, explore.SampleConfig{
						Episodes: episodes,
						Policy:   policies.NewRandomPolicy(1),
					})
				},
			})
			c.AddExperiment(&analysis.Experiment{
				Name: "sticky",
				Run: func() (*explore.Result, error) {
					return explore.Sample(scenario, explore.SampleConfig{
						Episodes: episodes,
						Policy:   policies.NewStickyPolicy(0.8, 1),
					})
				},
			})
			return c.Run()
		},
	}
	cmd.Flags().IntVar(&runs, "runs", 1, "Number of comparison runs")
	return cmd
}
