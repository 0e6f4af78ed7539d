// Package benchmarks wires the concrete exploration scenarios into the
// command line.
package benchmarks

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/interleave-dev/interleave/dpor"
	"github.com/interleave-dev/interleave/explore"
)

var (
	executions  int
	bound       int
	maxBranches int
	episodes    int
	savePath    string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "interleave",
		Short: "Systematic concurrency-testing scenarios",
	}
	rootCommand.PersistentFlags().IntVarP(&executions, "executions", "e", 0, "Cap on executions explored (0 = exhaustive)")
	rootCommand.PersistentFlags().IntVarP(&bound, "bound", "b", dpor.NoPreemptionBound, "Preemption bound (negative = unbounded)")
	rootCommand.PersistentFlags().IntVar(&maxBranches, "max-branches", 0, "Cap on schedule length per execution")
	rootCommand.PersistentFlags().IntVar(&episodes, "episodes", 1000, "Episodes for randomized baselines")
	rootCommand.PersistentFlags().StringVarP(&savePath, "save", "s", "results", "Folder for traces and plots")
	rootCommand.AddCommand(LostUpdateCommand())
	rootCommand.AddCommand(DisjointCommand())
	rootCommand.AddCommand(LockedCounterCommand())
	rootCommand.AddCommand(BoundedCommand())
	rootCommand.AddCommand(DeadlockCommand())
	rootCommand.AddCommand(ThreeReadersCommand())
	rootCommand.AddCommand(BankTransferCommand())
	rootCommand.AddCommand(CompareCommand())
	rootCommand.AddCommand(RedisIncrCommand())
	rootCommand.AddCommand(ExploreTracesCommand())
	return rootCommand
}

func exploreConfig(name string) explore.Config {
	return explore.Config{
		PreemptionBound: bound,
		MaxBranches:     maxBranches,
		MaxExecutions:   executions,
		Recorder:        explore.NewRecorder(path.Join(savePath, "traces", name+".jsonl")),
	}
}

// runScenario explores the scenario and prints the outcome.
func runScenario(s explore.Scenario) error {
	result, err := explore.Explore(s, exploreConfig(s.Name))
	if err != nil {
		return err
	}
	printResult(s.Name, result)
	return nil
}

func printResult(name string, result *explore.Result) {
	fmt.Printf("Scenario: %s\n", name)
	fmt.Printf("Executions explored: %d\n", result.ExecutionsExplored)
	fmt.Printf("Property holds: %v\n", result.PropertyHolds)
	if result.Deadlocks > 0 {
		fmt.Printf("Deadlocks: %d\n", result.Deadlocks)
	}
	if result.Counterexample != nil {
		fmt.Printf("Counterexample schedule: %v\n", result.Counterexample)
	}
	if result.Incomplete {
		fmt.Println("Exploration stopped at a limit; coverage is incomplete")
	}
}
