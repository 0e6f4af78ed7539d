package benchmarks

import (
	"github.com/spf13/cobra"
)

func LostUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use: "lost-update",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(LostUpdateScenario())
		},
	}
}

func DisjointCommand() *cobra.Command {
	return &cobra.Command{
		Use: "disjoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(DisjointScenario())
		},
	}
}

func LockedCounterCommand() *cobra.Command {
	return &cobra.Command{
		Use: "locked-counter",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(LockedCounterScenario())
		},
	}
}

func BoundedCommand() *cobra.Command {
	return &cobra.Command{
		Use: "bounded",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(BoundedScenario())
		},
	}
}

func DeadlockCommand() *cobra.Command {
	return &cobra.Command{
		Use: "deadlock",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(DeadlockScenario())
		},
	}
}

func ThreeReadersCommand() *cobra.Command {
	return &cobra.Command{
		Use: "three-readers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(ThreeReadersScenario())
		},
	}
}

func BankTransferCommand() *cobra.Command {
	return &cobra.Command{
		Use: "bank-transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(BankTransferScenario())
		},
	}
}
