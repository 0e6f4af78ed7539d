package benchmarks

import (
	"github.com/spf13/cobra"

	"github.com/interleave-dev/interleave/explorer"
)

// ExploreTracesCommand browses a recorded trace file, interactively or
// over HTTP.
func ExploreTracesCommand() *cobra.Command {
	var tracesFile string
	var serveAddr string
	cmd := &cobra.Command{
		Use: "explore-traces",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := explorer.NewExplorer(tracesFile)
			if err != nil {
				return err
			}
			if serveAddr != "" {
				return e.Serve(serveAddr)
			}
			e.Interact()
			return nil
		},
	}
	cmd.Flags().StringVarP(&tracesFile, "traces", "t", "", "Path to a JSONL trace file")
	cmd.Flags().StringVar(&serveAddr, "serve", "", "Serve traces over HTTP on this address instead of the terminal UI")
	cmd.MarkFlagRequired("traces")
	return cmd
}
