// Command amadeus is a small demo CLI exercising the engine's terminal
// operations over an in-memory source, structured the way the teacher's
// cmd/cli package wraps its pipeline in cobra commands.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/amadeus-go/amadeus/telemetry"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "amadeus",
		Short: "Run the two-tier process x thread execution engine over an in-memory demo source.",
		Long: `amadeus demonstrates the distributed stream/pipe/sink execution engine
against a generated in-memory sequence. It has no connectors: every
subcommand generates the sequence [0, n) in memory and reduces it with
the requested terminal operation.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			telemetry.ConfigureConsole(level)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	root.PersistentFlags().IntVarP(&nFlag, "n", "n", 1_000_000, "size of the generated demo sequence")
	root.PersistentFlags().IntVarP(&processesFlag, "processes", "p", 4, "number of process-tier workers")
	root.PersistentFlags().IntVarP(&threadsFlag, "threads", "t", 4, "number of thread-tier workers per process")

	root.AddCommand(newSumCommand())
	root.AddCommand(newCountCommand())
	root.AddCommand(newCollectCommand())
	root.AddCommand(newForkCommand())

	return root
}

var (
	nFlag         int
	processesFlag int
	threadsFlag   int
)
