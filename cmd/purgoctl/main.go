package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/purgo-project/purgo-detector/cmd/purgoctl/commands"
	"github.com/purgo-project/purgo-detector/pkg/observability/logging"
)

var (
	// Version information (set by build flags)
	version   = "dev"
	gitCommit = "unknown"
)

func main() {
	if _, err := logging.InitLoggerFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:   "purgoctl",
		Short: "Purgo abuse-detection control CLI",
		Long: `purgoctl drives the offline side of the Purgo abuse detector.

Common workflows:
  purgoctl report -i dataset.csv -s http://localhost:8080   # Evaluate a dataset against a running detector
  purgoctl train -i labeled.csv -m ngram_model.json         # Train the offline n-gram model`,
		Version: fmt.Sprintf("%s (commit: %s)", version, gitCommit),
	}

	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table, json, yaml")

	rootCmd.AddCommand(commands.NewReportCmd())
	rootCmd.AddCommand(commands.NewTrainCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
