package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "agentic",
	Short: "LLM-powered calendar assistant with gated, validated, routed workflows",
	Long: `Agentic turns free-text requests into structured calendar actions.
Every LLM response is bound to a JSON contract, every workflow is
gate-checked so doomed requests stop after a single cheap call, and
independent safety checks run concurrently before anything is booked.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".agentic.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
