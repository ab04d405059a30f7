package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route [request]",
	Short: "Classify a calendar request and dispatch the matching handler",
	Long: `Classifies the request as new_event, modify_event or other with a single
call, then dispatches exactly one handler. Low-confidence classifications
and unsupported categories are rejected without any further calls.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	caller, err := newCaller(cfg)
	if err != nil {
		return err
	}

	requests, kb, err := newRequestRouter(cfg, caller)
	if err != nil {
		return err
	}
	if kb != nil {
		defer kb.Close()
	}

	outcome, err := requests.Route(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	printOutcome(outcome)
	printUsage(caller)
	return nil
}
