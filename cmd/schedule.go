package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zapulam/ScratchAgentic/internal/calendar"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule [request]",
	Short: "Turn a free-text request into a confirmed calendar event",
	Long: `Runs the gate-checked scheduling chain on the request: first a single
cheap call decides whether this is a calendar event at all; only when
that gate passes are the detail-extraction and confirmation calls made.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	caller, err := newCaller(cfg)
	if err != nil {
		return err
	}

	scheduler := calendar.NewScheduler(caller, cfg.Thresholds.Gate)
	outcome, err := scheduler.Schedule(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	printOutcome(outcome)
	printUsage(caller)
	return nil
}
