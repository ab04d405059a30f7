package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zapulam/ScratchAgentic/internal/calendar"
	mcpserver "github.com/zapulam/ScratchAgentic/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the scheduling, validation and routing tools to AI agents.`,
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	caller, err := newCaller(cfg)
	if err != nil {
		return err
	}

	scheduler := calendar.NewScheduler(caller, cfg.Thresholds.Gate)
	validator := calendar.NewValidator(caller, cfg.Thresholds.Calendar)
	requests, kb, err := newRequestRouter(cfg, caller)
	if err != nil {
		return err
	}
	if kb != nil {
		defer kb.Close()
	}

	// Stdout carries MCP protocol messages; everything else goes to stderr.
	mcpserver.Version = Version
	fmt.Fprintln(os.Stderr, "agentic MCP server started on stdio")

	srv := mcpserver.NewServer(scheduler, validator, requests)
	return srv.Serve()
}
