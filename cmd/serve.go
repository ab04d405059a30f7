package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapulam/ScratchAgentic/internal/calendar"
	"github.com/zapulam/ScratchAgentic/internal/logger"
	"github.com/zapulam/ScratchAgentic/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts an HTTP server exposing the scheduling, validation and routing workflows under /api/v1.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	if allowAll, _ := cmd.Flags().GetBool("allow-all-origins"); allowAll {
		cfg.Server.AllowAllOrigins = true
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

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

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAllOrigins,
	}, log, scheduler, validator, requests)

	// Shut down cleanly on SIGINT/SIGTERM.
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sig:
		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
