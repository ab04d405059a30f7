package cmd

import (
	"fmt"
	"os"

	"github.com/zapulam/ScratchAgentic/internal/calendar"
	"github.com/zapulam/ScratchAgentic/internal/chain"
	"github.com/zapulam/ScratchAgentic/internal/config"
	"github.com/zapulam/ScratchAgentic/internal/knowledge"
	"github.com/zapulam/ScratchAgentic/internal/llm"
	"github.com/zapulam/ScratchAgentic/internal/router"
	"github.com/zapulam/ScratchAgentic/internal/structured"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `agentic init` to create a config file", err)
	}
	return cfg, nil
}

// newCaller builds the structured caller from config: provider, rate limit
// wrapper, then the contract-bound caller.
func newCaller(cfg *config.Config) (*structured.Caller, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	if cfg.RequestsPerMinute > 0 {
		provider = llm.NewRateLimitedProvider(provider, cfg.RequestsPerMinute)
	}

	return structured.NewCaller(provider, cfg.Model,
		structured.WithMaxTokens(cfg.MaxTokens),
		structured.WithTemperature(cfg.Temperature),
	), nil
}

// openKnowledge opens the knowledge store at the configured path, or
// returns nil when no path is configured or the file does not exist yet.
// Callers treat a nil store as "no policy corpus".
func openKnowledge(cfg *config.Config) (*knowledge.Store, error) {
	if cfg.KnowledgePath == "" {
		return nil, nil
	}
	if _, err := os.Stat(cfg.KnowledgePath); os.IsNotExist(err) {
		return nil, nil
	}
	return knowledge.Open(cfg.KnowledgePath)
}

// newRequestRouter builds the classification router with its handlers.
func newRequestRouter(cfg *config.Config, caller *structured.Caller) (*router.Router[calendar.Response], *knowledge.Store, error) {
	kb, err := openKnowledge(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening knowledge store: %w", err)
	}
	r, err := calendar.NewRouter(caller, kb, cfg.Thresholds.Route)
	if err != nil {
		if kb != nil {
			kb.Close()
		}
		return nil, nil, err
	}
	return r, kb, nil
}

// printOutcome renders a chain outcome for the terminal.
func printOutcome(outcome chain.Outcome[calendar.Response]) {
	if outcome.Rejected() {
		fmt.Printf("Rejected: %s\n", outcome.Reason())
		return
	}
	resp := outcome.Value()
	fmt.Println(resp.Message)
	if resp.CalendarLink != "" {
		fmt.Printf("Link: %s\n", resp.CalendarLink)
	}
}

// printUsage reports call and token counts plus the estimated API cost.
// Only shown with --verbose.
func printUsage(caller *structured.Caller) {
	if !verbose {
		return
	}
	u := caller.Usage()
	cost := llm.EstimateCost(caller.Model(), u.InputTokens, u.OutputTokens)
	fmt.Fprintf(os.Stderr, "\n%d LLM calls, %d input / %d output tokens, estimated cost $%.4f\n",
		u.Calls, u.InputTokens, u.OutputTokens, cost)
}
