package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .agentic.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to agentic! Let's configure your assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"anthropic", "openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	// 2. Quality tier.
	qualityPrompt := promptui.Select{
		Label: "Select quality tier",
		Items: []string{
			"lite   — fast & cheap (haiku / gpt-4o-mini)",
			"normal — balanced (sonnet / gpt-4o)",
			"max    — highest quality (opus / llama3:70b)",
		},
	}
	qualityIdx, _, err := qualityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("quality selection: %w", err)
	}
	tiers := []QualityTier{QualityLite, QualityNormal, QualityMax}
	cfg.Model = GetPreset(cfg.Provider, tiers[qualityIdx])

	// 3. Confidence threshold shared by all gates.
	thresholdPrompt := promptui.Prompt{
		Label:   "Confidence threshold (inclusive lower bound)",
		Default: "0.7",
		Validate: func(s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil || v < 0 || v > 1 {
				return fmt.Errorf("must be a number between 0 and 1")
			}
			return nil
		},
	}
	thresholdStr, err := thresholdPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("threshold: %w", err)
	}
	threshold, _ := strconv.ParseFloat(thresholdStr, 64)
	cfg.Thresholds = Thresholds{Gate: threshold, Route: threshold, Calendar: threshold}

	// 4. Knowledge database path.
	kbPrompt := promptui.Prompt{
		Label:   "Knowledge database path",
		Default: cfg.KnowledgePath,
	}
	kbPath, err := kbPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("knowledge path: %w", err)
	}
	cfg.KnowledgePath = kbPath

	// Check for API key.
	envVar := APIKeyEnvVar(cfg.Provider)
	if envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running agentic.\n", envVar)
		}
	}

	if err := cfg.Save(".agentic.yml"); err != nil {
		return nil, err
	}
	fmt.Println("\nConfiguration saved to .agentic.yml")

	return cfg, nil
}
