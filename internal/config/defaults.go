package config

// qualityPresets maps each provider+quality combination to a model.
var qualityPresets = map[ProviderType]map[QualityTier]string{
	ProviderAnthropic: {
		QualityLite:   "claude-haiku-4-5-20251001",
		QualityNormal: "claude-sonnet-4-5-20250929",
		QualityMax:    "claude-opus-4-1-20250805",
	},
	ProviderOpenAI: {
		QualityLite:   "gpt-4o-mini",
		QualityNormal: "gpt-4o",
		QualityMax:    "gpt-4o",
	},
	ProviderOllama: {
		QualityLite:   "llama3",
		QualityNormal: "llama3",
		QualityMax:    "llama3:70b",
	},
}

// DefaultThreshold is the inclusive lower confidence bound applied to every
// gate when the config does not override it.
const DefaultThreshold = 0.7

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderAnthropic,
		Model:             "claude-sonnet-4-5-20250929",
		MaxTokens:         1024,
		Temperature:       0.1,
		RequestsPerMinute: 0,
		Thresholds: Thresholds{
			Gate:     DefaultThreshold,
			Route:    DefaultThreshold,
			Calendar: DefaultThreshold,
		},
		KnowledgePath: ".agentic/knowledge.db",
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// GetPreset returns the model for the given provider and quality tier.
// Returns the Normal Anthropic model if the combination is not found.
func GetPreset(provider ProviderType, tier QualityTier) string {
	if tiers, ok := qualityPresets[provider]; ok {
		if model, ok := tiers[tier]; ok {
			return model
		}
	}
	return qualityPresets[ProviderAnthropic][QualityNormal]
}
