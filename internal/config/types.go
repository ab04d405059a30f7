package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderOllama    ProviderType = "ollama"
)

// QualityTier controls model selection and the trade-off between speed/cost
// and quality.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// Thresholds holds the confidence thresholds of the orchestration
// components. All of them are inclusive lower bounds.
type Thresholds struct {
	Gate     float64 `yaml:"gate" koanf:"gate"`
	Route    float64 `yaml:"route" koanf:"route"`
	Calendar float64 `yaml:"calendar" koanf:"calendar"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// Config is the top-level agentic configuration, corresponding to .agentic.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	MaxTokens         int          `yaml:"max_tokens" koanf:"max_tokens"`
	Temperature       float64      `yaml:"temperature" koanf:"temperature"`
	RequestsPerMinute int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	Thresholds        Thresholds   `yaml:"thresholds" koanf:"thresholds"`
	KnowledgePath     string       `yaml:"knowledge_path" koanf:"knowledge_path"`
	Server            ServerConfig `yaml:"server" koanf:"server"`
	Log               LogConfig    `yaml:"log" koanf:"log"`
}
