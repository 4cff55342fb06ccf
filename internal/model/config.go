package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	Rules       string            `yaml:"rules"` // rule file path ("" = embedded defaults)
	Provider    ProviderConfig    `yaml:"provider"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	HTTP        HTTPConfig        `yaml:"http"`
	Threshold   float64           `yaml:"threshold"` // default binary-label threshold
	Output      OutputConfig      `yaml:"output"`
}

// ProviderConfig selects and configures the inference capability provider
type ProviderConfig struct {
	Name           string  `yaml:"name"` // "openai", "ollama", "" (disabled)
	Model          string  `yaml:"model"`
	EmbeddingModel string  `yaml:"embedding_model"`
	APIKey         string  `yaml:"api_key,omitempty"`
	BaseURL        string  `yaml:"base_url,omitempty"`
	Timeout        int     `yaml:"timeout"` // seconds
	MaxTokens      int     `yaml:"max_tokens"`
	RequestsPerSec float64 `yaml:"requests_per_sec"` // 0 = unlimited
	Burst          int     `yaml:"burst"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	SentenceWorkers int `yaml:"sentence_workers"` // concurrent sentences per document
	BatchWorkers    int `yaml:"batch_workers"`    // concurrent texts per batch
}

// CacheConfig controls capability-response and evidence caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// HTTPConfig applies to outbound evidence fetches
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Rules: "",
		Provider: ProviderConfig{
			Name:           "",
			Model:          "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
			Timeout:        30,
			MaxTokens:      256,
			RequestsPerSec: 5,
			Burst:          5,
		},
		Concurrency: ConcurrencyConfig{
			SentenceWorkers: 4,
			BatchWorkers:    4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.halidex/cache by the CLI
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Halidex/0.1 (+https://github.com/ppiankov/halidex)",
			MaxBodyBytes: 2_000_000,
		},
		Threshold: 0.5,
		Output:    OutputConfig{},
	}
}
