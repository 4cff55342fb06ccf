package nli

import (
	"fmt"
	"strings"
)

// NewProvider creates a provider from configuration. An empty provider name
// returns (nil, nil): the engine then runs with neutral-default signals, which
// is useful for rule-only analysis and for tests.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: openai, ollama)", config.Provider)
	}
}
