// Package nli is the boundary to the natural-language-inference and embedding
// capabilities. Providers normalize their model's label vocabulary into the
// Label enumeration here; the engine never matches on raw label strings.
package nli

import (
	"context"
	"strings"

	"github.com/ppiankov/halidex/internal/model"
)

// Label is the normalized NLI relationship between premise and hypothesis
type Label int

const (
	Other Label = iota
	Contradiction
	Entailment
	Neutral
)

func (l Label) String() string {
	switch l {
	case Contradiction:
		return "contradiction"
	case Entailment:
		return "entailment"
	case Neutral:
		return "neutral"
	default:
		return "other"
	}
}

// NormalizeLabel maps a raw model label ("CONTRADICTION", "entails", ...) to
// the enumeration. This is the only place label text is inspected.
func NormalizeLabel(raw string) Label {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "contradict"):
		return Contradiction
	case strings.Contains(lower, "entail"):
		return Entailment
	case strings.Contains(lower, "neutral"):
		return Neutral
	default:
		return Other
	}
}

// LabelScore is one label-probability pair from the classifier
type LabelScore struct {
	Label Label   `json:"label"`
	Raw   string  `json:"raw"` // the provider's original label text
	Score float64 `json:"score"`
}

// Result is a full classification outcome
type Result struct {
	Scores []LabelScore `json:"scores"`
}

// Probability returns the score for the first occurrence of a label
func (r Result) Probability(label Label) (float64, bool) {
	for _, s := range r.Scores {
		if s.Label == label {
			return s.Score, true
		}
	}
	return 0, false
}

// Max returns the highest score across all labels, 0 if empty
func (r Result) Max() float64 {
	max := 0.0
	for _, s := range r.Scores {
		if s.Score > max {
			max = s.Score
		}
	}
	return max
}

// Classifier is the contradiction/entailment capability
type Classifier interface {
	Classify(ctx context.Context, premise, hypothesis string) (Result, error)
}

// Embedder is the sentence-embedding capability
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Provider bundles both capabilities behind one backend
type Provider interface {
	Classifier
	Embedder

	// Name returns the provider name
	Name() string

	// Models returns the classification and embedding model identifiers
	Models() (classify, embed string)

	// IsAvailable checks the backend is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model used for NLI classification
	Model string

	// EmbeddingModel used for sentence embeddings
	EmbeddingModel string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom/OpenAI-compatible endpoints
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for classification responses
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:       "",
		Model:          "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-small",
		Timeout:        30,
		MaxTokens:      256,
	}
}

// ConfigFromModel converts the app-level provider config
func ConfigFromModel(pc model.ProviderConfig) Config {
	cfg := DefaultConfig()
	cfg.Provider = pc.Name
	if pc.Model != "" {
		cfg.Model = pc.Model
	}
	if pc.EmbeddingModel != "" {
		cfg.EmbeddingModel = pc.EmbeddingModel
	}
	cfg.APIKey = pc.APIKey
	cfg.BaseURL = pc.BaseURL
	if pc.Timeout > 0 {
		cfg.Timeout = pc.Timeout
	}
	if pc.MaxTokens > 0 {
		cfg.MaxTokens = pc.MaxTokens
	}
	return cfg
}
