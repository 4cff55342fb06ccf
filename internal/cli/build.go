package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/halidex/internal/cache"
	"github.com/ppiankov/halidex/internal/engine"
	"github.com/ppiankov/halidex/internal/evidence"
	"github.com/ppiankov/halidex/internal/model"
	"github.com/ppiankov/halidex/internal/nli"
	"github.com/ppiankov/halidex/internal/nlp"
	"github.com/ppiankov/halidex/internal/rules"
	"github.com/ppiankov/halidex/internal/service"
)

// Flags shared by the analyze and batch commands
var (
	rulesPath      string
	providerName   string
	providerModel  string
	embeddingModel string
	providerURL    string
	noCache        bool

	evidenceText string
	evidenceFile string
	evidenceURL  string
)

// buildConfig assembles runtime configuration from defaults, the config
// file, and command flags. Flags win.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Rules = rulesPath

	if providerName != "" {
		cfg.Provider.Name = providerName
	}
	if providerModel != "" {
		cfg.Provider.Model = providerModel
	}
	if embeddingModel != "" {
		cfg.Provider.EmbeddingModel = embeddingModel
	}
	if providerURL != "" {
		cfg.Provider.BaseURL = providerURL
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if cfg.Cache.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			// No home, no disk cache
			cfg.Cache.Enabled = false
		} else {
			cfg.Cache.Dir = filepath.Join(home, ".halidex", "cache")
		}
	}

	switch cfg.Provider.Name {
	case "openai":
		if cfg.Provider.APIKey == "" {
			cfg.Provider.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "ollama":
		if cfg.Provider.BaseURL == "" {
			if base := os.Getenv("OLLAMA_BASE_URL"); base != "" {
				cfg.Provider.BaseURL = base
			}
		}
	}

	return cfg
}

// buildService wires rules, NLP, the provider stack, and the engine into
// a ready service.
func buildService(cfg *model.Config) (*service.Service, error) {
	ruleCfg, err := rules.Load(cfg.Rules)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	pipe, err := nlp.NewPipeline()
	if err != nil {
		return nil, fmt.Errorf("init nlp pipeline: %w", err)
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	opts := engine.Options{
		Rules:           ruleCfg,
		Tagger:          pipe,
		Segmenter:       pipe,
		SentenceWorkers: cfg.Concurrency.SentenceWorkers,
	}
	if provider != nil {
		opts.Classifier = provider
		opts.Embedder = provider
	}

	return service.New(engine.New(opts), cfg.Concurrency.BatchWorkers), nil
}

// buildProvider creates the NLI provider with rate limiting and caching
// layered on top. Cache sits outermost so hits never consume rate tokens.
func buildProvider(cfg *model.Config) (nli.Provider, error) {
	base, err := nli.NewProvider(nli.ConfigFromModel(cfg.Provider))
	if err != nil {
		return nil, fmt.Errorf("init provider: %w", err)
	}
	if base == nil {
		return nil, nil
	}

	if cfg.Provider.Name == "openai" && cfg.Provider.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	var provider nli.Provider = base
	if cfg.Provider.RequestsPerSec > 0 {
		provider = nli.WithRateLimit(provider, cfg.Provider.RequestsPerSec, cfg.Provider.Burst)
	}
	if cfg.Cache.Enabled {
		c := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		provider = nli.WithCache(provider, c, cfg.Cache.MemoryTTL)
	}
	return provider, nil
}

// resolveEvidence picks evidence from the inline, file, or URL flag.
// At most one may be set; none means the input text doubles as evidence.
func resolveEvidence(ctx context.Context, cfg *model.Config) (string, error) {
	set := 0
	for _, v := range []string{evidenceText, evidenceFile, evidenceURL} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	if set > 1 {
		return "", fmt.Errorf("use only one of --evidence, --evidence-file, --evidence-url")
	}

	switch {
	case evidenceText != "":
		return evidenceText, nil
	case evidenceFile != "":
		return evidence.ReadFile(evidenceFile)
	case evidenceURL != "":
		var c cache.Cache
		if cfg.Cache.Enabled {
			c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		}
		fetcher := evidence.NewFetcher(cfg.HTTP, c, cfg.Cache.DiskTTL)
		if verbose {
			fmt.Fprintf(os.Stderr, "Fetching evidence: %s\n", evidenceURL)
		}
		return fetcher.FetchURL(ctx, evidenceURL)
	default:
		return "", nil
	}
}
