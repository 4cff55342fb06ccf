package rules

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the immutable rule configuration. Loaded once at startup and never
// mutated afterwards; a malformed rule file is fatal at initialization.
type Config struct {
	Speculative SpeculativeRules `yaml:"speculative"`
	Sanity      SanityRules      `yaml:"sanity"`
	Paraphrase  ParaphraseRules  `yaml:"paraphrase"`

	hedgeSet    map[string]struct{}
	absoluteSet map[string]struct{}
}

// SpeculativeRules configures the hedge/absolute lexicon scorer
type SpeculativeRules struct {
	Hedges    []string       `yaml:"hedges"`
	Absolutes []string       `yaml:"absolutes"`
	Weights   LexiconWeights `yaml:"weights"`
}

// LexiconWeights weighs hedge hits against absolute hits
type LexiconWeights struct {
	Hedge    float64 `yaml:"hedge"`
	Absolute float64 `yaml:"absolute"`
}

// SanityRules configures the numeric/temporal plausibility checks
type SanityRules struct {
	Rules      RuleToggles      `yaml:"rules"`
	Thresholds UnitThresholds   `yaml:"thresholds"`
	Currencies []string         `yaml:"currencies"`
	Keywords   CurrencyKeywords `yaml:"currency_keywords"`
}

// RuleToggles enables/disables each sanity rule independently
type RuleToggles struct {
	PercentJump        ThresholdRule `yaml:"percent_jump"`
	CurrencyMismatch   Rule          `yaml:"currency_mismatch"`
	UnitAbsurdity      Rule          `yaml:"unit_absurdity"`
	FuturePastConflict Rule          `yaml:"future_past_conflict"`
}

// Rule is a bare on/off toggle
type Rule struct {
	Enabled bool `yaml:"enabled"`
}

// ThresholdRule is a toggle with a numeric threshold
type ThresholdRule struct {
	Enabled   bool    `yaml:"enabled"`
	Threshold float64 `yaml:"threshold"`
}

// UnitThresholds are the physical plausibility ceilings
type UnitThresholds struct {
	HumanHeightCm      float64 `yaml:"human_height_cm"`
	HumanWeightKg      float64 `yaml:"human_weight_kg"`
	TemperatureCelsius float64 `yaml:"temperature_celsius"`
}

// CurrencyKeywords are the context words that signal a currency is meant
type CurrencyKeywords struct {
	USD []string `yaml:"usd"`
	INR []string `yaml:"inr"`
}

// ParaphraseRules configures the synonym-substitution strategy
type ParaphraseRules struct {
	Synonyms SynonymTable `yaml:"synonyms"`
}

// Load reads and validates a rule file. An empty path yields the embedded
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	// Start from defaults so a partial rule file only overrides what it names
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	cfg.compile()
	return cfg, nil
}

// Validate checks the invariant that every weight and threshold is a finite
// non-negative number.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"speculative.weights.hedge", c.Speculative.Weights.Hedge},
		{"speculative.weights.absolute", c.Speculative.Weights.Absolute},
		{"sanity.rules.percent_jump.threshold", c.Sanity.Rules.PercentJump.Threshold},
		{"sanity.thresholds.human_height_cm", c.Sanity.Thresholds.HumanHeightCm},
		{"sanity.thresholds.human_weight_kg", c.Sanity.Thresholds.HumanWeightKg},
		{"sanity.thresholds.temperature_celsius", c.Sanity.Thresholds.TemperatureCelsius},
	}

	for _, chk := range checks {
		if math.IsNaN(chk.value) || math.IsInf(chk.value, 0) {
			return fmt.Errorf("%s: must be finite, got %v", chk.name, chk.value)
		}
		if chk.value < 0 {
			return fmt.Errorf("%s: must be non-negative, got %v", chk.name, chk.value)
		}
	}

	for _, entry := range c.Paraphrase.Synonyms {
		if entry.Word == "" {
			return fmt.Errorf("paraphrase.synonyms: empty key")
		}
		if len(entry.Alternatives) == 0 {
			return fmt.Errorf("paraphrase.synonyms.%s: needs at least one alternative", entry.Word)
		}
	}

	return nil
}

// compile builds the lexicon lookup sets
func (c *Config) compile() {
	c.hedgeSet = make(map[string]struct{}, len(c.Speculative.Hedges))
	for _, w := range c.Speculative.Hedges {
		c.hedgeSet[w] = struct{}{}
	}
	c.absoluteSet = make(map[string]struct{}, len(c.Speculative.Absolutes))
	for _, w := range c.Speculative.Absolutes {
		c.absoluteSet[w] = struct{}{}
	}
}

// IsHedge reports whether a lemma is in the hedge lexicon
func (c *Config) IsHedge(lemma string) bool {
	_, ok := c.hedgeSet[lemma]
	return ok
}

// IsAbsolute reports whether a lemma is in the absolute lexicon
func (c *Config) IsAbsolute(lemma string) bool {
	_, ok := c.absoluteSet[lemma]
	return ok
}
