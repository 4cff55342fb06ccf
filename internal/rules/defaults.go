package rules

// Default returns the embedded rule configuration. Callers get a fresh copy;
// the returned config is already compiled and valid.
func Default() *Config {
	cfg := &Config{
		Speculative: SpeculativeRules{
			Hedges: []string{
				"may", "might", "could", "possibly", "perhaps", "likely",
				"reportedly", "allegedly", "suggest", "appear", "seem",
				"estimate", "speculate", "potentially", "probably",
				"unclear", "uncertain", "rumor",
			},
			Absolutes: []string{
				"definitely", "certainly", "always", "never", "guarantee",
				"undoubtedly", "absolutely", "unquestionably", "doubt",
				"every", "all", "impossible", "completely", "totally",
				"obviously", "clearly",
			},
			Weights: LexiconWeights{Hedge: 1.0, Absolute: 1.0},
		},
		Sanity: SanityRules{
			Rules: RuleToggles{
				PercentJump:        ThresholdRule{Enabled: true, Threshold: 50},
				CurrencyMismatch:   Rule{Enabled: true},
				UnitAbsurdity:      Rule{Enabled: true},
				FuturePastConflict: Rule{Enabled: true},
			},
			Thresholds: UnitThresholds{
				HumanHeightCm:      272, // tallest recorded human
				HumanWeightKg:      635,
				TemperatureCelsius: 60,
			},
			Currencies: []string{"usd", "inr", "eur"},
			Keywords: CurrencyKeywords{
				USD: []string{"dollar", "usd", "american"},
				INR: []string{"rupee", "inr", "indian"},
			},
		},
		Paraphrase: ParaphraseRules{
			Synonyms: SynonymTable{
				{Word: "report", Alternatives: []string{"announce", "state"}},
				{Word: "increase", Alternatives: []string{"rise", "climb"}},
				{Word: "decrease", Alternatives: []string{"fall", "drop"}},
				{Word: "grow", Alternatives: []string{"expand"}},
				{Word: "company", Alternatives: []string{"firm", "corporation"}},
				{Word: "large", Alternatives: []string{"big", "substantial"}},
				{Word: "revenue", Alternatives: []string{"income"}},
				{Word: "profit", Alternatives: []string{"earnings"}},
			},
		},
	}

	cfg.compile()
	return cfg
}
