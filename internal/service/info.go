package service

// ComponentInfo describes one of the five fused signals
type ComponentInfo struct {
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Method      string  `json:"method"`
}

// ComponentsInfo pairs the signal descriptions with the fusion formula
type ComponentsInfo struct {
	Components map[string]ComponentInfo `json:"components"`
	Formula    string                   `json:"formula"`
}

// Example is a canonical demo text with an expected risk profile
type Example struct {
	Name        string `json:"name"`
	Text        string `json:"text"`
	Description string `json:"description"`
}

// Components returns descriptions of the five signals with their current
// weights.
func (s *Service) Components() ComponentsInfo {
	w := s.engine.Weights()
	return ComponentsInfo{
		Components: map[string]ComponentInfo{
			"contradiction": {
				Description: "NLI-based contradiction detection against evidence",
				Weight:      w[0],
				Method:      "Provider NLI classification with evidence as premise",
			},
			"support": {
				Description: "Evidence support via entailment and semantic similarity",
				Weight:      w[1],
				Method:      "0.7*entailment + 0.3*embedding cosine similarity",
			},
			"instability": {
				Description: "Self-consistency over deterministic paraphrases",
				Weight:      w[2],
				Method:      "Risk variance over the original and 3 paraphrases",
			},
			"speculative": {
				Description: "Risky language detection",
				Weight:      w[3],
				Method:      "Lexicon-based hedge and absolute word counting",
			},
			"numeric_sanity": {
				Description: "Numeric and temporal sanity checks",
				Weight:      w[4],
				Method:      "Pattern extraction plus rule-based validation",
			},
		},
		Formula: "THI = w0*Contradiction + w1*(1-Support) + w2*Instability + w3*Speculative + w4*NumericSanity",
	}
}

// Examples returns demo texts spanning the three risk buckets
func (s *Service) Examples() []Example {
	return []Example{
		{
			Name:        "High Risk - Contradictory Claims",
			Text:        "Apple Inc. definitely reported earnings of $100 billion in Q1 2024, but the company actually lost money that quarter.",
			Description: "Contains contradictory statements about earnings",
		},
		{
			Name:        "Medium Risk - Speculative Language",
			Text:        "The stock might increase by 500% tomorrow, possibly reaching new highs.",
			Description: "Uses speculative language and unrealistic predictions",
		},
		{
			Name:        "Low Risk - Factual Statement",
			Text:        "Apple Inc. reported quarterly revenue of $119.6 billion in Q1 2024.",
			Description: "Specific, factual statement with concrete numbers",
		},
	}
}
