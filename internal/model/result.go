package model

// ScoreComponents are the five independent signals, each in [0, 1]
type ScoreComponents struct {
	Contradiction float64 `json:"contradiction_score"`
	Support       float64 `json:"support_score"`
	Instability   float64 `json:"instability_score"`
	Speculative   float64 `json:"speculative_score"`
	NumericSanity float64 `json:"numeric_score"`
}

// ClaimResult is the full scoring breakdown for one sentence
type ClaimResult struct {
	Claim       string            `json:"claim"`
	Evidence    string            `json:"evidence"`
	THIScore    float64           `json:"thi_score"`
	Components  ScoreComponents   `json:"components"`
	Weights     []float64         `json:"weights"`
	Explanation map[string]string `json:"explanation"`
}

// Risk bucket boundaries. Every claim falls in exactly one bucket.
const (
	HighRiskThreshold = 0.7
	LowRiskThreshold  = 0.4
)

// RiskSummary partitions a document's claims by risk bucket
type RiskSummary struct {
	HighRisk   int `json:"high_risk_claims"`   // thi > 0.7
	MediumRisk int `json:"medium_risk_claims"` // 0.4 <= thi <= 0.7
	LowRisk    int `json:"low_risk_claims"`    // thi < 0.4
}

// Total returns the bucket sum, which always equals the claim count.
func (s RiskSummary) Total() int {
	return s.HighRisk + s.MediumRisk + s.LowRisk
}

// DocumentResult is the document-level verdict with per-claim breakdowns
type DocumentResult struct {
	InputText     string        `json:"input_text"`
	Evidence      string        `json:"evidence"`
	TotalClaims   int           `json:"total_claims"`
	OverallTHI    float64       `json:"overall_thi"`
	BinaryLabel   bool          `json:"binary_label"`
	ThresholdUsed float64       `json:"threshold_used"`
	WeightsUsed   []float64     `json:"weights_used"`
	Claims        []ClaimResult `json:"claims"`
	Summary       RiskSummary   `json:"summary"`
}
