// Package service wraps the scoring engine in a request/response surface
// suitable for CLI and programmatic use. Analysis calls never propagate
// faults: failures come back as payloads with success=false.
package service

import (
	"context"
	"time"

	"github.com/ppiankov/halidex/internal/engine"
	"github.com/ppiankov/halidex/internal/model"
	"github.com/ppiankov/halidex/internal/worker"
)

// Service exposes analyze, batch, and weight operations over one engine.
type Service struct {
	engine       *engine.Engine
	batchWorkers int
	now          func() time.Time
}

// New creates a service around an engine
func New(eng *engine.Engine, batchWorkers int) *Service {
	if batchWorkers <= 0 {
		batchWorkers = 1
	}
	return &Service{engine: eng, batchWorkers: batchWorkers, now: time.Now}
}

// AnalyzeRequest carries one text to score with optional overrides
type AnalyzeRequest struct {
	Text      string    `json:"text"`
	Evidence  string    `json:"evidence,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Weights   []float64 `json:"weights,omitempty"`
}

// AnalyzeResponse is the full analysis payload. On failure Success is
// false, Error is set, and the document fields are omitted.
type AnalyzeResponse struct {
	Success   bool   `json:"success"`
	Timestamp string `json:"timestamp"`
	*model.DocumentResult
	ProcessingTimeMS float64 `json:"processing_time_ms"`
	Error            string  `json:"error,omitempty"`
}

// Analyze scores one text. Validation and scoring failures are reported
// in the payload, never as an error return.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) AnalyzeResponse {
	start := s.now()

	result, err := s.engine.ScoreDocument(ctx, req.Text, engine.DocumentOptions{
		Evidence:  req.Evidence,
		Threshold: req.Threshold,
		Weights:   req.Weights,
	})

	resp := AnalyzeResponse{
		Timestamp:        s.now().Format(time.RFC3339),
		ProcessingTimeMS: roundMS(s.now().Sub(start)),
	}
	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Success = true
	resp.DocumentResult = result
	return resp
}

// BatchItem is an abbreviated per-text result inside a batch response
type BatchItem struct {
	Text        string            `json:"text"`
	THIScore    float64           `json:"thi_score"`
	BinaryLabel bool              `json:"binary_label"`
	TotalClaims int               `json:"total_claims"`
	Summary     model.RiskSummary `json:"summary"`
	Error       string            `json:"error,omitempty"`
}

// BatchResponse wraps per-text results with batch metadata
type BatchResponse struct {
	Success          bool        `json:"success"`
	Timestamp        string      `json:"timestamp"`
	TotalTexts       int         `json:"total_texts"`
	Results          []BatchItem `json:"results"`
	ProcessingTimeMS float64     `json:"processing_time_ms"`
}

// BatchAnalyze scores each text independently. A failing text yields an
// error entry in its slot without aborting the rest; results keep input
// order.
func (s *Service) BatchAnalyze(ctx context.Context, texts []string, evidence string, threshold float64) BatchResponse {
	start := s.now()

	pool := worker.NewPool[BatchItem](s.batchWorkers)
	results := pool.Map(ctx, len(texts), func(ctx context.Context, idx int) BatchItem {
		text := texts[idx]
		result, err := s.engine.ScoreDocument(ctx, text, engine.DocumentOptions{
			Evidence:  evidence,
			Threshold: threshold,
		})
		if err != nil {
			return BatchItem{Text: text, Error: err.Error()}
		}
		return BatchItem{
			Text:        text,
			THIScore:    result.OverallTHI,
			BinaryLabel: result.BinaryLabel,
			TotalClaims: result.TotalClaims,
			Summary:     result.Summary,
		}
	})
	if results == nil {
		results = []BatchItem{}
	}

	return BatchResponse{
		Success:          true,
		Timestamp:        s.now().Format(time.RFC3339),
		TotalTexts:       len(texts),
		Results:          results,
		ProcessingTimeMS: roundMS(s.now().Sub(start)),
	}
}

// GetWeights returns the active fusion weight vector
func (s *Service) GetWeights() []float64 {
	w := s.engine.Weights()
	return w[:]
}

// SetWeights validates, normalizes, and installs a new weight vector,
// returning the normalized result. Invalid input leaves state untouched.
func (s *Service) SetWeights(weights []float64) ([]float64, error) {
	normalized, err := s.engine.UpdateWeights(weights)
	if err != nil {
		return nil, err
	}
	return normalized[:], nil
}

func roundMS(d time.Duration) float64 {
	ms := float64(d.Microseconds()) / 1000
	return float64(int64(ms*100)) / 100
}
