package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/ppiankov/halidex/internal/model"
	"github.com/ppiankov/halidex/internal/nli"
	"github.com/ppiankov/halidex/internal/paraphrase"
)

// DocumentOptions are per-request scoring options. Zero values mean
// defaults: evidence falls back to the input text, threshold to 0.5, and
// weights to the engine's shared vector. Request weights never mutate
// shared state.
type DocumentOptions struct {
	Evidence  string
	Threshold float64
	Weights   []float64
}

// ScoreClaim scores one claim against evidence using the current shared
// weight vector.
func (e *Engine) ScoreClaim(ctx context.Context, claim, evidence string) model.ClaimResult {
	return e.scoreClaimWith(ctx, claim, evidence, e.Weights())
}

// ScoreDocument segments text into claims, scores each against the
// evidence, and fuses the results into a document verdict.
func (e *Engine) ScoreDocument(ctx context.Context, text string, opts DocumentOptions) (*model.DocumentResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	threshold := opts.Threshold
	if threshold == 0 {
		threshold = 0.5
	}
	if math.IsNaN(threshold) || threshold < 0.3 || threshold > 0.7 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, opts.Threshold)
	}

	weights := e.Weights()
	if opts.Weights != nil {
		normalized, err := normalizeWeights(opts.Weights)
		if err != nil {
			return nil, err
		}
		weights = normalized
	}

	evidence := opts.Evidence
	if strings.TrimSpace(evidence) == "" {
		evidence = text
	}

	sentences := e.segment(text)

	claims := make([]model.ClaimResult, len(sentences))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i, sentence := range sentences {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, claim string) {
			defer wg.Done()
			defer func() { <-sem }()
			claims[idx] = e.scoreClaimWith(ctx, claim, evidence, weights)
		}(i, sentence)
	}
	wg.Wait()

	var summary model.RiskSummary
	var total float64
	for _, c := range claims {
		total += c.THIScore
		switch {
		case c.THIScore > model.HighRiskThreshold:
			summary.HighRisk++
		case c.THIScore >= model.LowRiskThreshold:
			summary.MediumRisk++
		default:
			summary.LowRisk++
		}
	}

	overall := 0.0
	if len(claims) > 0 {
		overall = round4(total / float64(len(claims)))
	}

	return &model.DocumentResult{
		InputText:     text,
		Evidence:      evidence,
		TotalClaims:   len(claims),
		OverallTHI:    overall,
		BinaryLabel:   overall > threshold,
		ThresholdUsed: threshold,
		WeightsUsed:   weights[:],
		Claims:        claims,
		Summary:       summary,
	}, nil
}

func (e *Engine) scoreClaimWith(ctx context.Context, claim, evidence string, w [5]float64) model.ClaimResult {
	explanation := make(map[string]string)

	contradiction, entailment, nliErr := e.classifyPair(ctx, claim, evidence)
	if nliErr != nil {
		explanation["contradiction_error"] = nliErr.Error()
	}

	support, supportErr := e.supportScore(ctx, claim, evidence, entailment, nliErr)
	if supportErr != nil {
		explanation["lack_of_support_error"] = supportErr.Error()
	}

	originalRisk := contradiction + (1 - support)
	paraphrases := e.paraphraser.Generate(claim)
	risks := make([]float64, 0, len(paraphrases))
	for _, p := range paraphrases {
		risks = append(risks, e.riskScore(ctx, p, evidence))
	}
	instability := paraphrase.Instability(originalRisk, risks)

	specScore, counts, specErr := e.speculative.Score(claim)
	if specErr != nil {
		specScore = 0
		explanation["speculative_error"] = specErr.Error()
	}

	extracted := e.extractor.Extract(claim)
	sanityScore, flags := e.sanity.Check(extracted)

	thi := w[0]*contradiction +
		w[1]*(1-support) +
		w[2]*instability +
		w[3]*specScore +
		w[4]*sanityScore

	explanation["contradiction"] = fmt.Sprintf("P(contradiction) = %.3f", contradiction)
	explanation["lack_of_support"] = fmt.Sprintf("1 - P(entailment) = %.3f", 1-support)
	explanation["instability"] = fmt.Sprintf("Variance over paraphrases = %.3f", instability)
	explanation["speculative"] = fmt.Sprintf("Risky language density = %.3f", specScore)
	explanation["numeric_sanity"] = fmt.Sprintf("Fraction of flagged claims = %.3f", sanityScore)
	if len(flags) > 0 {
		explanation["numeric_flags"] = strings.Join(flags, ", ")
	}
	if specErr == nil && counts.Hedges+counts.Absolutes > 0 {
		if hedges, absolutes, err := e.speculative.MatchedWords(claim); err == nil {
			explanation["speculative_matches"] = matchedWordsLine(hedges, absolutes)
		}
	}

	return model.ClaimResult{
		Claim:    claim,
		Evidence: evidence,
		THIScore: round4(thi),
		Components: model.ScoreComponents{
			Contradiction: round4(contradiction),
			Support:       round4(support),
			Instability:   round4(instability),
			Speculative:   round4(specScore),
			NumericSanity: round4(sanityScore),
		},
		Weights:     w[:],
		Explanation: explanation,
	}
}

// classifyPair runs NLI with the evidence as premise and the claim as
// hypothesis. On failure contradiction defaults to the neutral 0.5.
// Entailment defaults to 0 when the label is absent.
func (e *Engine) classifyPair(ctx context.Context, claim, evidence string) (contradiction, entailment float64, err error) {
	if e.classifier == nil {
		return 0.5, 0, errNoClassifier
	}
	result, err := e.classifier.Classify(ctx, evidence, claim)
	if err != nil {
		return 0.5, 0, err
	}

	contradiction, found := result.Probability(nli.Contradiction)
	if !found {
		contradiction = result.Max()
	}
	entailment, _ = result.Probability(nli.Entailment)
	return clamp01(contradiction), clamp01(entailment), nil
}

// supportScore blends entailment probability with embedding similarity.
// Either capability failing yields the neutral 0.5.
func (e *Engine) supportScore(ctx context.Context, claim, evidence string, entailment float64, nliErr error) (float64, error) {
	if nliErr != nil {
		return 0.5, nliErr
	}
	if e.embedder == nil {
		return 0.5, errNoEmbedder
	}

	claimVec, err := e.embedder.Embed(ctx, claim)
	if err != nil {
		return 0.5, err
	}
	evidenceVec, err := e.embedder.Embed(ctx, evidence)
	if err != nil {
		return 0.5, err
	}

	similarity := math.Max(0, cosine(claimVec, evidenceVec))
	return math.Min(0.7*entailment+0.3*similarity, 1.0), nil
}

// riskScore computes the paraphrase risk scalar contradiction+(1-support).
// Both components fail soft, so risk is always defined.
func (e *Engine) riskScore(ctx context.Context, text, evidence string) float64 {
	contradiction, entailment, nliErr := e.classifyPair(ctx, text, evidence)
	support, _ := e.supportScore(ctx, text, evidence, entailment, nliErr)
	return contradiction + (1 - support)
}

// segment splits text into non-empty sentences, falling back to a
// punctuation split when no segmenter is available or it fails.
func (e *Engine) segment(text string) []string {
	if e.segmenter != nil {
		if sentences, err := e.segmenter.Segment(text); err == nil {
			return nonEmpty(sentences)
		}
	}
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	return nonEmpty(parts)
}

func nonEmpty(sentences []string) []string {
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// matchedWordsLine formats the hedge and absolute lemmas that fired
func matchedWordsLine(hedges, absolutes []string) string {
	var parts []string
	if len(hedges) > 0 {
		parts = append(parts, "hedges: "+strings.Join(hedges, ", "))
	}
	if len(absolutes) > 0 {
		parts = append(parts, "absolutes: "+strings.Join(absolutes, ", "))
	}
	return strings.Join(parts, "; ")
}

func cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
