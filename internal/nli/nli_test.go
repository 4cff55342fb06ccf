package nli

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ppiankov/halidex/internal/cache"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want Label
	}{
		{"contradiction", Contradiction},
		{"CONTRADICTION", Contradiction},
		{"contradicts", Contradiction},
		{"entailment", Entailment},
		{"Entails", Entailment},
		{"neutral", Neutral},
		{"NEUTRAL", Neutral},
		{"unknown_label", Other},
		{"", Other},
	}

	for _, tt := range tests {
		if got := NormalizeLabel(tt.raw); got != tt.want {
			t.Errorf("NormalizeLabel(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestResultProbability(t *testing.T) {
	r := Result{Scores: []LabelScore{
		{Label: Contradiction, Raw: "contradiction", Score: 0.7},
		{Label: Entailment, Raw: "entailment", Score: 0.2},
		{Label: Neutral, Raw: "neutral", Score: 0.1},
	}}

	if p, ok := r.Probability(Contradiction); !ok || p != 0.7 {
		t.Errorf("Probability(Contradiction) = %v, %v", p, ok)
	}
	if _, ok := r.Probability(Other); ok {
		t.Error("Probability(Other) should not be found")
	}
	if got := r.Max(); got != 0.7 {
		t.Errorf("Max = %v, want 0.7", got)
	}
}

func TestResultMaxEmpty(t *testing.T) {
	if got := (Result{}).Max(); got != 0 {
		t.Errorf("Max of empty result = %v, want 0", got)
	}
}

func TestParseLabelScores(t *testing.T) {
	result, err := parseLabelScores(`{"entailment": 0.1, "neutral": 0.2, "contradiction": 0.7}`)
	if err != nil {
		t.Fatalf("parseLabelScores: %v", err)
	}
	if len(result.Scores) != 3 {
		t.Fatalf("got %d scores, want 3", len(result.Scores))
	}
	if p, ok := result.Probability(Contradiction); !ok || math.Abs(p-0.7) > 1e-9 {
		t.Errorf("contradiction = %v, %v", p, ok)
	}
	// Keys come back sorted for determinism
	if result.Scores[0].Raw != "contradiction" {
		t.Errorf("first score raw = %q, want contradiction", result.Scores[0].Raw)
	}
}

func TestParseLabelScoresCodeFence(t *testing.T) {
	result, err := parseLabelScores("```json\n{\"entailment\": 0.9, \"contradiction\": 0.1}\n```")
	if err != nil {
		t.Fatalf("parseLabelScores: %v", err)
	}
	if p, ok := result.Probability(Entailment); !ok || p != 0.9 {
		t.Errorf("entailment = %v, %v", p, ok)
	}
}

func TestParseLabelScoresMalformed(t *testing.T) {
	for _, content := range []string{"", "not json", "{}", `["a"]`} {
		if _, err := parseLabelScores(content); err == nil {
			t.Errorf("parseLabelScores(%q) expected error", content)
		}
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{Provider: ""})
	if err != nil || p != nil {
		t.Errorf("empty provider: got %v, %v; want nil, nil", p, err)
	}

	if _, err := NewProvider(Config{Provider: "banana"}); err == nil {
		t.Error("unknown provider should error")
	}

	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("openai without API key should error")
	}
}

// countingProvider records calls for the wrapper tests
type countingProvider struct {
	classifyCalls int
	embedCalls    int
	fail          bool
	model         string
}

func (p *countingProvider) Name() string                         { return "counting" }
func (p *countingProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *countingProvider) Models() (string, string) {
	if p.model == "" {
		return "classify-model", "embed-model"
	}
	return p.model, p.model
}

func (p *countingProvider) Classify(ctx context.Context, premise, hypothesis string) (Result, error) {
	p.classifyCalls++
	if p.fail {
		return Result{}, errors.New("backend down")
	}
	return Result{Scores: []LabelScore{{Label: Contradiction, Raw: "contradiction", Score: 0.6}}}, nil
}

func (p *countingProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	p.embedCalls++
	if p.fail {
		return nil, errors.New("backend down")
	}
	return []float64{1, 0, float64(len(text))}, nil
}

func TestCachedProviderMemoizes(t *testing.T) {
	inner := &countingProvider{}
	cached := WithCache(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	ctx := context.Background()

	first, err := cached.Classify(ctx, "premise", "hypothesis")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	second, err := cached.Classify(ctx, "premise", "hypothesis")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if inner.classifyCalls != 1 {
		t.Errorf("classify calls = %d, want 1", inner.classifyCalls)
	}
	if p1, _ := first.Probability(Contradiction); p1 != 0.6 {
		t.Errorf("first contradiction = %v", p1)
	}
	if p2, _ := second.Probability(Contradiction); p2 != 0.6 {
		t.Errorf("cached contradiction = %v", p2)
	}

	// Different pair misses the cache
	if _, err := cached.Classify(ctx, "premise", "other"); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if inner.classifyCalls != 2 {
		t.Errorf("classify calls = %d, want 2", inner.classifyCalls)
	}
}

func TestCachedProviderEmbed(t *testing.T) {
	inner := &countingProvider{}
	cached := WithCache(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	ctx := context.Background()

	v1, err := cached.Embed(ctx, "some text")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	v2, err := cached.Embed(ctx, "some text")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.embedCalls != 1 {
		t.Errorf("embed calls = %d, want 1", inner.embedCalls)
	}
	if len(v1) != len(v2) || v1[2] != v2[2] {
		t.Errorf("cached vector differs: %v vs %v", v1, v2)
	}
}

func TestCachedProviderKeysByModel(t *testing.T) {
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	first := &countingProvider{model: "model-a"}
	if _, err := WithCache(first, store, time.Minute).Classify(ctx, "p", "h"); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if _, err := WithCache(first, store, time.Minute).Embed(ctx, "text"); err != nil {
		t.Fatalf("Embed: %v", err)
	}

	// Same store, same inputs, different model: both calls must reach the
	// backend instead of serving the other model's entries
	second := &countingProvider{model: "model-b"}
	if _, err := WithCache(second, store, time.Minute).Classify(ctx, "p", "h"); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if _, err := WithCache(second, store, time.Minute).Embed(ctx, "text"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if second.classifyCalls != 1 || second.embedCalls != 1 {
		t.Errorf("calls = %d/%d, want 1/1 (cross-model cache hit)", second.classifyCalls, second.embedCalls)
	}
}

func TestCachedProviderDoesNotCacheErrors(t *testing.T) {
	inner := &countingProvider{fail: true}
	cached := WithCache(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute)
	ctx := context.Background()

	if _, err := cached.Classify(ctx, "p", "h"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := cached.Classify(ctx, "p", "h"); err == nil {
		t.Fatal("expected error")
	}
	if inner.classifyCalls != 2 {
		t.Errorf("classify calls = %d, failures must not be cached", inner.classifyCalls)
	}
}

func TestLimitedProviderDelegates(t *testing.T) {
	inner := &countingProvider{}
	limited := WithRateLimit(inner, 1000, 10)
	ctx := context.Background()

	if _, err := limited.Classify(ctx, "p", "h"); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if _, err := limited.Embed(ctx, "text"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if limited.Name() != "counting" {
		t.Errorf("Name = %q", limited.Name())
	}
	if inner.classifyCalls != 1 || inner.embedCalls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", inner.classifyCalls, inner.embedCalls)
	}
}

func TestLimitedProviderCancelledContext(t *testing.T) {
	inner := &countingProvider{}
	limited := WithRateLimit(inner, 0.001, 1)
	ctx, cancel := context.WithCancel(context.Background())

	// Drain the single burst token, then cancel while waiting
	if _, err := limited.Classify(ctx, "p", "h"); err != nil {
		t.Fatalf("Classify: %v", err)
	}
	cancel()
	if _, err := limited.Classify(ctx, "p", "h"); err == nil {
		t.Error("expected error from cancelled context")
	}
}
