// Package engine fuses the five hallucination signals into per-claim and
// per-document verdicts.
package engine

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/ppiankov/halidex/internal/extract"
	"github.com/ppiankov/halidex/internal/nli"
	"github.com/ppiankov/halidex/internal/nlp"
	"github.com/ppiankov/halidex/internal/paraphrase"
	"github.com/ppiankov/halidex/internal/rules"
	"github.com/ppiankov/halidex/internal/sanity"
	"github.com/ppiankov/halidex/internal/speculative"
)

// DefaultWeights is the default fusion weight vector: contradiction,
// lack of support, instability, speculative language, numeric sanity.
var DefaultWeights = [5]float64{0.35, 0.30, 0.15, 0.10, 0.10}

var (
	ErrEmptyText        = errors.New("input text is empty")
	ErrInvalidThreshold = errors.New("threshold must be between 0.3 and 0.7")
	ErrInvalidWeights   = errors.New("weights must be five values in [0,1] with a positive sum")

	errNoClassifier = errors.New("no classifier configured")
	errNoEmbedder   = errors.New("no embedder configured")
)

// Options configures engine construction. Classifier and Embedder may be
// nil: affected signals then fall back to neutral defaults.
type Options struct {
	Classifier nli.Classifier
	Embedder   nli.Embedder
	Rules      *rules.Config
	Tagger     nlp.Tagger
	Segmenter  nlp.Segmenter
	Dates      nlp.DateParser

	// SentenceWorkers bounds concurrent sentence scoring per document.
	SentenceWorkers int
}

// Engine scores claims against evidence. Safe for concurrent use; the
// weight vector is replaced atomically so readers never see a torn update.
type Engine struct {
	classifier nli.Classifier
	embedder   nli.Embedder
	segmenter  nlp.Segmenter

	extractor   *extract.Extractor
	speculative *speculative.Scorer
	sanity      *sanity.Checker
	paraphraser *paraphrase.Generator

	weights atomic.Pointer[[5]float64]
	workers int
}

// New builds an engine from options, filling in rule defaults
func New(opts Options) *Engine {
	cfg := opts.Rules
	if cfg == nil {
		cfg = rules.Default()
	}
	dates := opts.Dates
	if dates == nil {
		dates = nlp.NewDateParser()
	}
	workers := opts.SentenceWorkers
	if workers <= 0 {
		workers = 4
	}

	e := &Engine{
		classifier:  opts.Classifier,
		embedder:    opts.Embedder,
		segmenter:   opts.Segmenter,
		extractor:   extract.New(opts.Tagger),
		speculative: speculative.New(cfg, opts.Tagger),
		sanity:      sanity.New(cfg, dates),
		paraphraser: paraphrase.New(cfg, opts.Tagger),
		workers:     workers,
	}
	w := DefaultWeights
	e.weights.Store(&w)
	return e
}

// Weights returns the current fusion weight vector
func (e *Engine) Weights() [5]float64 {
	return *e.weights.Load()
}

// UpdateWeights validates, normalizes, and atomically installs a new
// weight vector. Invalid input leaves the active vector untouched.
func (e *Engine) UpdateWeights(weights []float64) ([5]float64, error) {
	normalized, err := normalizeWeights(weights)
	if err != nil {
		return [5]float64{}, err
	}
	e.weights.Store(&normalized)
	return normalized, nil
}

func normalizeWeights(weights []float64) ([5]float64, error) {
	if len(weights) != 5 {
		return [5]float64{}, fmt.Errorf("%w: got %d values", ErrInvalidWeights, len(weights))
	}
	var sum float64
	for _, w := range weights {
		// NaN slips past both range comparisons
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return [5]float64{}, fmt.Errorf("%w: value %v is not finite", ErrInvalidWeights, w)
		}
		if w < 0 || w > 1 {
			return [5]float64{}, fmt.Errorf("%w: value %v out of range", ErrInvalidWeights, w)
		}
		sum += w
	}
	if sum <= 0 {
		return [5]float64{}, fmt.Errorf("%w: sum is zero", ErrInvalidWeights)
	}
	var out [5]float64
	for i, w := range weights {
		out[i] = w / sum
	}
	return out, nil
}
