// Package speculative scores hedge/absolute lexical density: how much of a
// sentence is uncertainty hedging ("might", "possibly") or unwarranted
// certainty ("definitely", "always").
package speculative

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"github.com/ppiankov/halidex/internal/nlp"
	"github.com/ppiankov/halidex/internal/rules"
)

// dampening normalizes the weighted hit count by sentence length
const dampening = 0.02

// Counts reports the lexicon hits behind a score
type Counts struct {
	Hedges    int `json:"hedges"`
	Absolutes int `json:"absolutes"`
	Tokens    int `json:"tokens"`
}

// Scorer computes speculative-language density using the rule lexicons and a
// delegated tokenizer/lemmatizer.
type Scorer struct {
	rules  *rules.Config
	tagger nlp.Tagger
}

// New creates a scorer
func New(cfg *rules.Config, tagger nlp.Tagger) *Scorer {
	return &Scorer{rules: cfg, tagger: tagger}
}

// Score computes the speculative score for a sentence. A sentence that is
// empty after punctuation filtering scores 0 with zero counts.
func (s *Scorer) Score(sentence string) (float64, Counts, error) {
	lemmas, err := s.lemmas(sentence)
	if err != nil {
		return 0, Counts{}, err
	}
	if len(lemmas) == 0 {
		return 0, Counts{}, nil
	}

	counts := Counts{Tokens: len(lemmas)}
	for _, lemma := range lemmas {
		// Set membership, but repeats count: each occurrence contributes.
		if s.rules.IsHedge(lemma) {
			counts.Hedges++
		}
		if s.rules.IsAbsolute(lemma) {
			counts.Absolutes++
		}
	}

	weights := s.rules.Speculative.Weights
	weightedSum := float64(counts.Hedges)*weights.Hedge + float64(counts.Absolutes)*weights.Absolute
	score := math.Min(weightedSum/(dampening*float64(counts.Tokens)), 1.0)

	return score, counts, nil
}

// MatchedWords returns the hedge and absolute lemmas actually present in the
// sentence, for explanation output.
func (s *Scorer) MatchedWords(sentence string) (hedges, absolutes []string, err error) {
	lemmas, err := s.lemmas(sentence)
	if err != nil {
		return nil, nil, err
	}
	for _, lemma := range lemmas {
		if s.rules.IsHedge(lemma) {
			hedges = append(hedges, lemma)
		}
		if s.rules.IsAbsolute(lemma) {
			absolutes = append(absolutes, lemma)
		}
	}
	return hedges, absolutes, nil
}

// lemmas tokenizes and lemmatizes, dropping punctuation/whitespace tokens
func (s *Scorer) lemmas(sentence string) ([]string, error) {
	if s.tagger == nil {
		return nil, errors.New("no tagger configured")
	}
	tokens, _, err := s.tagger.Tag(strings.ToLower(sentence))
	if err != nil {
		return nil, err
	}

	lemmas := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if isPunctOrSpace(tok.Text) {
			continue
		}
		lemmas = append(lemmas, tok.Lemma)
	}
	return lemmas, nil
}

func isPunctOrSpace(text string) bool {
	if text == "" {
		return true
	}
	for _, r := range text {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
