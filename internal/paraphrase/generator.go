// Package paraphrase produces deterministic rewrites of a sentence and the
// variance-based instability metric over their risk scores. Determinism is
// structural: no randomness anywhere.
package paraphrase

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/halidex/internal/nlp"
	"github.com/ppiankov/halidex/internal/rules"
)

// instabilityScale maps risk-score variance onto [0, 1]
const instabilityScale = 10.0

// hedge is the literal inserted by the hedge-insertion strategy
const hedge = "possibly"

// timeIndicators are the expressions the structural-reorder strategy moves to
// the sentence start
var timeIndicators = []string{
	"yesterday", "today", "tomorrow", "last week", "next month", "in 2024",
}

// inflectionRepairs patches malformed forms produced by naive synonym
// substitution
var inflectionRepairs = [][2]string{
	{"announceed", "announced"},
	{"rised", "rose"},
	{"growed", "grew"},
	{"falled", "fell"},
}

// auxiliaryLemmas excludes auxiliary verbs from hedge insertion
var auxiliaryLemmas = map[string]struct{}{
	"be": {}, "have": {}, "do": {},
	"will": {}, "shall": {}, "can": {}, "may": {}, "must": {}, "would": {},
}

// Generator produces exactly three deterministic rewrites per sentence
type Generator struct {
	rules  *rules.Config
	tagger nlp.Tagger
}

// New creates a generator
func New(cfg *rules.Config, tagger nlp.Tagger) *Generator {
	return &Generator{rules: cfg, tagger: tagger}
}

// Generate returns exactly three rewrites, one per strategy. A strategy whose
// rules do not apply returns the sentence unchanged, never an empty string.
func (g *Generator) Generate(sentence string) []string {
	return []string{
		g.synonymSubstitution(sentence),
		g.hedgeInsertion(sentence),
		g.structuralReorder(sentence),
	}
}

// synonymSubstitution lower-cases the sentence, applies the synonym table in
// document order (every occurrence, first alternative), re-capitalizes, and
// repairs known malformed inflections.
func (g *Generator) synonymSubstitution(sentence string) string {
	result := strings.ToLower(sentence)

	for _, entry := range g.rules.Paraphrase.Synonyms {
		if strings.Contains(result, entry.Word) {
			result = strings.ReplaceAll(result, entry.Word, entry.Alternatives[0])
		}
	}

	result = capitalizeFirst(result)
	for _, repair := range inflectionRepairs {
		result = strings.ReplaceAll(result, repair[0], repair[1])
	}
	return result
}

// hedgeInsertion inserts "possibly" before the first non-auxiliary verb. If
// the sentence already hedges, it is returned unchanged; with no eligible
// verb, "Possibly " is prepended.
func (g *Generator) hedgeInsertion(sentence string) string {
	if strings.Contains(strings.ToLower(sentence), hedge) {
		return sentence
	}
	if g.tagger == nil {
		return "Possibly " + sentence
	}

	tokens, _, err := g.tagger.Tag(sentence)
	if err != nil {
		return "Possibly " + sentence
	}

	for _, tok := range tokens {
		if !nlp.IsVerbTag(tok.Tag) {
			continue
		}
		if _, aux := auxiliaryLemmas[tok.Lemma]; aux {
			continue
		}
		return strings.Replace(sentence, tok.Text, hedge+" "+tok.Text, 1)
	}

	return "Possibly " + sentence
}

// structuralReorder moves the first matched time expression to the front; if
// none applies and the sentence starts with "The ", rewrites it as a report;
// otherwise returns the sentence unchanged.
func (g *Generator) structuralReorder(sentence string) string {
	lower := strings.ToLower(sentence)

	for _, indicator := range timeIndicators {
		idx := strings.Index(lower, indicator)
		if idx < 0 {
			continue
		}
		if idx == 0 {
			continue // already at the start
		}
		matched := sentence[idx : idx+len(indicator)]
		rest := strings.TrimSpace(sentence[:idx] + sentence[idx+len(indicator):])
		return matched + " " + rest
	}

	if strings.HasPrefix(sentence, "The ") {
		return strings.Replace(sentence, "The ", "It is reported that the ", 1)
	}

	return sentence
}

// Instability measures the dispersion of risk scores across the original
// sentence and its paraphrases: min(variance * 10, 1). Fewer than two risk
// values yields 0.
func Instability(originalRisk float64, paraphraseRisks []float64) float64 {
	scores := make([]float64, 0, 1+len(paraphraseRisks))
	scores = append(scores, originalRisk)
	scores = append(scores, paraphraseRisks...)
	if len(scores) < 2 {
		return 0
	}
	return math.Min(variance(scores)*instabilityScale, 1.0)
}

// variance is the population variance
func variance(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
