package paraphrase

import (
	"math"
	"strings"
	"testing"

	"github.com/ppiankov/halidex/internal/nlp"
	"github.com/ppiankov/halidex/internal/rules"
)

// verbTagger tokenizes on spaces and tags a fixed verb list; everything
// else is a noun.
type verbTagger struct{}

var verbTags = map[string]string{
	"reported": "VBD",
	"jumped":   "VBD",
	"grew":     "VBD",
	"is":       "VBZ",
	"was":      "VBD",
}

var verbLemmas = map[string]string{
	"is":  "be",
	"was": "be",
}

func (verbTagger) Tag(sentence string) ([]nlp.Token, []nlp.Entity, error) {
	var tokens []nlp.Token
	for _, field := range strings.Fields(sentence) {
		word := strings.Trim(field, ".,!?")
		if word == "" {
			continue
		}
		lower := strings.ToLower(word)
		tag, ok := verbTags[lower]
		if !ok {
			tag = "NN"
		}
		lemma := lower
		if l, ok := verbLemmas[lower]; ok {
			lemma = l
		}
		tokens = append(tokens, nlp.Token{Text: word, Lemma: lemma, Tag: tag})
	}
	return tokens, nil, nil
}

func newGenerator() *Generator {
	return New(rules.Default(), verbTagger{})
}

func TestGenerateExactlyThree(t *testing.T) {
	g := newGenerator()
	out := g.Generate("The company reported strong revenue.")
	if len(out) != 3 {
		t.Fatalf("got %d paraphrases, want 3", len(out))
	}
	for i, p := range out {
		if strings.TrimSpace(p) == "" {
			t.Errorf("paraphrase %d is empty", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := newGenerator()
	sentence := "The company reported strong revenue growth yesterday."

	first := g.Generate(sentence)
	for i := 0; i < 5; i++ {
		again := g.Generate(sentence)
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d paraphrase %d = %q, first run said %q", i, j, again[j], first[j])
			}
		}
	}
}

func TestSynonymSubstitution(t *testing.T) {
	g := newGenerator()

	got := g.synonymSubstitution("The company reported strong revenue.")
	want := "The firm announced strong income."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSynonymSubstitutionNoMatch(t *testing.T) {
	g := newGenerator()

	got := g.synonymSubstitution("Nothing matches here.")
	if got != "Nothing matches here." {
		t.Errorf("got %q, want input unchanged apart from case", got)
	}
}

func TestHedgeInsertionBeforeVerb(t *testing.T) {
	g := newGenerator()

	got := g.hedgeInsertion("The company reported record gains.")
	want := "The company possibly reported record gains."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHedgeInsertionSkipsAuxiliaries(t *testing.T) {
	g := newGenerator()

	// "is" tags as a verb but lemmatizes to the auxiliary "be"
	got := g.hedgeInsertion("The outlook is stable.")
	if got != "Possibly The outlook is stable." {
		t.Errorf("got %q, want prepended form", got)
	}
}

func TestHedgeInsertionAlreadyHedged(t *testing.T) {
	g := newGenerator()

	sentence := "The market could possibly recover."
	if got := g.hedgeInsertion(sentence); got != sentence {
		t.Errorf("got %q, want unchanged", got)
	}
}

func TestHedgeInsertionNoVerb(t *testing.T) {
	g := newGenerator()

	got := g.hedgeInsertion("Quarterly results summary.")
	if got != "Possibly Quarterly results summary." {
		t.Errorf("got %q, want prepended form", got)
	}
}

func TestStructuralReorderTimeIndicator(t *testing.T) {
	g := newGenerator()

	got := g.structuralReorder("The market jumped yesterday.")
	if !strings.HasPrefix(got, "yesterday ") {
		t.Errorf("got %q, want time indicator moved to front", got)
	}
	if strings.Count(strings.ToLower(got), "yesterday") != 1 {
		t.Errorf("got %q, indicator duplicated", got)
	}
}

func TestStructuralReorderThePrefix(t *testing.T) {
	g := newGenerator()

	got := g.structuralReorder("The company expanded.")
	want := "It is reported that the company expanded."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStructuralReorderNoRule(t *testing.T) {
	g := newGenerator()

	sentence := "Profits doubled across regions."
	if got := g.structuralReorder(sentence); got != sentence {
		t.Errorf("got %q, want unchanged", got)
	}
}

func TestInstabilityIdenticalRisks(t *testing.T) {
	if got := Instability(1.0, []float64{1.0, 1.0, 1.0}); got != 0 {
		t.Errorf("Instability of identical risks = %v, want 0", got)
	}
}

func TestInstabilityDispersedRisks(t *testing.T) {
	// risks {0, 1, 1, 1}: population variance 0.1875, scaled 1.875, capped
	if got := Instability(0.0, []float64{1, 1, 1}); got != 1.0 {
		t.Errorf("Instability = %v, want capped 1.0", got)
	}

	// risks {0.5, 0.6}: variance 0.0025, scaled 0.025
	got := Instability(0.5, []float64{0.6})
	if math.Abs(got-0.025) > 1e-9 {
		t.Errorf("Instability = %v, want 0.025", got)
	}
}

func TestInstabilityTooFewValues(t *testing.T) {
	if got := Instability(0.8, nil); got != 0 {
		t.Errorf("Instability with one value = %v, want 0", got)
	}
}
