// Package extract pulls structured mentions (entities, numbers, percentages,
// money, dates) out of sentences. Pattern families run independently and
// matches are deliberately not deduplicated across families: a number pattern
// may re-match text already captured as money or percent, and downstream
// counts rely on that behavior.
package extract

import (
	"regexp"

	"github.com/ppiankov/halidex/internal/model"
	"github.com/ppiankov/halidex/internal/nlp"
)

var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+(?:\.\d+)?\b`),                // 1, 1.5, 123
	regexp.MustCompile(`\b\d{1,3}(?:,\d{3})*(?:\.\d+)?\b`), // 1,000; also re-matches short plain numbers, and counts rely on that
	regexp.MustCompile(`\b\d+(?:\.\d+)?[kKmMbB]\b`),        // 1K, 1.5M, 2b
}

var percentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+(?:\.\d+)?%`),                    // 25%, 25.5%
	regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*percent\b`),     // 25 percent
	regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*per\s*cent\b`),  // 25 per cent
}

var moneyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?\b`),              // $100, $1,000.50
	regexp.MustCompile(`(?i)\b[\d,]+(?:\.\d{2})?\s*dollars?\b`),
	regexp.MustCompile(`₹[\d,]+(?:\.\d{2})?\b`),               // ₹100
	regexp.MustCompile(`(?i)\b[\d,]+(?:\.\d{2})?\s*rupees?\b`),
	regexp.MustCompile(`€[\d,]+(?:\.\d{2})?\b`),               // €100
	regexp.MustCompile(`(?i)\b[\d,]+(?:\.\d{2})?\s*euros?\b`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`), // 01/02/2024, 1-2-24
	regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2},?\s+\d{4}\b`),
	regexp.MustCompile(`\b\d{4}\b`),             // bare year
	regexp.MustCompile(`(?i)\bq[1-4]\s+\d{4}\b`), // Q1 2024
	regexp.MustCompile(`(?i)\b(?:yesterday|today|tomorrow)\b`),
	regexp.MustCompile(`(?i)\b(?:last|next)\s+(?:week|month|year|quarter)\b`),
}

// entityLabels is the allowlist applied to the tagging capability's output
var entityLabels = map[string]struct{}{
	"PERSON":  {},
	"ORG":     {},
	"GPE":     {},
	"PRODUCT": {},
	"EVENT":   {},
}

// Extractor runs the pattern families and the delegated entity tagger over a
// sentence. There is no error path: a sentence with zero matches yields empty
// mention lists.
type Extractor struct {
	tagger nlp.Tagger
}

// New creates an extractor. The tagger may be nil, in which case entity
// extraction is skipped.
func New(tagger nlp.Tagger) *Extractor {
	return &Extractor{tagger: tagger}
}

// Extract pulls all mentions out of one sentence
func (e *Extractor) Extract(sentence string) model.ExtractedClaim {
	claim := model.ExtractedClaim{
		Text:     sentence,
		Numbers:  matchAll(numberPatterns, sentence, model.MentionNumber),
		Percents: matchAll(percentPatterns, sentence, model.MentionPercent),
		Money:    matchAll(moneyPatterns, sentence, model.MentionMoney),
		Dates:    matchAll(datePatterns, sentence, model.MentionDate),
	}

	if e.tagger != nil {
		// Tagger failures are swallowed: entities are one signal input among
		// many, and extraction must not fail the sentence.
		if _, entities, err := e.tagger.Tag(sentence); err == nil {
			for _, ent := range entities {
				if _, ok := entityLabels[ent.Label]; !ok {
					continue
				}
				claim.Entities = append(claim.Entities, model.Mention{
					Text:  ent.Text,
					Start: ent.Start,
					End:   ent.End,
					Kind:  model.MentionEntity,
					Label: ent.Label,
				})
			}
		}
	}

	return claim
}

func matchAll(patterns []*regexp.Regexp, sentence string, kind model.MentionKind) []model.Mention {
	var mentions []model.Mention
	for _, pattern := range patterns {
		for _, loc := range pattern.FindAllStringIndex(sentence, -1) {
			mentions = append(mentions, model.Mention{
				Text:  sentence[loc[0]:loc[1]],
				Start: loc[0],
				End:   loc[1],
				Kind:  kind,
			})
		}
	}
	return mentions
}
