package nlp

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	prose "github.com/jdkato/prose/v2"
)

// Pipeline is the default Tagger/Segmenter built on prose (segmentation, POS
// tagging, NER) and golem (lemmatization).
type Pipeline struct {
	lemmatizer *golem.Lemmatizer
}

// NewPipeline builds the default NLP pipeline
func NewPipeline() (*Pipeline, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load lemmatizer: %w", err)
	}
	return &Pipeline{lemmatizer: lem}, nil
}

// Segment splits text into trimmed non-empty sentences
func (p *Pipeline) Segment(text string) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}

	var sentences []string
	for _, sent := range doc.Sentences() {
		if s := strings.TrimSpace(sent.Text); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences, nil
}

// Tag returns the sentence's tagged tokens and named-entity spans
func (p *Pipeline) Tag(sentence string) ([]Token, []Entity, error) {
	doc, err := prose.NewDocument(sentence, prose.WithSegmentation(false))
	if err != nil {
		return nil, nil, fmt.Errorf("tag: %w", err)
	}

	proseTokens := doc.Tokens()
	tokens := make([]Token, 0, len(proseTokens))
	for _, tok := range proseTokens {
		tokens = append(tokens, Token{
			Text:  tok.Text,
			Lemma: p.lemmatizer.LemmaLower(tok.Text),
			Tag:   tok.Tag,
		})
	}

	// prose entities carry no offsets; recover them by scanning forward so
	// repeated entity text maps to successive occurrences.
	var entities []Entity
	cursor := 0
	for _, ent := range doc.Entities() {
		idx := strings.Index(sentence[cursor:], ent.Text)
		if idx < 0 {
			idx = strings.Index(sentence, ent.Text)
			if idx < 0 {
				continue
			}
			cursor = 0
		}
		start := cursor + idx
		entities = append(entities, Entity{
			Text:  ent.Text,
			Label: ent.Label,
			Start: start,
			End:   start + len(ent.Text),
		})
		cursor = start + len(ent.Text)
	}

	return tokens, entities, nil
}
