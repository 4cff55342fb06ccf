// Package nlp defines the text-processing capabilities the engine consumes:
// sentence segmentation, token tagging and lenient date parsing. The engine
// depends only on these interfaces; the prose-backed implementation in this
// package is the default provider.
package nlp

import "time"

// Token is a tagged token with its lemma and part-of-speech tag
// (Penn Treebank tag set).
type Token struct {
	Text  string
	Lemma string
	Tag   string
}

// Entity is a named-entity span with byte offsets into the source sentence
type Entity struct {
	Text  string
	Label string
	Start int
	End   int
}

// Tagger tags a sentence's tokens and named entities
type Tagger interface {
	Tag(sentence string) ([]Token, []Entity, error)
}

// Segmenter splits text into sentences
type Segmenter interface {
	Segment(text string) ([]string, error)
}

// DateParser parses loosely-formatted date text. It reports false for text it
// cannot interpret; it never errors.
type DateParser interface {
	Parse(text string) (time.Time, bool)
}

// IsVerbTag reports whether a Penn Treebank tag marks a verb
func IsVerbTag(tag string) bool {
	return len(tag) >= 2 && tag[0] == 'V' && tag[1] == 'B'
}
