package model

// MentionKind classifies a located span of text inside a sentence
type MentionKind string

const (
	MentionEntity  MentionKind = "entity"
	MentionNumber  MentionKind = "number"
	MentionPercent MentionKind = "percent"
	MentionMoney   MentionKind = "money"
	MentionDate    MentionKind = "date"
)

// Mention is a located span matched by one of the extraction pattern families.
// Start/End are byte offsets into the source sentence. Spans from different
// families may overlap: a number pattern is allowed to re-match text already
// captured as money or percent.
type Mention struct {
	Text  string      `json:"text"`
	Start int         `json:"start"`
	End   int         `json:"end"`
	Kind  MentionKind `json:"kind"`
	Label string      `json:"label,omitempty"` // entity label (PERSON, ORG, ...)
}

// ExtractedClaim holds all structured mentions pulled out of one sentence.
// Immutable once produced.
type ExtractedClaim struct {
	Text     string    `json:"text"`
	Entities []Mention `json:"entities"`
	Numbers  []Mention `json:"numbers"`
	Percents []Mention `json:"percents"`
	Money    []Mention `json:"money"`
	Dates    []Mention `json:"dates"`
}

// NumericMentionCount is the sanity-check denominator: every percent, money,
// number and date mention, overlapping spans included.
func (c ExtractedClaim) NumericMentionCount() int {
	return len(c.Percents) + len(c.Money) + len(c.Numbers) + len(c.Dates)
}
