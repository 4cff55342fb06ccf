package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	quarterPattern  = regexp.MustCompile(`(?i)^q([1-4])\s+(\d{4})$`)
	bareYearPattern = regexp.MustCompile(`^\d{4}$`)
)

// LenientDateParser resolves relative day/period words and fiscal-quarter
// labels itself, then falls back to dateparse for everything else.
type LenientDateParser struct {
	now func() time.Time
}

// NewDateParser creates a parser anchored to the wall clock
func NewDateParser() *LenientDateParser {
	return &LenientDateParser{now: time.Now}
}

// NewDateParserAt creates a parser anchored to a fixed clock, for tests
func NewDateParserAt(now func() time.Time) *LenientDateParser {
	return &LenientDateParser{now: now}
}

// Parse interprets loosely-formatted date text. Returns false for anything it
// cannot interpret.
func (p *LenientDateParser) Parse(text string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}

	now := p.now()
	switch strings.ToLower(s) {
	case "yesterday":
		return now.AddDate(0, 0, -1), true
	case "today":
		return now, true
	case "tomorrow":
		return now.AddDate(0, 0, 1), true
	case "last week":
		return now.AddDate(0, 0, -7), true
	case "next week":
		return now.AddDate(0, 0, 7), true
	case "last month":
		return now.AddDate(0, -1, 0), true
	case "next month":
		return now.AddDate(0, 1, 0), true
	case "last year":
		return now.AddDate(-1, 0, 0), true
	case "next year":
		return now.AddDate(1, 0, 0), true
	case "last quarter":
		return now.AddDate(0, -3, 0), true
	case "next quarter":
		return now.AddDate(0, 3, 0), true
	}

	if m := quarterPattern.FindStringSubmatch(s); m != nil {
		quarter, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		month := time.Month((quarter-1)*3 + 1)
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
	}

	if bareYearPattern.MatchString(s) {
		year, _ := strconv.Atoi(s)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
