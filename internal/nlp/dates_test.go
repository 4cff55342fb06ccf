package nlp

import (
	"testing"
	"time"
)

var fixedNow = func() time.Time {
	return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func TestParseRelativeWords(t *testing.T) {
	p := NewDateParserAt(fixedNow)

	tests := []struct {
		text string
		want time.Time
	}{
		{"yesterday", time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)},
		{"today", fixedNow()},
		{"tomorrow", time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)},
		{"last week", time.Date(2026, time.March, 8, 12, 0, 0, 0, time.UTC)},
		{"next month", time.Date(2026, time.April, 15, 12, 0, 0, 0, time.UTC)},
		{"last year", time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)},
		{"Next Quarter", time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, ok := p.Parse(tt.text)
		if !ok {
			t.Errorf("Parse(%q) not ok", tt.text)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParseQuarters(t *testing.T) {
	p := NewDateParserAt(fixedNow)

	tests := []struct {
		text      string
		wantYear  int
		wantMonth time.Month
	}{
		{"Q1 2024", 2024, time.January},
		{"q3 2025", 2025, time.July},
		{"Q4 2023", 2023, time.October},
	}

	for _, tt := range tests {
		got, ok := p.Parse(tt.text)
		if !ok {
			t.Errorf("Parse(%q) not ok", tt.text)
			continue
		}
		if got.Year() != tt.wantYear || got.Month() != tt.wantMonth {
			t.Errorf("Parse(%q) = %v, want %d-%v", tt.text, got, tt.wantYear, tt.wantMonth)
		}
	}
}

func TestParseBareYear(t *testing.T) {
	p := NewDateParserAt(fixedNow)

	got, ok := p.Parse("2030")
	if !ok {
		t.Fatal("Parse(2030) not ok")
	}
	if got.Year() != 2030 || got.Month() != time.January || got.Day() != 1 {
		t.Errorf("Parse(2030) = %v, want 2030-01-01", got)
	}
}

func TestParseFallback(t *testing.T) {
	p := NewDateParserAt(fixedNow)

	got, ok := p.Parse("January 15, 2024")
	if !ok {
		t.Fatal("Parse(January 15, 2024) not ok")
	}
	if got.Year() != 2024 || got.Month() != time.January || got.Day() != 15 {
		t.Errorf("Parse = %v, want 2024-01-15", got)
	}
}

func TestParseUnparseable(t *testing.T) {
	p := NewDateParserAt(fixedNow)

	for _, text := range []string{"", "   ", "not a date at all"} {
		if _, ok := p.Parse(text); ok {
			t.Errorf("Parse(%q) = ok, want failure", text)
		}
	}
}

func TestIsVerbTag(t *testing.T) {
	for _, tag := range []string{"VB", "VBD", "VBZ", "VBG", "VBN", "VBP"} {
		if !IsVerbTag(tag) {
			t.Errorf("IsVerbTag(%q) = false, want true", tag)
		}
	}
	for _, tag := range []string{"NN", "JJ", "RB", ""} {
		if IsVerbTag(tag) {
			t.Errorf("IsVerbTag(%q) = true, want false", tag)
		}
	}
}
