// Package sanity evaluates numeric/temporal plausibility rules against the
// mentions extracted from a sentence. Each rule is independently toggleable
// and fail-soft: a mention that does not parse is skipped, never an error.
package sanity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/halidex/internal/model"
	"github.com/ppiankov/halidex/internal/nlp"
	"github.com/ppiankov/halidex/internal/rules"
)

var (
	dailyCues = []string{"in one day", "in a single day", "daily"}
	pastCues  = []string{"yesterday", "last week", "last month", "last year", "previous", "past"}

	heightCues      = []string{"height", "tall", "cm", "centimeter"}
	weightCues      = []string{"weight", "kg", "kilogram"}
	temperatureCues = []string{"temperature", "celsius", "°c"}
)

// Checker runs the sanity rules
type Checker struct {
	rules *rules.Config
	dates nlp.DateParser
	now   func() time.Time
}

// New creates a checker using the wall clock
func New(cfg *rules.Config, dates nlp.DateParser) *Checker {
	return &Checker{rules: cfg, dates: dates, now: time.Now}
}

// NewAt creates a checker with a fixed clock, for tests
func NewAt(cfg *rules.Config, dates nlp.DateParser, now func() time.Time) *Checker {
	return &Checker{rules: cfg, dates: dates, now: now}
}

// Check evaluates all enabled rules against a claim's mentions. A claim with
// no numeric-ish mentions short-circuits to (0, nil).
func (c *Checker) Check(claim model.ExtractedClaim) (float64, []string) {
	numericMentions := claim.NumericMentionCount()
	if numericMentions == 0 {
		return 0, nil
	}

	var flags []string
	flags = append(flags, c.checkPercentJumps(claim)...)
	flags = append(flags, c.checkCurrencyMismatch(claim)...)
	flags = append(flags, c.checkUnitAbsurdity(claim)...)
	flags = append(flags, c.checkTemporalConflicts(claim)...)

	score := float64(len(flags)) / float64(numericMentions)
	if score > 1 {
		score = 1
	}
	return score, flags
}

// checkPercentJumps flags implausibly large percentage moves in a daily
// context (an explicit daily phrase, or any date mention containing "day").
func (c *Checker) checkPercentJumps(claim model.ExtractedClaim) []string {
	rule := c.rules.Sanity.Rules.PercentJump
	if !rule.Enabled || len(claim.Percents) == 0 {
		return nil
	}

	lower := strings.ToLower(claim.Text)
	daily := containsAny(lower, dailyCues)
	if !daily {
		for _, d := range claim.Dates {
			if strings.Contains(strings.ToLower(d.Text), "day") {
				daily = true
				break
			}
		}
	}
	if !daily {
		return nil
	}

	var flags []string
	for _, percent := range claim.Percents {
		raw := strings.TrimSpace(strings.ReplaceAll(percent.Text, "%", ""))
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue // "25 percent" forms are not parsed here; skip silently
		}
		if value < 0 {
			value = -value
		}
		if value > rule.Threshold {
			flags = append(flags, fmt.Sprintf("percent_jump_%.1f", value))
		}
	}
	return flags
}

// checkCurrencyMismatch flags money mentions whose symbol conflicts with the
// sentence's currency context words.
func (c *Checker) checkCurrencyMismatch(claim model.ExtractedClaim) []string {
	if !c.rules.Sanity.Rules.CurrencyMismatch.Enabled {
		return nil
	}

	lower := strings.ToLower(claim.Text)
	usdContext := containsAny(lower, c.rules.Sanity.Keywords.USD)
	inrContext := containsAny(lower, c.rules.Sanity.Keywords.INR)

	var flags []string
	for _, money := range claim.Money {
		if strings.Contains(money.Text, "$") && inrContext {
			flags = append(flags, "currency_mismatch_usd_inr_context")
		} else if strings.Contains(money.Text, "₹") && usdContext {
			flags = append(flags, "currency_mismatch_inr_usd_context")
		}
	}
	return flags
}

// checkUnitAbsurdity flags numbers exceeding a unit family's threshold when
// the sentence carries that family's gating keywords.
func (c *Checker) checkUnitAbsurdity(claim model.ExtractedClaim) []string {
	if !c.rules.Sanity.Rules.UnitAbsurdity.Enabled {
		return nil
	}

	lower := strings.ToLower(claim.Text)
	thresholds := c.rules.Sanity.Thresholds
	var flags []string

	if containsAny(lower, heightCues) {
		for _, num := range claim.Numbers {
			if value, ok := parseNumber(num.Text); ok && value > thresholds.HumanHeightCm {
				flags = append(flags, fmt.Sprintf("absurd_height_%.1fcm", value))
			}
		}
	}

	if containsAny(lower, weightCues) {
		for _, num := range claim.Numbers {
			if value, ok := parseNumber(num.Text); ok && value > thresholds.HumanWeightKg {
				flags = append(flags, fmt.Sprintf("absurd_weight_%.1fkg", value))
			}
		}
	}

	if containsAny(lower, temperatureCues) {
		for _, num := range claim.Numbers {
			value, ok := parseNumber(num.Text)
			if !ok {
				continue
			}
			abs := value
			if abs < 0 {
				abs = -abs
			}
			if abs > thresholds.TemperatureCelsius {
				flags = append(flags, fmt.Sprintf("absurd_temperature_%.1f°c", value))
			}
		}
	}

	return flags
}

// checkTemporalConflicts flags future dates in a past-context sentence
func (c *Checker) checkTemporalConflicts(claim model.ExtractedClaim) []string {
	if !c.rules.Sanity.Rules.FuturePastConflict.Enabled {
		return nil
	}

	lower := strings.ToLower(claim.Text)
	if !containsAny(lower, pastCues) {
		return nil
	}

	currentYear := c.now().Year()
	var flags []string
	for _, date := range claim.Dates {
		parsed, ok := c.dates.Parse(date.Text)
		if !ok {
			continue
		}
		if parsed.Year() > currentYear {
			flags = append(flags, fmt.Sprintf("future_date_past_context_%d", parsed.Year()))
		}
	}
	return flags
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

// parseNumber handles the plain number forms; comma-grouped or suffixed text
// is skipped, mirroring the extractor's fail-soft policy.
func parseNumber(text string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
