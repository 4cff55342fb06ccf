package sanity

import (
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/halidex/internal/extract"
	"github.com/ppiankov/halidex/internal/nlp"
	"github.com/ppiankov/halidex/internal/rules"
)

var fixedNow = func() time.Time {
	return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func newChecker() *Checker {
	return NewAt(rules.Default(), nlp.NewDateParserAt(fixedNow), fixedNow)
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if f == want {
			return true
		}
	}
	return false
}

func TestCheckPercentJump(t *testing.T) {
	c := newChecker()
	claim := extract.New(nil).Extract("The stock jumped 500% in one day, reaching $1000 billion market cap.")

	score, flags := c.Check(claim)
	if !hasFlag(flags, "percent_jump_500.0") {
		t.Errorf("flags = %v, want percent_jump_500.0", flags)
	}
	if score <= 0 {
		t.Errorf("score = %v, want > 0", score)
	}
	if score > 1 {
		t.Errorf("score = %v, want <= 1", score)
	}
}

func TestCheckPercentJumpNeedsDailyContext(t *testing.T) {
	c := newChecker()
	claim := extract.New(nil).Extract("The stock jumped 500% over the decade.")

	_, flags := c.Check(claim)
	for _, f := range flags {
		if strings.HasPrefix(f, "percent_jump") {
			t.Errorf("flags = %v, percent jump should require a daily cue", flags)
		}
	}
}

func TestCheckCurrencyMismatch(t *testing.T) {
	c := newChecker()
	claim := extract.New(nil).Extract("The price rose to $100 despite the rupee weakening.")

	_, flags := c.Check(claim)
	if !hasFlag(flags, "currency_mismatch_usd_inr_context") {
		t.Errorf("flags = %v, want currency_mismatch_usd_inr_context", flags)
	}
}

func TestCheckUnitAbsurdity(t *testing.T) {
	c := newChecker()

	tests := []struct {
		sentence string
		want     string
	}{
		{"He claimed a height of 300 cm.", "absurd_height_300.0cm"},
		{"The patient recorded a weight of 700 kg.", "absurd_weight_700.0kg"},
		{"The temperature reached 80 celsius in the shade.", "absurd_temperature_80.0°c"},
	}

	for _, tt := range tests {
		claim := extract.New(nil).Extract(tt.sentence)
		_, flags := c.Check(claim)
		if !hasFlag(flags, tt.want) {
			t.Errorf("Check(%q) flags = %v, want %s", tt.sentence, flags, tt.want)
		}
	}
}

func TestCheckUnitWithinBounds(t *testing.T) {
	c := newChecker()
	claim := extract.New(nil).Extract("She is 170 cm tall.")

	score, flags := c.Check(claim)
	if len(flags) != 0 {
		t.Errorf("flags = %v, want none for plausible height", flags)
	}
	if score != 0 {
		t.Errorf("score = %v, want 0", score)
	}
}

func TestCheckFuturePastConflict(t *testing.T) {
	c := newChecker()
	claim := extract.New(nil).Extract("Last year the company forecast results for 2030.")

	_, flags := c.Check(claim)
	if !hasFlag(flags, "future_date_past_context_2030") {
		t.Errorf("flags = %v, want future_date_past_context_2030", flags)
	}
}

func TestCheckFutureDateWithoutPastContext(t *testing.T) {
	c := newChecker()
	claim := extract.New(nil).Extract("The company forecasts results for 2030.")

	_, flags := c.Check(claim)
	if hasFlag(flags, "future_date_past_context_2030") {
		t.Errorf("flags = %v, future date alone should not flag", flags)
	}
}

func TestCheckNoNumericMentions(t *testing.T) {
	c := newChecker()
	claim := extract.New(nil).Extract("No numbers appear in this sentence at all.")

	score, flags := c.Check(claim)
	if score != 0 || flags != nil {
		t.Errorf("got score=%v flags=%v, want short-circuit to 0, nil", score, flags)
	}
}

func TestCheckDisabledRule(t *testing.T) {
	cfg := rules.Default()
	cfg.Sanity.Rules.PercentJump.Enabled = false
	c := NewAt(cfg, nlp.NewDateParserAt(fixedNow), fixedNow)

	claim := extract.New(nil).Extract("The stock jumped 500% in one day.")
	_, flags := c.Check(claim)
	for _, f := range flags {
		if strings.HasPrefix(f, "percent_jump") {
			t.Errorf("flags = %v, rule is disabled", flags)
		}
	}
}

func TestCheckScoreCapped(t *testing.T) {
	cfg := rules.Default()
	c := NewAt(cfg, nlp.NewDateParserAt(fixedNow), fixedNow)

	// One percent mention, one flag family firing repeatedly still caps at 1
	claim := extract.New(nil).Extract("It jumped 900% daily at a height of 400 cm and weight of 800 kg.")
	score, _ := c.Check(claim)
	if score > 1 {
		t.Errorf("score = %v, want <= 1", score)
	}
}
