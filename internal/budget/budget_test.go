package budget

import (
	"math"
	"strings"
	"testing"

	"github.com/GopalTomar/AI-Event-Planner/internal/state"
)

func floatPtr(f float64) *float64 { return &f }

func TestCompute_ProvisionalExpenses(t *testing.T) {
	c := NewCalculator(DefaultExpenseRatio, DefaultThresholds())

	s := c.Compute(&state.EventPlan{Budget: floatPtr(100000)})

	if s.Budget != 100000 {
		t.Errorf("Budget = %v", s.Budget)
	}
	if s.Expenses != 25000 {
		t.Errorf("Expenses = %v, want 25000", s.Expenses)
	}
	if s.Remaining != 75000 {
		t.Errorf("Remaining = %v, want 75000", s.Remaining)
	}
	if s.Percent != 25 {
		t.Errorf("Percent = %v, want 25", s.Percent)
	}
	if s.Fraction() != 0.25 {
		t.Errorf("Fraction = %v, want 0.25", s.Fraction())
	}
	if s.Level != LevelOK {
		t.Errorf("Level = %s, want ok", s.Level)
	}
}

func TestCompute_ZeroOrMissingBudget(t *testing.T) {
	c := NewCalculator(DefaultExpenseRatio, DefaultThresholds())

	tests := []struct {
		name string
		plan *state.EventPlan
	}{
		{"nil plan", nil},
		{"no budget", &state.EventPlan{EventName: "x"}},
		{"zero budget", &state.EventPlan{Budget: floatPtr(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := c.Compute(tt.plan)
			if s.Percent != 0 || s.Expenses != 0 || s.Remaining != 0 {
				t.Errorf("expected an all-zero summary, got %+v", s)
			}
		})
	}
}

func TestCompute_NegativeBudget(t *testing.T) {
	c := NewCalculator(DefaultExpenseRatio, DefaultThresholds())
	s := c.Compute(&state.EventPlan{Budget: floatPtr(-400)})
	if s.Percent != 0 {
		t.Errorf("Percent = %v, want 0 for a non-positive budget", s.Percent)
	}
	if s.Fraction() != 0 {
		t.Errorf("Fraction = %v", s.Fraction())
	}
}

func TestCompute_RatioAndLevels(t *testing.T) {
	tests := []struct {
		ratio     float64
		wantPct   float64
		wantLevel Level
	}{
		{0, 0, LevelOK},
		{0.5, 50, LevelOK},
		{0.8, 80, LevelWarn},
		{1, 100, LevelOver},
		{1.7, 100, LevelOver}, // clamped
		{-2, 0, LevelOK},      // clamped
	}
	for _, tt := range tests {
		c := NewCalculator(tt.ratio, DefaultThresholds())
		s := c.Compute(&state.EventPlan{Budget: floatPtr(1000)})
		if math.Abs(s.Percent-tt.wantPct) > 1e-9 {
			t.Errorf("ratio %v: Percent = %v, want %v", tt.ratio, s.Percent, tt.wantPct)
		}
		if s.Level != tt.wantLevel {
			t.Errorf("ratio %v: Level = %s, want %s", tt.ratio, s.Level, tt.wantLevel)
		}
	}
}

func TestFormat_Indian(t *testing.T) {
	f := NewFormatter("₹", GroupingIndian)

	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{25000, "₹25,000"},
		{75000, "₹75,000"},
		{100000, "₹1,00,000"},
		{1234567, "₹12,34,567"},
		{5000000, "₹50,00,000"},
		{123456789, "₹12,34,56,789"},
		{2500.5, "₹2,500.5"},
		{1234.5678, "₹1,234.568"},
		{0.1 + 0.2, "₹0.3"},
		{-500, "-₹500"},
		{-150000, "-₹1,50,000"},
		{-0.0001, "₹0"},
	}
	for _, tt := range tests {
		if got := f.Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormat_Western(t *testing.T) {
	f := NewFormatter("$", GroupingWestern)

	tests := []struct {
		in   float64
		want string
	}{
		{100000, "$100,000"},
		{1234567.25, "$1,234,567.25"},
		{12, "$12"},
		{-2500, "-$2,500"},
	}
	for _, tt := range tests {
		if got := f.Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormat_EdgeCases(t *testing.T) {
	f := NewFormatter("₹", "bogus")
	if f.Grouping != GroupingIndian {
		t.Errorf("unknown grouping should fall back to indian, got %q", f.Grouping)
	}
	if got := f.Format(250000); got != "₹2,50,000" {
		t.Errorf("Format = %q", got)
	}
	if got := f.Format(math.NaN()); got != "N/A" {
		t.Errorf("Format(NaN) = %q", got)
	}
	if got := f.Format(math.Inf(1)); got != "N/A" {
		t.Errorf("Format(+Inf) = %q", got)
	}
}

func TestFormat_VeryLargeAmounts(t *testing.T) {
	indian := NewFormatter("₹", GroupingIndian)
	western := NewFormatter("$", GroupingWestern)

	tests := []struct {
		name string
		f    Formatter
		in   float64
		want string
	}{
		{"indian above int64", indian, 1e19, "₹1,00,00,00,00,00,00,00,00,000"},
		{"western above int64", western, 1e19, "$10,000,000,000,000,000,000"},
		{"western negative", western, -1e19, "-$10,000,000,000,000,000,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Format(tt.in); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	// Near the top of the float64 range the amount is still grouped digits.
	for _, f := range []Formatter{indian, western} {
		got := f.Format(1e306)
		if strings.Contains(got, "Inf") || !strings.HasPrefix(got, f.Symbol+"1") || !strings.Contains(got, ",") {
			t.Errorf("Format(1e306) = %q, want grouped digits", got)
		}
	}
}
