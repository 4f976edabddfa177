// Package budget computes the budget tracker summary for an event plan and
// formats currency amounts for display.
package budget

import "github.com/GopalTomar/AI-Event-Planner/internal/state"

// Calculator derives expenses and remaining budget from a plan's budget.
// The backend reports no expenses yet, so expenses are a fixed share of the
// budget. It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	ratio      float64
	thresholds Thresholds
}

// NewCalculator creates a Calculator that reports ratio of the budget as
// spent. Ratios outside 0..1 are clamped.
func NewCalculator(ratio float64, thresholds Thresholds) *Calculator {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return &Calculator{ratio: ratio, thresholds: thresholds}
}

// Ratio returns the expense ratio in use.
func (c *Calculator) Ratio() float64 { return c.ratio }

// Compute returns the summary for plan. A nil plan or one without a budget
// is treated as a budget of 0.
func (c *Calculator) Compute(plan *state.EventPlan) Summary {
	b := plan.BudgetValue()
	expenses := b * c.ratio

	s := Summary{
		Budget:    b,
		Expenses:  expenses,
		Remaining: b - expenses,
	}
	if b > 0 {
		s.Percent = expenses / b * 100
	}
	s.Level = c.level(s.Percent)
	return s
}

func (c *Calculator) level(percent float64) Level {
	switch {
	case percent >= c.thresholds.OverAt:
		return LevelOver
	case percent >= c.thresholds.WarnAt:
		return LevelWarn
	default:
		return LevelOK
	}
}
