package budget

// Summary is the budget tracker's view of a plan.
type Summary struct {
	Budget    float64
	Expenses  float64
	Remaining float64
	Percent   float64 // Expenses / Budget * 100, or 0 when Budget <= 0
	Level     Level
}

// Fraction returns Percent as a 0..1 value clamped for progress bars.
func (s Summary) Fraction() float64 {
	f := s.Percent / 100
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Level maps budget utilisation to a display color.
type Level int

const (
	LevelOK Level = iota
	LevelWarn
	LevelOver
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case LevelOK:
		return "ok"
	case LevelWarn:
		return "warn"
	case LevelOver:
		return "over"
	default:
		return "unknown"
	}
}

// Thresholds configures the utilisation boundaries in percent.
type Thresholds struct {
	WarnAt float64 // Percent at or above this is LevelWarn
	OverAt float64 // Percent at or above this is LevelOver
}

// DefaultThresholds returns the default utilisation boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WarnAt: 75,
		OverAt: 100,
	}
}

// DefaultExpenseRatio is the share of the budget reported as spent until
// the backend supplies real expenses.
const DefaultExpenseRatio = 0.25
