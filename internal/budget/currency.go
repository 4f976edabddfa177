package budget

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	GroupingIndian  = "indian"
	GroupingWestern = "western"
)

// maxFractionDigits matches the browser's toLocaleString default.
const maxFractionDigits = 3

// Printers are safe for concurrent use.
var (
	indianPrinter  = message.NewPrinter(language.MustParse("en-IN"))
	westernPrinter = message.NewPrinter(language.AmericanEnglish)
)

// Formatter renders amounts as currency strings, e.g. "₹1,00,000" or
// "$100,000.5". Amounts keep at most three fraction digits with trailing
// zeros dropped.
type Formatter struct {
	Symbol   string
	Grouping string
}

// NewFormatter returns a Formatter. An unknown grouping falls back to
// Indian grouping.
func NewFormatter(symbol, grouping string) Formatter {
	if grouping != GroupingWestern {
		grouping = GroupingIndian
	}
	return Formatter{Symbol: symbol, Grouping: grouping}
}

// Format renders amount with the currency symbol. Negative amounts are
// prefixed with "-" before the symbol; NaN and infinities render "N/A".
func (f Formatter) Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "N/A"
	}

	// Round here so values that round to zero lose their sign. Beyond 1e15
	// a float64 carries no fraction digits, and scaling could overflow.
	if math.Abs(amount) < 1e15 {
		amount = math.Round(amount*1000) / 1000
	}
	sign := ""
	if amount == 0 {
		amount = 0 // drop negative zero
	} else if amount < 0 {
		sign = "-"
		amount = -amount
	}

	return sign + f.Symbol + f.printer().Sprint(number.Decimal(amount, number.MaxFractionDigits(maxFractionDigits)))
}

func (f Formatter) printer() *message.Printer {
	if f.Grouping == GroupingWestern {
		return westernPrinter
	}
	return indianPrinter
}
