package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/shopspring/decimal"
)

// Change renders the change of a stock close price between two dates.
func (r Renderer) Change(symbol string, start, end date.Date, change decimal.Decimal) string {
	return fmt.Sprintf("# %s\n\nChange from %s to %s: **%s**\n", symbol, start, end, r.Money.Signed(change))
}

// MovingAverage renders the moving average of a stock on a date.
func (r Renderer) MovingAverage(symbol string, days int, anchor date.Date, average decimal.Decimal) string {
	return fmt.Sprintf("# %s\n\n%d-day moving average on %s: **%s**\n", symbol, days, anchor, r.Money.Format(average))
}

// Crossovers renders the dates a stock closed above its moving average.
func (r Renderer) Crossovers(c stocks.Crossovers) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %d-day crossovers\n\n", c.Symbol, c.Days)
	fmt.Fprintf(&b, "From %s to %s:\n\n", c.Range.From, c.Range.To)
	ConditionalBlock(&b, func(w io.Writer) bool {
		for _, d := range c.Dates {
			fmt.Fprintf(w, "- %s\n", d)
		}
		return !c.None()
	})
	if c.None() {
		fmt.Fprintln(&b, c)
	}
	return b.String()
}
