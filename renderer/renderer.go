// Package renderer formats portfolio and stock reports as markdown.
package renderer

import (
	"fmt"
	"strings"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/shopspring/decimal"
)

// Empty is the line printed instead of the table of a portfolio without holdings.
const Empty = "_portfolio empty_"

// Renderer formats reports with money in a currency.
type Renderer struct {
	Money Money
}

// New returns a renderer of money amounts in the currency code.
func New(currency string) Renderer { return Renderer{Money: Money(currency)} }

// Value renders the value of a portfolio on a date.
func (r Renderer) Value(name string, on date.Date, total decimal.Decimal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "Value on %s: **%s**\n", on, r.Money.Format(total))
	return b.String()
}

// Distribution renders the weight of each holding in the portfolio value.
func (r Renderer) Distribution(name string, d stocks.Distribution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s distribution on %s\n\n", name, d.Date)
	if d.Empty() {
		fmt.Fprintln(&b, Empty)
		return b.String()
	}
	fmt.Fprintln(&b, "| Symbol | Shares | Price | Value | Weight |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	var weight stocks.Percent
	for _, e := range d.Entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			e.Stock.Symbol(),
			shares(e.Shares),
			r.Money.Format(e.Price),
			r.Money.Format(e.Value),
			e.Percent,
		)
		weight += e.Percent
	}
	fmt.Fprintf(&b, "| **Total** | | | **%s** | %s |\n", r.Money.Format(d.Total), weight)
	return b.String()
}

// Composition renders the holdings of a portfolio on a date.
func (r Renderer) Composition(name string, on date.Date, holdings []stocks.Holding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s on %s\n\n", name, on)
	if len(holdings) == 0 {
		fmt.Fprintln(&b, Empty)
		return b.String()
	}
	fmt.Fprintln(&b, "| # | Symbol | Shares |")
	fmt.Fprintln(&b, "|---:|:---|---:|")
	for i, h := range holdings {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", i+1, h.Stock.Symbol(), shares(h.Shares))
	}
	return b.String()
}

// Portfolios renders the list of known portfolios.
func (r Renderer) Portfolios(names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolios\n\n")
	if len(names) == 0 {
		fmt.Fprintln(&b, "_no portfolio_")
		return b.String()
	}
	for _, name := range names {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	return b.String()
}
