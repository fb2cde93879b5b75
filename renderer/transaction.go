package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/annahallx127/HW4Stocks-sub000"
)

// Transaction renders a transaction to a string.
func Transaction(tx stocks.Transaction) string {
	switch tx.Kind() {
	case stocks.KindBuy:
		return fmt.Sprintf("Bought %s of %s", shares(tx.Shares()), tx.Symbol())
	case stocks.KindSell:
		return fmt.Sprintf("Sold %s of %s", shares(tx.Shares()), tx.Symbol())
	case stocks.KindRebalance:
		h := tx.Holdings()
		if len(h) == 0 {
			return "Rebalanced to nothing"
		}
		parts := make([]string, 0, len(h))
		for _, symbol := range tx.Symbols() {
			parts = append(parts, fmt.Sprintf("%s %s", shares(h[symbol]), symbol))
		}
		return "Rebalanced to " + strings.Join(parts, ", ")
	default:
		return string(tx.Kind())
	}
}

// Transactions renders the log of a portfolio, most recent last.
func (r Renderer) Transactions(name string, txs []stocks.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s transactions\n\n", name)
	section := Header(func(w io.Writer) {
		fmt.Fprintln(w, "| Date | Operation |")
		fmt.Fprintln(w, "|:---|:---|")
	})
	for _, tx := range txs {
		section.PrintHeader(&b)
		fmt.Fprintf(&b, "| %s | %s |\n", tx.Date(), Transaction(tx))
	}
	if !section.Printed() {
		fmt.Fprintln(&b, "_no transactions_")
	}
	return b.String()
}
