package renderer

import (
	"bytes"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// SectionPrinter prints a header and a footer around a section only if
// content is actually written to it.
type SectionPrinter struct {
	headerFunc       func(io.Writer)
	footerFunc       func(io.Writer)
	hasPrintedHeader bool
}

// Header creates a new SectionPrinter and sets the function that will be called to print the section header.
func Header(f func(io.Writer)) *SectionPrinter {
	return &SectionPrinter{headerFunc: f}
}

// Footer sets the function that will be called to print the section footer.
func (p *SectionPrinter) Footer(f func(io.Writer)) *SectionPrinter {
	p.footerFunc = f
	return p
}

// PrintHeader prints the section header, but only on the first call.
// It should be called just before printing the first row.
func (p *SectionPrinter) PrintHeader(w io.Writer) {
	if p.hasPrintedHeader {
		return
	}
	p.hasPrintedHeader = true
	if p.headerFunc != nil {
		p.headerFunc(w)
	}
}

// PrintFooter prints the section footer, but only if the header was ever printed.
func (p *SectionPrinter) PrintFooter(w io.Writer) {
	if p.hasPrintedHeader && p.footerFunc != nil {
		p.footerFunc(w)
	}
}

// Printed reports whether the header was printed.
func (p *SectionPrinter) Printed() bool { return p.hasPrintedHeader }

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// Money formats an amount in a currency.
type Money string

// Format returns the amount in the currency format, rounded to the currency
// fraction, e.g. "$1,234.50".
func (m Money) Format(amount decimal.Decimal) string {
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, string(m)).Currency()
	return cur.Formatter().Format(amount.Shift(int32(cur.Fraction)).Round(0).IntPart())
}

// Signed is Format with an explicit sign, and "-" for zero.
func (m Money) Signed(amount decimal.Decimal) string {
	switch {
	case amount.IsZero():
		return "-"
	case amount.IsPositive():
		return "+" + m.Format(amount)
	default:
		return m.Format(amount)
	}
}

// shares formats a number of shares with at most four decimals.
func shares(d decimal.Decimal) string { return d.Round(4).String() }
