package stocks

import (
	"fmt"
	"strings"

	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/shopspring/decimal"
)

// Stock is a listed symbol and its price history.
//
// The symbol is the sole identity of a stock: two stocks with the same symbol are
// equal whatever their price data.
type Stock struct {
	symbol string
	series *PriceSeries
}

// NewStock returns the stock for a symbol backed by series.
func NewStock(symbol string, series *PriceSeries) *Stock {
	return &Stock{symbol: NormalizeSymbol(symbol), series: series}
}

func (s *Stock) Symbol() string          { return s.symbol }
func (s *Stock) Series() *PriceSeries    { return s.series }
func (s *Stock) String() string          { return s.symbol }
func (s *Stock) Equal(other *Stock) bool { return other != nil && s.symbol == other.symbol }

// PriceOnDate returns the close price of the trading date resolved for on.
func (s *Stock) PriceOnDate(on date.Date) (decimal.Decimal, error) {
	price, err := s.series.PriceOnDate(on)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", s.symbol, err)
	}
	return price, nil
}

// ChangeOverRange returns the close on the resolved end minus the close on the
// resolved start.
//
// Both dates must resolve, and the resolved end must be strictly after the resolved start.
func (s *Stock) ChangeOverRange(start, end date.Date) (decimal.Decimal, error) {
	from, err := s.series.position(start)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: start: %w", s.symbol, err)
	}
	to, err := s.series.position(end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: end: %w", s.symbol, err)
	}
	// records are most recent first
	if to >= from {
		return decimal.Zero, fmt.Errorf("%w: %s resolves to %s which is not after %s", ErrInvalidRange, end, s.series.records[to].Date, s.series.records[from].Date)
	}
	return s.series.records[to].Close.Sub(s.series.records[from].Close), nil
}

// GainedValue is ChangeOverRange on yyyy-mm-dd strings. A date that does not
// parse makes the range invalid.
func (s *Stock) GainedValue(start, end string) (decimal.Decimal, error) {
	from, err := date.Parse(start)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: start: %w", ErrInvalidRange, err)
	}
	to, err := date.Parse(end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: end: %w", ErrInvalidRange, err)
	}
	return s.ChangeOverRange(from, to)
}

// MovingAverage returns the mean close of the days records ending on the trading
// date resolved for anchor.
//
// When fewer than days records remain before the anchor, the mean is taken over
// the records that remain.
func (s *Stock) MovingAverage(days int, anchor date.Date) (decimal.Decimal, error) {
	if days < 1 {
		return decimal.Zero, fmt.Errorf("%w: moving average over %d days", ErrInvalidArgument, days)
	}
	i, err := s.series.position(anchor)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", s.symbol, err)
	}
	return s.series.average(i, days), nil
}

// Crossovers returns every trading date in the resolved range whose close is
// above its own days-moving average.
//
// It is a pointwise test on each date, not the detection of the day the close
// crosses the average line.
func (s *Stock) Crossovers(days int, start, end date.Date) (Crossovers, error) {
	if days < 1 {
		return Crossovers{}, fmt.Errorf("%w: crossovers over %d days", ErrInvalidArgument, days)
	}
	from, err := s.series.position(start)
	if err != nil {
		return Crossovers{}, fmt.Errorf("%s: start: %w", s.symbol, err)
	}
	to, err := s.series.position(end)
	if err != nil {
		return Crossovers{}, fmt.Errorf("%s: end: %w", s.symbol, err)
	}
	if to >= from {
		return Crossovers{}, fmt.Errorf("%w: %s resolves to %s which is not after %s", ErrInvalidRange, end, s.series.records[to].Date, s.series.records[from].Date)
	}

	c := Crossovers{
		Symbol: s.symbol,
		Days:   days,
		Range:  date.Range{From: s.series.records[from].Date, To: s.series.records[to].Date},
	}
	for i := to; i <= from; i++ {
		r := s.series.records[i]
		if r.Close.GreaterThan(s.series.average(i, days)) {
			c.Dates = append(c.Dates, r.Date)
		}
	}
	return c, nil
}

// Crossovers lists the dates flagged by Stock.Crossovers, most recent first.
type Crossovers struct {
	Symbol string
	Days   int
	Range  date.Range
	Dates  []date.Date
}

// None reports that no date was flagged.
func (c Crossovers) None() bool { return len(c.Dates) == 0 }

func (c Crossovers) String() string {
	if c.None() {
		return "no crossovers"
	}
	days := make([]string, len(c.Dates))
	for i, d := range c.Dates {
		days[i] = d.String()
	}
	return strings.Join(days, ", ")
}
