package stocks

import (
	"context"
	"fmt"
	"testing"

	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/shopspring/decimal"
)

// D is a helper for tests to create a decimal from a float constant.
func D(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// day is a helper for tests to parse a yyyy-mm-dd constant.
func day(s string) date.Date { return date.MustParse(s) }

// closes builds a series with the given close prices by date.
func closes(t *testing.T, prices map[string]float64) *PriceSeries {
	t.Helper()
	rows := make([]PriceRecord, 0, len(prices))
	for on, c := range prices {
		rows = append(rows, PriceRecord{Date: day(on), Open: D(c), High: D(c), Low: D(c), Close: D(c), Volume: 1000})
	}
	s, err := NewPriceSeries(rows)
	if err != nil {
		t.Fatalf("NewPriceSeries() error = %v", err)
	}
	return s
}

// stock builds a stock with the given close prices by date.
func stock(t *testing.T, symbol string, prices map[string]float64) *Stock {
	t.Helper()
	return NewStock(symbol, closes(t, prices))
}

// fixedToday sets the reference date of future checks for the duration of the test.
func fixedToday(t *testing.T, on string) {
	t.Helper()
	old := today
	today = func() date.Date { return day(on) }
	t.Cleanup(func() { today = old })
}

// mapFeed is a PriceFeed serving rows from memory.
type mapFeed map[string][]PriceRecord

func (f mapFeed) Rows(_ context.Context, symbol string) ([]PriceRecord, error) {
	rows, ok := f[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchSymbol, symbol)
	}
	return rows, nil
}

// rows converts close prices by date into price records.
func rows(prices map[string]float64) []PriceRecord {
	list := make([]PriceRecord, 0, len(prices))
	for on, c := range prices {
		list = append(list, PriceRecord{Date: day(on), Open: D(c), High: D(c), Low: D(c), Close: D(c)})
	}
	return list
}
