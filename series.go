package stocks

import (
	"fmt"
	"iter"
	"slices"

	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/shopspring/decimal"
)

// today is the reference "now" of every future date check.
var today = date.Today

// PriceSeries is the daily price history of one symbol, most recent first.
//
// A PriceSeries is never modified once built, it can be shared between stocks and
// read concurrently.
type PriceSeries struct {
	records  []PriceRecord     // sorted by date, descending
	index    map[date.Date]int // position of each date in records
	calendar Calendar
}

// NewPriceSeries builds a series from rows in any order.
//
// Rows are validated, and a date present twice is rejected.
func NewPriceSeries(rows []PriceRecord) (*PriceSeries, error) {
	records := slices.Clone(rows)
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	slices.SortFunc(records, func(a, b PriceRecord) int { return b.Date.Compare(a.Date) })

	index := make(map[date.Date]int, len(records))
	for i, r := range records {
		if _, exists := index[r.Date]; exists {
			return nil, fmt.Errorf("%w: duplicate price record on %s", ErrInvalidArgument, r.Date)
		}
		index[r.Date] = i
	}
	return &PriceSeries{records: records, index: index, calendar: DefaultCalendar}, nil
}

// WithCalendar returns a series sharing the same records but resolving dates with c.
func (s *PriceSeries) WithCalendar(c Calendar) *PriceSeries {
	return &PriceSeries{records: s.records, index: s.index, calendar: c}
}

// Len returns the number of records.
func (s *PriceSeries) Len() int { return len(s.records) }

// Newest returns the most recent date of the series, or the zero date if empty.
func (s *PriceSeries) Newest() date.Date {
	if len(s.records) == 0 {
		return date.Date{}
	}
	return s.records[0].Date
}

// Oldest returns the earliest date of the series, or the zero date if empty.
func (s *PriceSeries) Oldest() date.Date {
	if len(s.records) == 0 {
		return date.Date{}
	}
	return s.records[len(s.records)-1].Date
}

// Record returns the record on a trading date.
func (s *PriceSeries) Record(on date.Date) (PriceRecord, bool) {
	i, ok := s.index[on]
	if !ok {
		return PriceRecord{}, false
	}
	return s.records[i], true
}

// Records returns an iterator over the records, most recent first.
func (s *PriceSeries) Records() iter.Seq[PriceRecord] {
	return func(yield func(PriceRecord) bool) {
		for _, r := range s.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Resolve returns the trading date used for a calendar day: the day itself if
// it has a record, otherwise the first record found walking backward through the
// series calendar.
func (s *PriceSeries) Resolve(on date.Date) (date.Date, error) {
	if now := today(); on.After(now) {
		return date.Date{}, fmt.Errorf("%w: %s is after %s", ErrFutureDate, on, now)
	}
	if len(s.records) == 0 {
		return date.Date{}, fmt.Errorf("%w: empty price history", ErrNoMarketData)
	}
	oldest := s.Oldest()
	for day := on; ; day = s.calendar.previous(day) {
		if day.Before(oldest) {
			return date.Date{}, fmt.Errorf("%w: no price on or before %s, history starts on %s", ErrNoMarketData, on, oldest)
		}
		if _, ok := s.index[day]; ok {
			return day, nil
		}
	}
}

// PriceOnDate returns the close price of the trading date resolved for on.
func (s *PriceSeries) PriceOnDate(on date.Date) (decimal.Decimal, error) {
	i, err := s.position(on)
	if err != nil {
		return decimal.Zero, err
	}
	return s.records[i].Close, nil
}

// position resolves on and returns the index of its record.
func (s *PriceSeries) position(on date.Date) (int, error) {
	day, err := s.Resolve(on)
	if err != nil {
		return 0, err
	}
	return s.index[day], nil
}

// average returns the mean close of the window of n records starting at i
// toward older dates, clamped to the records available.
func (s *PriceSeries) average(i, n int) decimal.Decimal {
	window := s.records[i:min(i+n, len(s.records))]
	sum := decimal.Zero
	for _, r := range window {
		sum = sum.Add(r.Close)
	}
	return sum.Div(decimal.NewFromInt(int64(len(window))))
}
