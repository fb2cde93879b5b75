package stocks

import (
	"errors"
	"testing"
)

// week is a series over the trading days around the first weekend of June 2024.
var week = map[string]float64{
	"2024-06-03": 10, // Monday
	"2024-06-04": 12,
	"2024-06-05": 11,
	"2024-06-06": 13,
	"2024-06-07": 9, // Friday
	"2024-06-10": 14,
}

func TestResolve(t *testing.T) {
	s := closes(t, week)

	tests := []struct {
		on   string
		want string
	}{
		{"2024-06-07", "2024-06-07"}, // exact match
		{"2024-06-08", "2024-06-07"}, // Saturday
		{"2024-06-09", "2024-06-07"}, // Sunday
		{"2024-06-10", "2024-06-10"},
		{"2024-06-11", "2024-06-10"}, // after the newest record
		{"2024-06-03", "2024-06-03"}, // oldest
	}
	for _, tt := range tests {
		t.Run(tt.on, func(t *testing.T) {
			got, err := s.Resolve(day(tt.on))
			if err != nil {
				t.Fatalf("Resolve(%s) error = %v", tt.on, err)
			}
			if got != day(tt.want) {
				t.Errorf("Resolve(%s) = %v, want %s", tt.on, got, tt.want)
			}
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	s := closes(t, week)
	for on := day("2024-06-03"); !on.After(day("2024-06-20")); on = on.Add(1) {
		first, err := s.Resolve(on)
		if err != nil {
			t.Fatalf("Resolve(%s) error = %v", on, err)
		}
		second, err := s.Resolve(first)
		if err != nil {
			t.Fatalf("Resolve(%s) error = %v", first, err)
		}
		if first != second {
			t.Errorf("Resolve(Resolve(%s)) = %s, want %s", on, second, first)
		}
	}
}

func TestResolveHolidays(t *testing.T) {
	tests := []struct {
		name   string
		prices map[string]float64
		on     string
		want   string
	}{
		{
			name:   "christmas",
			prices: map[string]float64{"2023-12-21": 1, "2023-12-22": 2},
			on:     "2023-12-26",
			want:   "2023-12-22",
		},
		{
			name:   "new year",
			prices: map[string]float64{"2023-12-28": 1, "2023-12-29": 2},
			on:     "2024-01-02",
			want:   "2023-12-29",
		},
		{
			// The holiday rule applies even when the day has a record.
			name:   "christmas overshoot",
			prices: map[string]float64{"2023-12-22": 1, "2023-12-25": 2},
			on:     "2023-12-26",
			want:   "2023-12-22",
		},
		{
			name:   "holiday requested directly",
			prices: map[string]float64{"2023-12-22": 1, "2023-12-25": 2},
			on:     "2023-12-25",
			want:   "2023-12-25",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := closes(t, tt.prices).Resolve(day(tt.on))
			if err != nil {
				t.Fatalf("Resolve(%s) error = %v", tt.on, err)
			}
			if got != day(tt.want) {
				t.Errorf("Resolve(%s) = %v, want %s", tt.on, got, tt.want)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	fixedToday(t, "2024-06-12")
	s := closes(t, week)

	if _, err := s.Resolve(day("2024-06-02")); !errors.Is(err, ErrNoMarketData) {
		t.Errorf("Resolve(before oldest) error = %v, want ErrNoMarketData", err)
	}
	if _, err := s.Resolve(day("2024-06-13")); !errors.Is(err, ErrFutureDate) {
		t.Errorf("Resolve(tomorrow) error = %v, want ErrFutureDate", err)
	}
	if got, err := s.Resolve(day("2024-06-12")); err != nil || got != day("2024-06-10") {
		t.Errorf("Resolve(today) = %v, %v want 2024-06-10", got, err)
	}

	empty, err := NewPriceSeries(nil)
	if err != nil {
		t.Fatalf("NewPriceSeries(nil) error = %v", err)
	}
	if _, err := empty.Resolve(day("2024-06-10")); !errors.Is(err, ErrNoMarketData) {
		t.Errorf("empty.Resolve() error = %v, want ErrNoMarketData", err)
	}
}

func TestResolveCustomCalendar(t *testing.T) {
	// Without rules the walk visits every calendar day.
	s := closes(t, map[string]float64{"2023-12-25": 1, "2023-12-22": 2}).WithCalendar(Calendar{})
	got, err := s.Resolve(day("2023-12-26"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != day("2023-12-25") {
		t.Errorf("Resolve() = %v, want 2023-12-25", got)
	}
}

func TestNewPriceSeries(t *testing.T) {
	s := closes(t, week)
	if s.Len() != 6 {
		t.Errorf("Len() = %d, want 6", s.Len())
	}
	if s.Newest() != day("2024-06-10") || s.Oldest() != day("2024-06-03") {
		t.Errorf("Newest(), Oldest() = %v, %v", s.Newest(), s.Oldest())
	}
	var prev PriceRecord
	for r := range s.Records() {
		if !prev.Date.IsZero() && !r.Date.Before(prev.Date) {
			t.Errorf("Records() not in descending order: %v after %v", r.Date, prev.Date)
		}
		prev = r
	}

	dup := []PriceRecord{{Date: day("2024-06-03"), Close: D(1)}, {Date: day("2024-06-03"), Close: D(2)}}
	if _, err := NewPriceSeries(dup); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewPriceSeries(duplicates) error = %v, want ErrInvalidArgument", err)
	}
	negative := []PriceRecord{{Date: day("2024-06-03"), Close: D(-1)}}
	if _, err := NewPriceSeries(negative); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewPriceSeries(negative) error = %v, want ErrInvalidArgument", err)
	}
}

func TestPriceOnDate(t *testing.T) {
	s := closes(t, week)
	got, err := s.PriceOnDate(day("2024-06-09"))
	if err != nil {
		t.Fatalf("PriceOnDate() error = %v", err)
	}
	if !got.Equal(D(9)) {
		t.Errorf("PriceOnDate(Sunday) = %v, want 9", got)
	}
}
