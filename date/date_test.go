package date

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Date
		err   bool
	}{
		{"2025-01-15", New(2025, time.January, 15), false},
		{"2024-02-29", New(2024, time.February, 29), false},
		{"2025-7-1", Date{}, true},
		{"2023-02-29", Date{}, true},
		{"15/01/2025", Date{}, true},
		{"", Date{}, true},
		{"invalid-date", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if err != nil && !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidFormat", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2024, time.March, 0), New(2024, time.February, 29); got != want {
		t.Errorf("New(2024, 3, 0) = %v, want %v", got, want)
	}
	if got, want := New(2024, time.December, 31).Add(1), New(2025, time.January, 1); got != want {
		t.Errorf("Add(1) = %v, want %v", got, want)
	}
}

func TestCompare(t *testing.T) {
	a, b := MustParse("2024-06-07"), MustParse("2024-06-08")
	if !a.Before(b) || a.After(b) || a.Compare(a) != 0 {
		t.Errorf("Compare(%v, %v) inconsistent", a, b)
	}
	if got := MustParse("2024-06-08").Weekday(); got != time.Saturday {
		t.Errorf("Weekday() = %v, want Saturday", got)
	}
}

func TestJSON(t *testing.T) {
	var got struct {
		On Date `json:"on"`
	}
	if err := json.Unmarshal([]byte(`{"on":"2021-01-31"}`), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.On != New(2021, time.January, 31) {
		t.Errorf("Unmarshal() = %v", got.On)
	}
	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"on":"2021-01-31"}` {
		t.Errorf("Marshal() = %s", data)
	}
}

func TestRange(t *testing.T) {
	r := NewRange(MustParse("2024-06-10"), MustParse("2024-06-07"))
	if r.From != MustParse("2024-06-07") {
		t.Errorf("NewRange() did not swap bounds: %v", r)
	}
	if !r.Contains(MustParse("2024-06-10")) || r.Contains(MustParse("2024-06-11")) {
		t.Errorf("Contains() boundaries wrong for %v", r)
	}
	if r.Days() != 4 {
		t.Errorf("Days() = %d, want 4", r.Days())
	}
}
