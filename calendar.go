package stocks

import (
	"time"

	"github.com/annahallx127/HW4Stocks-sub000/date"
)

// CalendarRule moves a candidate day of the backward walk off a day the market
// is known to be closed.
type CalendarRule interface {
	Adjust(day date.Date) date.Date
}

// Calendar is an ordered list of rules applied, in order, to every candidate day
// of the backward walk performed by PriceSeries.Resolve.
type Calendar []CalendarRule

// DefaultCalendar maps weekends to the preceding Friday, then steps back three
// more days from Christmas and New Year's day.
var DefaultCalendar = Calendar{
	WeekendRule{},
	HolidayRule{Month: time.December, Day: 25, Back: 3},
	HolidayRule{Month: time.January, Day: 1, Back: 3},
}

// previous returns the candidate that follows day in a backward walk.
func (c Calendar) previous(day date.Date) date.Date {
	day = day.Add(-1)
	for _, rule := range c {
		day = rule.Adjust(day)
	}
	return day
}

// WeekendRule maps Saturday and Sunday to the preceding Friday.
type WeekendRule struct{}

func (WeekendRule) Adjust(day date.Date) date.Date {
	switch day.Weekday() {
	case time.Saturday:
		return day.Add(-1)
	case time.Sunday:
		return day.Add(-2)
	}
	return day
}

// HolidayRule steps back a fixed number of days when the candidate falls on a
// given day of the year.
//
// It is applied whether or not the series has a record that day.
type HolidayRule struct {
	Month time.Month
	Day   int
	Back  int
}

func (h HolidayRule) Adjust(day date.Date) date.Date {
	if day.Month() == h.Month && day.Day() == h.Day {
		return day.Add(-h.Back)
	}
	return day
}
