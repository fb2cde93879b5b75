package stocks

import (
	"fmt"

	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/shopspring/decimal"
)

// PriceRecord is one daily row of a price history.
//
// Close is the canonical price of the day.
type PriceRecord struct {
	Date   date.Date       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// Validate checks that the record has a date and no negative field.
func (r PriceRecord) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: price record without a date", ErrInvalidArgument)
	}
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{{"open", r.Open}, {"high", r.High}, {"low", r.Low}, {"close", r.Close}} {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: negative %s %s on %s", ErrInvalidArgument, f.name, f.value, r.Date)
		}
	}
	if r.Volume < 0 {
		return fmt.Errorf("%w: negative volume %d on %s", ErrInvalidArgument, r.Volume, r.Date)
	}
	return nil
}
