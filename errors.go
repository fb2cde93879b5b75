package stocks

import (
	"errors"

	"github.com/annahallx127/HW4Stocks-sub000/date"
)

// Errors returned by this package. Callers test them with errors.Is; the
// returned errors wrap them with the offending values.
var (
	ErrInvalidDateFormat     = date.ErrInvalidFormat
	ErrFutureDate            = errors.New("date is in the future")
	ErrInvalidRange          = errors.New("invalid date range")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrNoMarketData          = errors.New("no market data")
	ErrNoSuchSymbol          = errors.New("no such symbol")
	ErrNotHeld               = errors.New("stock not held")
	ErrInsufficientShares    = errors.New("insufficient shares")
	ErrNotFound              = errors.New("portfolio not found")
	ErrInternalInconsistency = errors.New("internal inconsistency")
)
