package stocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// PriceFeed supplies the cached daily rows of a symbol.
//
// A feed reports a symbol it has no rows for with an error wrapping ErrNoSuchSymbol.
type PriceFeed interface {
	Rows(ctx context.Context, symbol string) ([]PriceRecord, error)
}

// Market builds stocks for listed symbols from a price feed.
//
// Each stock is built once and shared by every caller.
type Market struct {
	directory SymbolDirectory
	feed      PriceFeed

	mu     sync.Mutex
	stocks map[string]*Stock
}

// NewMarket returns a market of the symbols in directory, priced by feed.
func NewMarket(directory SymbolDirectory, feed PriceFeed) *Market {
	return &Market{
		directory: directory,
		feed:      feed,
		stocks:    make(map[string]*Stock),
	}
}

// IsValidSymbol reports whether symbol is listed.
func (m *Market) IsValidSymbol(symbol string) bool { return m.directory.Contains(symbol) }

// Directory returns the listed symbols.
func (m *Market) Directory() SymbolDirectory { return m.directory }

// Stock returns the stock for symbol.
func (m *Market) Stock(ctx context.Context, symbol string) (*Stock, error) {
	symbol = NormalizeSymbol(symbol)
	if !m.directory.Contains(symbol) {
		return nil, fmt.Errorf("%w: %q is not listed", ErrNoSuchSymbol, symbol)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stocks[symbol]; ok {
		return s, nil
	}

	rows, err := m.feed.Rows(ctx, symbol)
	if errors.Is(err, ErrNoSuchSymbol) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read prices of %q: %w", symbol, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no price data for %q", ErrNoSuchSymbol, symbol)
	}
	series, err := NewPriceSeries(rows)
	if err != nil {
		return nil, fmt.Errorf("invalid prices for %q: %w", symbol, err)
	}
	s := NewStock(symbol, series)
	m.stocks[symbol] = s
	logger.Debug().Str("symbol", symbol).Int("records", series.Len()).
		Stringer("oldest", series.Oldest()).Stringer("newest", series.Newest()).Msg("stock loaded")
	return s, nil
}
