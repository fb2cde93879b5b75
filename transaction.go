package stocks

import (
	"fmt"
	"maps"
	"slices"

	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/shopspring/decimal"
)

// Kind identifies the type of a Transaction.
type Kind string

// Transaction kinds.
const (
	KindBuy       Kind = "buy"
	KindSell      Kind = "sell"
	KindRebalance Kind = "rebalance"
)

// Transaction is an immutable entry of a portfolio log.
//
// Buy and sell transactions move shares of one symbol. A rebalance transaction
// records the complete set of holdings that resulted from the rebalance.
type Transaction struct {
	kind     Kind
	date     date.Date
	symbol   string
	shares   decimal.Decimal
	holdings map[string]decimal.Decimal
}

// NewBuy returns a buy of shares of symbol on day.
func NewBuy(day date.Date, symbol string, shares decimal.Decimal) Transaction {
	return Transaction{kind: KindBuy, date: day, symbol: NormalizeSymbol(symbol), shares: shares}
}

// NewSell returns a sell of shares of symbol on day.
func NewSell(day date.Date, symbol string, shares decimal.Decimal) Transaction {
	return Transaction{kind: KindSell, date: day, symbol: NormalizeSymbol(symbol), shares: shares}
}

// NewRebalance returns a rebalance on day that leaves exactly holdings.
func NewRebalance(day date.Date, holdings map[string]decimal.Decimal) Transaction {
	h := make(map[string]decimal.Decimal, len(holdings))
	for symbol, shares := range holdings {
		h[NormalizeSymbol(symbol)] = shares
	}
	return Transaction{kind: KindRebalance, date: day, holdings: h}
}

func (t Transaction) Kind() Kind              { return t.kind }
func (t Transaction) Date() date.Date         { return t.date }
func (t Transaction) Symbol() string          { return t.symbol }
func (t Transaction) Shares() decimal.Decimal { return t.shares }

// Holdings returns a copy of the holdings left by a rebalance, nil for other kinds.
func (t Transaction) Holdings() map[string]decimal.Decimal {
	if t.holdings == nil {
		return nil
	}
	return maps.Clone(t.holdings)
}

// Symbols returns the symbols the transaction refers to, in alphabetical order.
func (t Transaction) Symbols() []string {
	if t.kind == KindRebalance {
		return slices.Sorted(maps.Keys(t.holdings))
	}
	return []string{t.symbol}
}

// Equal reports whether both transactions are identical.
func (t Transaction) Equal(o Transaction) bool {
	if t.kind != o.kind || t.date != o.date || t.symbol != o.symbol || !t.shares.Equal(o.shares) {
		return false
	}
	return maps.EqualFunc(t.holdings, o.holdings, decimal.Decimal.Equal)
}

func (t Transaction) String() string {
	if t.kind == KindRebalance {
		return fmt.Sprintf("%s %s %d holdings", t.date, t.kind, len(t.holdings))
	}
	return fmt.Sprintf("%s %s %s %s", t.date, t.kind, t.shares, t.symbol)
}

// validate checks the transaction alone, regardless of any holdings.
func (t Transaction) validate() error {
	if t.date.IsZero() {
		return fmt.Errorf("%w: %s transaction without a date", ErrInvalidArgument, t.kind)
	}
	switch t.kind {
	case KindBuy, KindSell:
		if t.symbol == "" {
			return fmt.Errorf("%w: %s transaction without a symbol", ErrInvalidArgument, t.kind)
		}
		if !t.shares.IsPositive() {
			return fmt.Errorf("%w: %s shares must be positive, got %s", ErrInvalidArgument, t.kind, t.shares)
		}
	case KindRebalance:
		for symbol, shares := range t.holdings {
			if symbol == "" || !shares.IsPositive() {
				return fmt.Errorf("%w: rebalance holding %q with %s shares", ErrInvalidArgument, symbol, shares)
			}
		}
	default:
		return fmt.Errorf("%w: unknown transaction kind %q", ErrInvalidArgument, t.kind)
	}
	return nil
}

// apply applies the transaction to h.
func (t Transaction) apply(h *holdings) error {
	switch t.kind {
	case KindBuy:
		h.set(t.symbol, h.get(t.symbol).Add(t.shares))
	case KindSell:
		held, ok := h.shares[t.symbol]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotHeld, t.symbol)
		}
		if t.shares.GreaterThan(held) {
			return fmt.Errorf("%w: cannot sell %s %s, holding %s", ErrInsufficientShares, t.shares, t.symbol, held)
		}
		h.set(t.symbol, held.Sub(t.shares))
	case KindRebalance:
		// Held symbols keep their rank, new ones are appended alphabetically.
		for _, symbol := range slices.Clone(h.order) {
			h.set(symbol, t.holdings[symbol])
		}
		for _, symbol := range slices.Sorted(maps.Keys(t.holdings)) {
			h.set(symbol, t.holdings[symbol])
		}
	default:
		return fmt.Errorf("%w: unknown transaction kind %q", ErrInvalidArgument, t.kind)
	}
	return nil
}

// holdings is a symbol to shares mapping that remembers the order in which
// symbols were first held. Symbols with no shares are never stored.
type holdings struct {
	order  []string
	shares map[string]decimal.Decimal
}

func newHoldings() holdings { return holdings{shares: make(map[string]decimal.Decimal)} }

func (h holdings) get(symbol string) decimal.Decimal { return h.shares[symbol] }

// set updates the shares of symbol, pruning it at zero.
func (h *holdings) set(symbol string, shares decimal.Decimal) {
	_, held := h.shares[symbol]
	switch {
	case shares.IsZero() && held:
		delete(h.shares, symbol)
		h.order = slices.DeleteFunc(h.order, func(s string) bool { return s == symbol })
	case shares.IsZero():
	case held:
		h.shares[symbol] = shares
	default:
		h.shares[symbol] = shares
		h.order = append(h.order, symbol)
	}
}

func (h holdings) clone() holdings {
	return holdings{order: slices.Clone(h.order), shares: maps.Clone(h.shares)}
}

func (h holdings) equal(o holdings) bool {
	return maps.EqualFunc(h.shares, o.shares, decimal.Decimal.Equal)
}

// replay rebuilds the holdings of the transactions up to and including day.
// A zero day replays the whole log.
func replay(txs []Transaction, day date.Date) (holdings, error) {
	h := newHoldings()
	for _, tx := range txs {
		if !day.IsZero() && tx.date.After(day) {
			break
		}
		if err := tx.apply(&h); err != nil {
			return holdings{}, fmt.Errorf("replaying %v: %w", tx, err)
		}
	}
	return h, nil
}
