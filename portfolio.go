package stocks

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/shopspring/decimal"
)

// reconciliationTolerance is the largest accepted gap between a total value and
// the sum of the holding values it is made of.
var reconciliationTolerance = decimal.New(1, -4)

// Portfolio is a named set of stock holdings and the chronological log of the
// transactions that produced them.
//
// Holdings are only changed by Add, Remove and Rebalance. A Portfolio is not safe
// for concurrent mutation.
type Portfolio struct {
	name         string
	stocks       map[string]*Stock // every stock ever traded, by symbol
	holdings     holdings
	transactions []Transaction
}

// Holding is the number of shares held of a stock.
type Holding struct {
	Stock  *Stock
	Shares decimal.Decimal
}

// HoldingValue is a holding valued on a date.
type HoldingValue struct {
	Holding
	Price decimal.Decimal
	Value decimal.Decimal
}

// NewPortfolio returns an empty portfolio.
func NewPortfolio(name string) *Portfolio {
	return &Portfolio{
		name:     strings.TrimSpace(name),
		stocks:   make(map[string]*Stock),
		holdings: newHoldings(),
	}
}

func (p *Portfolio) Name() string { return p.name }

// Rename changes the name of the portfolio.
func (p *Portfolio) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty portfolio name", ErrInvalidArgument)
	}
	p.name = name
	return nil
}

// Holdings returns the current holdings, in the order stocks were first held.
func (p *Portfolio) Holdings() []Holding { return p.list(p.holdings) }

// Stocks returns the stocks currently held, in the order they were first held.
func (p *Portfolio) Stocks() []*Stock {
	list := make([]*Stock, 0, len(p.holdings.order))
	for _, symbol := range p.holdings.order {
		list = append(list, p.stocks[symbol])
	}
	return list
}

// Shares returns the number of shares currently held of symbol.
func (p *Portfolio) Shares(symbol string) decimal.Decimal {
	return p.holdings.get(NormalizeSymbol(symbol))
}

// Transactions returns a copy of the transaction log, in chronological order.
func (p *Portfolio) Transactions() []Transaction { return slices.Clone(p.transactions) }

// LastTransactionDate returns the date of the latest transaction, or the zero date.
func (p *Portfolio) LastTransactionDate() date.Date {
	if len(p.transactions) == 0 {
		return date.Date{}
	}
	return p.transactions[len(p.transactions)-1].date
}

func (p *Portfolio) list(h holdings) []Holding {
	list := make([]Holding, 0, len(h.order))
	for _, symbol := range h.order {
		list = append(list, Holding{Stock: p.stocks[symbol], Shares: h.shares[symbol]})
	}
	return list
}

// Add buys shares of stock on day.
func (p *Portfolio) Add(stock *Stock, shares decimal.Decimal, day date.Date) error {
	if stock == nil {
		return fmt.Errorf("%w: no stock to add", ErrInvalidArgument)
	}
	if !shares.IsPositive() {
		return fmt.Errorf("%w: shares to add must be positive, got %s", ErrInvalidArgument, shares)
	}
	return p.commit(NewBuy(day, stock.Symbol(), shares), stock)
}

// Remove sells shares of stock on day.
func (p *Portfolio) Remove(stock *Stock, shares decimal.Decimal, day date.Date) error {
	if stock == nil {
		return fmt.Errorf("%w: no stock to remove", ErrInvalidArgument)
	}
	if !shares.IsPositive() {
		return fmt.Errorf("%w: shares to remove must be positive, got %s", ErrInvalidArgument, shares)
	}
	held, ok := p.holdings.shares[stock.Symbol()]
	if !ok {
		return fmt.Errorf("%w: %s is not in portfolio %q", ErrNotHeld, stock.Symbol(), p.name)
	}
	if shares.GreaterThan(held) {
		return fmt.Errorf("%w: cannot remove %s %s from portfolio %q holding %s", ErrInsufficientShares, shares, stock.Symbol(), p.name, held)
	}
	return p.commit(NewSell(day, stock.Symbol(), shares), stock)
}

// Allocation is the target weight of a stock, in percent of the portfolio value.
type Allocation struct {
	Stock   *Stock
	Percent int
}

// Rebalance resets holdings so that each targeted stock is worth its percent of
// the portfolio value on day. Stocks not targeted are sold entirely.
//
// Percents are not required to sum to 100.
func (p *Portfolio) Rebalance(day date.Date, targets []Allocation) error {
	if err := p.checkDate(day); err != nil {
		return err
	}
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		switch {
		case t.Stock == nil:
			return fmt.Errorf("%w: rebalance target without a stock", ErrInvalidArgument)
		case t.Percent < 0:
			return fmt.Errorf("%w: negative weight %d%% for %s", ErrInvalidArgument, t.Percent, t.Stock.Symbol())
		case seen[t.Stock.Symbol()]:
			return fmt.Errorf("%w: %s targeted twice", ErrInvalidArgument, t.Stock.Symbol())
		}
		seen[t.Stock.Symbol()] = true
	}

	total, err := p.ValueOnDate(day)
	if err != nil {
		return fmt.Errorf("cannot value portfolio %q: %w", p.name, err)
	}

	result := make(map[string]decimal.Decimal, len(targets))
	stocks := make([]*Stock, 0, len(targets))
	for _, t := range targets {
		price, err := t.Stock.PriceOnDate(day)
		if err != nil {
			return err
		}
		if price.IsZero() {
			return fmt.Errorf("%w: %s has a zero price on %s", ErrNoMarketData, t.Stock.Symbol(), day)
		}
		value := total.Mul(decimal.NewFromInt(int64(t.Percent))).Div(decimal.NewFromInt(100))
		if shares := value.Div(price); shares.IsPositive() {
			result[t.Stock.Symbol()] = shares
		}
		stocks = append(stocks, t.Stock)
	}
	return p.commit(NewRebalance(day, result), stocks...)
}

// checkDate rejects a day before the last logged transaction.
func (p *Portfolio) checkDate(day date.Date) error {
	if day.IsZero() {
		return fmt.Errorf("%w: transaction without a date", ErrInvalidArgument)
	}
	if last := p.LastTransactionDate(); day.Before(last) {
		return fmt.Errorf("%w: %s is before the last transaction of portfolio %q on %s", ErrInvalidArgument, day, p.name, last)
	}
	return nil
}

// commit appends tx to the log and applies it to the holdings, or changes
// nothing at all if any check fails.
func (p *Portfolio) commit(tx Transaction, stocks ...*Stock) error {
	if err := p.checkDate(tx.date); err != nil {
		return err
	}
	if err := tx.validate(); err != nil {
		return err
	}
	next := p.holdings.clone()
	if err := tx.apply(&next); err != nil {
		return err
	}

	txs := append(slices.Clip(p.transactions), tx)
	replayed, err := replay(txs, date.Date{})
	if err != nil {
		return fmt.Errorf("%w: portfolio %q: %w", ErrInternalInconsistency, p.name, err)
	}
	if !replayed.equal(next) {
		return fmt.Errorf("%w: portfolio %q holdings differ from its transaction log", ErrInternalInconsistency, p.name)
	}

	for _, s := range stocks {
		p.stocks[s.Symbol()] = s
	}
	p.holdings, p.transactions = next, txs
	logger.Debug().Str("portfolio", p.name).Str("kind", string(tx.kind)).Stringer("date", tx.date).
		Str("symbol", tx.symbol).Stringer("shares", tx.shares).Int("holdings", len(next.order)).Msg("transaction")
	return nil
}

// HoldingValues values every current holding on day.
func (p *Portfolio) HoldingValues(day date.Date) ([]HoldingValue, error) {
	values := make([]HoldingValue, 0, len(p.holdings.order))
	for _, h := range p.Holdings() {
		price, err := h.Stock.PriceOnDate(day)
		if err != nil {
			return nil, err
		}
		values = append(values, HoldingValue{Holding: h, Price: price, Value: price.Mul(h.Shares)})
	}
	return values, nil
}

// ValueOnDate returns the value of the current holdings on day. Each stock
// resolves day against its own price history.
func (p *Portfolio) ValueOnDate(day date.Date) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, symbol := range p.holdings.order {
		price, err := p.stocks[symbol].PriceOnDate(day)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(price.Mul(p.holdings.shares[symbol]))
	}
	return total, nil
}

// Distribution is the share of each holding in the portfolio value on a date.
type Distribution struct {
	Date    date.Date
	Total   decimal.Decimal
	Entries []DistributionEntry
}

// DistributionEntry is one holding of a Distribution.
type DistributionEntry struct {
	HoldingValue
	Percent Percent
}

// Empty reports that the portfolio was worth nothing, in which case there is no entry.
func (d Distribution) Empty() bool { return d.Total.IsZero() }

// DistributionOnDate returns the percentage of the portfolio value held in each stock on day.
//
// The holding values must add up to the portfolio value, otherwise the
// portfolio is corrupted and ErrInternalInconsistency is returned.
func (p *Portfolio) DistributionOnDate(day date.Date) (Distribution, error) {
	total, err := p.ValueOnDate(day)
	if err != nil {
		return Distribution{}, err
	}
	d := Distribution{Date: day, Total: total}
	if total.IsZero() {
		return d, nil
	}

	values, err := p.HoldingValues(day)
	if err != nil {
		return Distribution{}, err
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v.Value)
		d.Entries = append(d.Entries, DistributionEntry{
			HoldingValue: v,
			Percent:      Percent(v.Value.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()),
		})
	}
	if sum.Sub(total).Abs().GreaterThan(reconciliationTolerance) {
		return Distribution{}, fmt.Errorf("%w: portfolio %q holdings sum to %s but value is %s on %s", ErrInternalInconsistency, p.name, sum, total, day)
	}
	return d, nil
}

// CompositionOnDate returns the holdings as they were at the end of day, replayed
// from the transaction log.
func (p *Portfolio) CompositionOnDate(day date.Date) ([]Holding, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: composition without a date", ErrInvalidArgument)
	}
	h, err := replay(p.transactions, day)
	if err != nil {
		return nil, fmt.Errorf("%w: portfolio %q: %w", ErrInternalInconsistency, p.name, err)
	}
	return p.list(h), nil
}

// Symbols returns the symbols currently held, alphabetically.
func (p *Portfolio) Symbols() []string { return slices.Sorted(maps.Keys(p.holdings.shares)) }
