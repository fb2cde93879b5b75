package stocks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/shopspring/decimal"
)

// Snapshot is the persisted form of a portfolio's holdings on a save date.
//
// Value is informative only: a portfolio is restored from Symbol and Shares.
type Snapshot struct {
	Name     string            `json:"name"`
	Date     date.Date         `json:"date"`
	Holdings []SnapshotHolding `json:"holdings"`
}

// SnapshotHolding is one holding of a Snapshot. Index is its 0-based rank.
type SnapshotHolding struct {
	Index  int             `json:"index"`
	Symbol string          `json:"symbol"`
	Shares decimal.Decimal `json:"shares"`
	Value  decimal.Decimal `json:"value"`
}

// Snapshot returns the current holdings of the portfolio valued on day.
func (p *Portfolio) Snapshot(day date.Date) (Snapshot, error) {
	values, err := p.HoldingValues(day)
	if err != nil {
		return Snapshot{}, err
	}
	s := Snapshot{Name: p.name, Date: day, Holdings: make([]SnapshotHolding, 0, len(values))}
	for i, v := range values {
		s.Holdings = append(s.Holdings, SnapshotHolding{
			Index:  i,
			Symbol: v.Stock.Symbol(),
			Shares: v.Shares,
			Value:  v.Value,
		})
	}
	return s, nil
}

// Portfolio rebuilds the portfolio saved in s: each holding is bought on the save date,
// in index order.
func (s Snapshot) Portfolio(ctx context.Context, market *Market) (*Portfolio, error) {
	p := NewPortfolio(s.Name)
	for _, h := range s.Holdings {
		if h.Shares.IsZero() {
			continue
		}
		stock, err := market.Stock(ctx, h.Symbol)
		if err != nil {
			return nil, fmt.Errorf("cannot restore holding %d of %q: %w", h.Index, s.Name, err)
		}
		if err := p.Add(stock, h.Shares, s.Date); err != nil {
			return nil, fmt.Errorf("cannot restore holding %d of %q: %w", h.Index, s.Name, err)
		}
	}
	return p, nil
}

// snapshotFile is the root of the persisted document.
type snapshotFile struct {
	Portfolio *Snapshot `json:"portfolio"`
}

// EncodeSnapshot writes s as an indented JSON document.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshotFile{Portfolio: &s}); err != nil {
		return fmt.Errorf("cannot encode snapshot of %q: %w", s.Name, err)
	}
	return nil
}

// DecodeSnapshot reads a document written by EncodeSnapshot. Holdings are
// returned sorted by index.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var f snapshotFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Snapshot{}, fmt.Errorf("format error: %w", err)
	}
	if f.Portfolio == nil {
		return Snapshot{}, fmt.Errorf("format error: missing %q root", "portfolio")
	}
	s := *f.Portfolio
	if s.Name == "" {
		return Snapshot{}, fmt.Errorf("format error: portfolio without a name")
	}
	if s.Date.IsZero() {
		return Snapshot{}, fmt.Errorf("format error: portfolio %q without a save date", s.Name)
	}

	slices.SortStableFunc(s.Holdings, func(a, b SnapshotHolding) int { return a.Index - b.Index })
	for i, h := range s.Holdings {
		if h.Index != i {
			return Snapshot{}, fmt.Errorf("format error: portfolio %q holding indexes are not a 0-based sequence, got %d at rank %d", s.Name, h.Index, i)
		}
		if h.Symbol == "" {
			return Snapshot{}, fmt.Errorf("format error: portfolio %q holding %d has no symbol", s.Name, h.Index)
		}
		if h.Shares.IsNegative() {
			return Snapshot{}, fmt.Errorf("format error: portfolio %q holding %d has negative shares %s", s.Name, h.Index, h.Shares)
		}
	}
	return s, nil
}
