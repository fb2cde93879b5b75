package stocks

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MarshalJSON writes the kind and date first, then the kind specific fields.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", t.kind)
	w.Append("date", t.date)
	if t.kind == KindRebalance {
		holdings := t.holdings
		if holdings == nil {
			holdings = map[string]decimal.Decimal{}
		}
		w.Append("holdings", holdings)
	} else {
		w.Append("symbol", t.symbol)
		w.Append("shares", t.shares)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		Kind     Kind                       `json:"kind"`
		Date     date.Date                  `json:"date"`
		Symbol   string                     `json:"symbol"`
		Shares   decimal.Decimal            `json:"shares"`
		Holdings map[string]decimal.Decimal `json:"holdings"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	switch temp.Kind {
	case KindBuy:
		*t = NewBuy(temp.Date, temp.Symbol, temp.Shares)
	case KindSell:
		*t = NewSell(temp.Date, temp.Symbol, temp.Shares)
	case KindRebalance:
		*t = NewRebalance(temp.Date, temp.Holdings)
	default:
		return fmt.Errorf("unknown transaction kind: %q", temp.Kind)
	}
	return nil
}

// EncodeJournal writes the transactions in JSONL format, one per line.
func EncodeJournal(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		data, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction %v: %w", tx, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write transaction: %w", err)
		}
	}
	return nil
}

// DecodeJournal reads transactions written by EncodeJournal. Empty lines are skipped.
func DecodeJournal(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var tx Transaction
		if err := json.Unmarshal(lineBytes, &tx); err != nil {
			return nil, fmt.Errorf("line %d: could not decode transaction %q: %w", line, string(lineBytes), err)
		}
		if err := tx.validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return txs, nil
}

// RestoreJournal rebuilds a portfolio by replaying txs, in order, with the
// stocks of market.
func RestoreJournal(ctx context.Context, market *Market, name string, txs []Transaction) (*Portfolio, error) {
	p := NewPortfolio(name)
	for i, tx := range txs {
		symbols := tx.Symbols()
		stocks := make([]*Stock, 0, len(symbols))
		for _, symbol := range symbols {
			s, err := market.Stock(ctx, symbol)
			if err != nil {
				return nil, fmt.Errorf("transaction %d of %q: %w", i+1, name, err)
			}
			stocks = append(stocks, s)
		}
		if err := p.commit(tx, stocks...); err != nil {
			return nil, fmt.Errorf("transaction %d of %q: %w", i+1, name, err)
		}
	}
	return p, nil
}
