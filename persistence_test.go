package stocks

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// testMarket lists A, B and C priced over the first week of June 2024.
func testMarket() *Market {
	return NewMarket(NewSymbolDirectory("A", "B", "C"), mapFeed{
		"A": rows(map[string]float64{"2024-06-03": 90, "2024-06-04": 100, "2024-06-05": 100, "2024-06-06": 100, "2024-06-07": 100}),
		"B": rows(map[string]float64{"2024-06-03": 210, "2024-06-04": 200, "2024-06-05": 200, "2024-06-06": 200, "2024-06-07": 200}),
		"C": rows(map[string]float64{"2024-06-05": 50, "2024-06-06": 50, "2024-06-07": 50}),
	})
}

// trade builds a portfolio with a buy, a sell and a rebalance.
func trade(t *testing.T, r *Registry, name string) *Portfolio {
	t.Helper()
	ctx := context.Background()
	p, err := r.Create(name)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	a, _ := r.Stock(ctx, "A")
	b, _ := r.Stock(ctx, "B")
	c, _ := r.Stock(ctx, "C")
	for _, err := range []error{
		p.Add(b, D(5), day("2024-06-03")),
		p.Add(a, D(10), day("2024-06-03")),
		p.Remove(a, D(2), day("2024-06-04")),
		p.Rebalance(day("2024-06-06"), []Allocation{{b, 60}, {c, 40}}),
	} {
		if err != nil {
			t.Fatalf("trading error = %v", err)
		}
	}
	return p
}

func TestJournalRoundTrip(t *testing.T) {
	p := trade(t, NewRegistry(testMarket()), "p")

	var buf bytes.Buffer
	if err := EncodeJournal(&buf, p.Transactions()); err != nil {
		t.Fatalf("EncodeJournal() error = %v", err)
	}
	if lines := strings.Count(buf.String(), "\n"); lines != 4 {
		t.Errorf("journal has %d lines, want 4:\n%s", lines, buf.String())
	}
	first, _, _ := strings.Cut(buf.String(), "\n")
	if want := `{"kind":"buy","date":"2024-06-03","symbol":"B","shares":5}`; first != want {
		t.Errorf("first line = %s, want %s", first, want)
	}

	txs, err := DecodeJournal(&buf)
	if err != nil {
		t.Fatalf("DecodeJournal() error = %v", err)
	}
	if !slices.EqualFunc(txs, p.Transactions(), Transaction.Equal) {
		t.Errorf("DecodeJournal() = %v, want %v", txs, p.Transactions())
	}

	restored, err := RestoreJournal(context.Background(), testMarket(), "p", txs)
	if err != nil {
		t.Fatalf("RestoreJournal() error = %v", err)
	}
	if !restored.holdings.equal(p.holdings) {
		t.Errorf("restored holdings = %v, want %v", holdingsOf(restored.Holdings()), holdingsOf(p.Holdings()))
	}
	past, _ := restored.CompositionOnDate(day("2024-06-04"))
	assertHoldings(t, past, "B", 5.0, "A", 8.0)
}

func TestDecodeJournalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "buy A 10\n"},
		{"unknown kind", `{"kind":"gift","date":"2024-06-03","symbol":"A","shares":1}`},
		{"bad date", `{"kind":"buy","date":"06/03/2024","symbol":"A","shares":1}`},
		{"no shares", `{"kind":"buy","date":"2024-06-03","symbol":"A","shares":0}`},
		{"no symbol", `{"kind":"sell","date":"2024-06-03","shares":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeJournal(strings.NewReader(tt.input)); err == nil {
				t.Errorf("DecodeJournal(%s) succeeded, want an error", tt.input)
			}
		})
	}

	txs, err := DecodeJournal(strings.NewReader("\n" + `{"kind":"buy","date":"2024-06-03","symbol":"a","shares":1.5}` + "\n\n"))
	if err != nil || len(txs) != 1 || txs[0].Symbol() != "A" {
		t.Errorf("DecodeJournal(blank lines) = %v, %v", txs, err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	p := trade(t, NewRegistry(testMarket()), "p")
	s, err := p.Snapshot(day("2024-06-07"))
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, s); err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}
	got, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if got.Name != "p" || got.Date != day("2024-06-07") || len(got.Holdings) != len(s.Holdings) {
		t.Fatalf("DecodeSnapshot() = %+v, want %+v", got, s)
	}
	for i, h := range got.Holdings {
		if h.Index != i || h.Symbol != s.Holdings[i].Symbol || !h.Shares.Equal(s.Holdings[i].Shares) {
			t.Errorf("holding %d = %+v, want %+v", i, h, s.Holdings[i])
		}
	}

	restored, err := got.Portfolio(context.Background(), testMarket())
	if err != nil {
		t.Fatalf("Portfolio() error = %v", err)
	}
	if !restored.holdings.equal(p.holdings) {
		t.Errorf("restored holdings = %v, want %v", holdingsOf(restored.Holdings()), holdingsOf(p.Holdings()))
	}
}

func TestDecodeSnapshot(t *testing.T) {
	const unordered = `{"portfolio":{"name":"p","date":"2024-06-07","holdings":[
		{"index":1,"symbol":"B","shares":3,"value":600},
		{"index":0,"symbol":"A","shares":2,"value":200}]}}`
	s, err := DecodeSnapshot(strings.NewReader(unordered))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if s.Holdings[0].Symbol != "A" || s.Holdings[1].Symbol != "B" {
		t.Errorf("DecodeSnapshot() holdings = %+v, want sorted by index", s.Holdings)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"no root", `{"name":"p","date":"2024-06-07","holdings":[]}`},
		{"no name", `{"portfolio":{"date":"2024-06-07","holdings":[]}}`},
		{"no date", `{"portfolio":{"name":"p","holdings":[]}}`},
		{"index gap", `{"portfolio":{"name":"p","date":"2024-06-07","holdings":[{"index":1,"symbol":"A","shares":1}]}}`},
		{"no symbol", `{"portfolio":{"name":"p","date":"2024-06-07","holdings":[{"index":0,"shares":1}]}}`},
		{"negative shares", `{"portfolio":{"name":"p","date":"2024-06-07","holdings":[{"index":0,"symbol":"A","shares":-1}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSnapshot(strings.NewReader(tt.input)); err == nil {
				t.Errorf("DecodeSnapshot(%s) succeeded, want an error", tt.input)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(testMarket())
	if _, err := r.Create("growth"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := r.Create("growth"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Create(duplicate) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := r.Create(" "); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Create(blank) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := r.Get("income"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}

	if err := r.Rename("growth", "value"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if p, err := r.Get("value"); err != nil || p.Name() != "value" {
		t.Errorf("Get(value) = %v, %v", p, err)
	}
	if _, err := r.Get("growth"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(growth) after rename error = %v, want ErrNotFound", err)
	}
	_, _ = r.Create("income")
	if err := r.Rename("income", "value"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Rename(onto existing) error = %v, want ErrInvalidArgument", err)
	}
	if got := r.Names(); !slices.Equal(got, []string{"income", "value"}) {
		t.Errorf("Names() = %v", got)
	}
	if err := r.Delete("income"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestRegistrySaveLoad(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry(testMarket())
	p := trade(t, r, "retirement")
	if err := r.Save("retirement", dir, day("2024-06-07")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	names, err := FindPortfolios(dir)
	if err != nil || !slices.Equal(names, []string{"retirement"}) {
		t.Errorf("FindPortfolios() = %v, %v", names, err)
	}

	// Journal
	loaded, err := NewRegistry(testMarket()).Load(context.Background(), "retirement", dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.EqualFunc(loaded.Transactions(), p.Transactions(), Transaction.Equal) {
		t.Errorf("Load() transactions = %v, want %v", loaded.Transactions(), p.Transactions())
	}

	// Snapshot only
	if err := os.Remove(filepath.Join(dir, "retirement.jsonl")); err != nil {
		t.Fatal(err)
	}
	loaded, err = NewRegistry(testMarket()).Load(context.Background(), "retirement", dir)
	if err != nil {
		t.Fatalf("Load(snapshot) error = %v", err)
	}
	if !loaded.holdings.equal(p.holdings) {
		t.Errorf("Load(snapshot) holdings = %v, want %v", holdingsOf(loaded.Holdings()), holdingsOf(p.Holdings()))
	}
	if n := len(loaded.Transactions()); n != len(p.Holdings()) {
		t.Errorf("Load(snapshot) has %d transactions, want one buy per holding", n)
	}

	if _, err := NewRegistry(testMarket()).Load(context.Background(), "missing", dir); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
	if err := r.Save("missing", dir, day("2024-06-07")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Save(missing) error = %v, want ErrNotFound", err)
	}
}

func TestRemoveSaved(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry(testMarket())
	trade(t, r, "p")
	if err := r.Save("p", dir, day("2024-06-07")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := RemoveSaved("p", dir); err != nil {
		t.Fatalf("RemoveSaved() error = %v", err)
	}
	if names, _ := FindPortfolios(dir); len(names) != 0 {
		t.Errorf("FindPortfolios() = %v after RemoveSaved, want none", names)
	}
	if err := RemoveSaved("p", dir); err != nil {
		t.Errorf("RemoveSaved(missing) error = %v", err)
	}
}
