package stocks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/annahallx127/HW4Stocks-sub000/date"
)

const (
	journalExt  = ".jsonl"
	snapshotExt = ".json"
)

// Registry owns the portfolios of a session, by name, and the market their stocks
// come from.
type Registry struct {
	market     *Market
	portfolios map[string]*Portfolio
}

// NewRegistry returns an empty registry of portfolios priced by market.
func NewRegistry(market *Market) *Registry {
	return &Registry{market: market, portfolios: make(map[string]*Portfolio)}
}

// Market returns the market stocks are taken from.
func (r *Registry) Market() *Market { return r.market }

// Stock returns the stock of a listed symbol.
func (r *Registry) Stock(ctx context.Context, symbol string) (*Stock, error) {
	return r.market.Stock(ctx, symbol)
}

// Create registers a new empty portfolio.
func (r *Registry) Create(name string) (*Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty portfolio name", ErrInvalidArgument)
	}
	if _, exists := r.portfolios[name]; exists {
		return nil, fmt.Errorf("%w: portfolio %q already exists", ErrInvalidArgument, name)
	}
	p := NewPortfolio(name)
	r.portfolios[name] = p
	return p, nil
}

// Get returns a registered portfolio.
func (r *Registry) Get(name string) (*Portfolio, error) {
	p, ok := r.portfolios[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p, nil
}

// Names returns the registered portfolio names in alphabetical order.
func (r *Registry) Names() []string { return slices.Sorted(maps.Keys(r.portfolios)) }

// Delete drops a portfolio from the registry.
func (r *Registry) Delete(name string) error {
	if _, err := r.Get(name); err != nil {
		return err
	}
	delete(r.portfolios, strings.TrimSpace(name))
	return nil
}

// Rename renames a registered portfolio.
func (r *Registry) Rename(oldName, newName string) error {
	p, err := r.Get(oldName)
	if err != nil {
		return err
	}
	newName = strings.TrimSpace(newName)
	if _, exists := r.portfolios[newName]; exists {
		return fmt.Errorf("%w: portfolio %q already exists", ErrInvalidArgument, newName)
	}
	if err := p.Rename(newName); err != nil {
		return err
	}
	delete(r.portfolios, strings.TrimSpace(oldName))
	r.portfolios[newName] = p
	return nil
}

// Load reads the portfolio name from the folder dir and registers it.
//
// The journal "<name>.jsonl" is preferred as it restores the whole history; the
// snapshot "<name>.json" restores the holdings only, bought on the save date.
func (r *Registry) Load(ctx context.Context, name, dir string) (*Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty portfolio name", ErrInvalidArgument)
	}

	p, err := r.loadJournal(ctx, name, filepath.Join(dir, name+journalExt))
	if errors.Is(err, fs.ErrNotExist) {
		p, err = r.loadSnapshot(ctx, filepath.Join(dir, name+snapshotExt))
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q in %q", ErrNotFound, name, dir)
	}
	if err != nil {
		return nil, err
	}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	r.portfolios[name] = p
	logger.Debug().Str("portfolio", name).Str("dir", dir).Int("transactions", len(p.transactions)).Msg("portfolio loaded")
	return p, nil
}

func (r *Registry) loadJournal(ctx context.Context, name, path string) (*Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	txs, err := DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode journal %q: %w", path, err)
	}
	return RestoreJournal(ctx, r.market, name, txs)
}

func (r *Registry) loadSnapshot(ctx context.Context, path string) (*Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode snapshot %q: %w", path, err)
	}
	return s.Portfolio(ctx, r.market)
}

// Save writes the journal and the snapshot, valued on day, of the portfolio name
// into the folder dir.
func (r *Registry) Save(name, dir string, day date.Date) error {
	p, err := r.Get(name)
	if err != nil {
		return err
	}
	s, err := p.Snapshot(day)
	if err != nil {
		return fmt.Errorf("cannot value portfolio %q on %s: %w", p.name, day, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory %q: %w", dir, err)
	}
	if err := writeFile(filepath.Join(dir, p.name+journalExt), func(f *os.File) error {
		return EncodeJournal(f, p.transactions)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(dir, p.name+snapshotExt), func(f *os.File) error {
		return EncodeSnapshot(f, s)
	}); err != nil {
		return err
	}
	logger.Debug().Str("portfolio", p.name).Str("dir", dir).Stringer("date", day).Msg("portfolio saved")
	return nil
}

// writeFile writes path through a temporary file renamed on success.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error opening %q for writing: %w", path, err)
	}
	defer os.Remove(f.Name())

	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("error writing %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error writing %q: %w", path, err)
	}
	return os.Rename(f.Name(), path)
}

// RemoveSaved deletes the files of the portfolio name saved in dir. Missing
// files are ignored.
func RemoveSaved(name, dir string) error {
	for _, ext := range []string{journalExt, snapshotExt} {
		if err := os.Remove(filepath.Join(dir, name+ext)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// FindPortfolios returns the names of the portfolios saved in dir.
func FindPortfolios(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, ext := range []string{journalExt, snapshotExt} {
			if strings.HasSuffix(e.Name(), ext) {
				names[strings.TrimSuffix(e.Name(), ext)] = true
			}
		}
	}
	return slices.Sorted(maps.Keys(names)), nil
}
