package stocks

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// NormalizeSymbol returns the canonical form of a ticker symbol.
func NormalizeSymbol(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

// SymbolDirectory is the immutable set of listed symbols.
type SymbolDirectory struct {
	symbols map[string]struct{}
}

// NewSymbolDirectory returns a directory of the given symbols, normalized.
// Empty symbols are ignored.
func NewSymbolDirectory(symbols ...string) SymbolDirectory {
	d := SymbolDirectory{symbols: make(map[string]struct{}, len(symbols))}
	for _, s := range symbols {
		if s = NormalizeSymbol(s); s != "" {
			d.symbols[s] = struct{}{}
		}
	}
	return d
}

// Contains reports whether symbol is listed.
func (d SymbolDirectory) Contains(symbol string) bool {
	_, ok := d.symbols[NormalizeSymbol(symbol)]
	return ok
}

// Len returns the number of listed symbols.
func (d SymbolDirectory) Len() int { return len(d.symbols) }

// All returns the listed symbols in alphabetical order.
func (d SymbolDirectory) All() iter.Seq[string] {
	return slices.Values(slices.Sorted(maps.Keys(d.symbols)))
}
