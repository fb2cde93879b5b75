package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/annahallx127/HW4Stocks-sub000"
)

// LoadSymbols reads a listing CSV into a symbol directory.
//
// The symbol is the column named "symbol", the first one if none is. Rows whose
// "status" column is "Delisted" are skipped.
func LoadSymbols(r io.Reader) (stocks.SymbolDirectory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return stocks.NewSymbolDirectory(), nil
	}
	if err != nil {
		return stocks.SymbolDirectory{}, fmt.Errorf("invalid listing header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	symbolCol := max(slices.Index(header, "symbol"), 0)
	statusCol := slices.Index(header, "status")

	var symbols []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stocks.SymbolDirectory{}, fmt.Errorf("invalid listing: %w", err)
		}
		if symbolCol >= len(record) {
			continue
		}
		if statusCol >= 0 && statusCol < len(record) && strings.EqualFold(strings.TrimSpace(record[statusCol]), "delisted") {
			continue
		}
		symbols = append(symbols, record[symbolCol])
	}
	return stocks.NewSymbolDirectory(symbols...), nil
}

// LoadSymbolsFile reads the listing CSV at path.
func LoadSymbolsFile(path string) (stocks.SymbolDirectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return stocks.SymbolDirectory{}, err
	}
	defer f.Close()
	d, err := LoadSymbols(f)
	if err != nil {
		return stocks.SymbolDirectory{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
