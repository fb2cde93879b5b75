package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/PaesslerAG/jsonpath"
	"github.com/annahallx127/HW4Stocks-sub000"
)

// JSONDir serves the rows of provider payloads cached in "<Dir>/<SYMBOL>.json"
// files.
//
// Path is a jsonpath expression selecting the rows in the payload, "$" when
// empty. It can select an array of row objects:
//
//	[{"date": "2024-02-13", "open": 675.06, "high": 684.21, "low": 648.65, "close": 668.44, "volume": 0}]
//
// or an object of rows keyed by date:
//
//	{"2024-02-13": {"1. open": "675.06", "2. high": "684.21", "3. low": "648.65", "4. close": "668.44", "5. volume": "0"}}
type JSONDir struct {
	Dir  string
	Path string
}

// Rows implements stocks.PriceFeed.
func (j JSONDir) Rows(_ context.Context, symbol string) ([]stocks.PriceRecord, error) {
	path := filepath.Join(j.Dir, stocks.NormalizeSymbol(symbol)+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: no price payload for %q in %q", stocks.ErrNoSuchSymbol, symbol, j.Dir)
	}
	if err != nil {
		return nil, err
	}
	rows, err := ParseJSON(data, j.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ParseJSON extracts the price rows selected by the jsonpath expression path
// in a JSON payload.
func ParseJSON(data []byte, path string) ([]stocks.PriceRecord, error) {
	if path == "" {
		path = "$"
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}

	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// a wildcard path wraps its single answer in a list
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		switch jlist[0].(type) {
		case []any:
			jval = jlist[0]
		case map[string]any:
			if _, isRow := lookup(jlist[0].(map[string]any), "close"); !isRow {
				jval = jlist[0]
			}
		}
	}

	switch v := jval.(type) {
	case []any:
		return parseRowList(v)
	case map[string]any:
		return parseRowsByDate(v)
	default:
		return nil, fmt.Errorf("%q selects a %T, want an array or an object of rows", path, jval)
	}
}

func parseRowList(list []any) ([]stocks.PriceRecord, error) {
	rows := make([]stocks.PriceRecord, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("row %d: got a %T, want an object", i, item)
		}
		day, ok := lookup(m, "date")
		if !ok {
			day, ok = lookup(m, "timestamp")
		}
		if !ok {
			return nil, fmt.Errorf("row %d: no date", i)
		}
		row, err := parseRecord(text(day), rowValues(m))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRowsByDate(m map[string]any) ([]stocks.PriceRecord, error) {
	rows := make([]stocks.PriceRecord, 0, len(m))
	for _, day := range slices.Sorted(maps.Keys(m)) {
		fields, ok := m[day].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: got a %T, want an object", day, m[day])
		}
		row, err := parseRecord(day, rowValues(fields))
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func rowValues(m map[string]any) map[string]string {
	values := make(map[string]string, len(columns))
	for _, name := range columns {
		if v, ok := lookup(m, name); ok {
			values[name] = text(v)
		}
	}
	return values
}
