package feed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/annahallx127/HW4Stocks-sub000"
)

// CSVDir serves the rows cached in "<Dir>/<SYMBOL>.csv" files.
type CSVDir struct {
	Dir string
}

// Rows implements stocks.PriceFeed.
func (c CSVDir) Rows(_ context.Context, symbol string) ([]stocks.PriceRecord, error) {
	path := filepath.Join(c.Dir, stocks.NormalizeSymbol(symbol)+".csv")
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: no price file for %q in %q", stocks.ErrNoSuchSymbol, symbol, c.Dir)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// ReadCSV reads price rows from a CSV document whose header names the columns
// timestamp (or date), open, high, low, close and volume, in any order.
func ReadCSV(r io.Reader) ([]stocks.PriceRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}
	dateCol := slices.Index(header, "timestamp")
	if dateCol < 0 {
		dateCol = slices.Index(header, "date")
	}
	if dateCol < 0 {
		return nil, fmt.Errorf("no timestamp column in header %v", header)
	}
	cols := make(map[string]int, len(columns))
	for _, name := range columns {
		i := slices.Index(header, name)
		if i < 0 && name != "volume" {
			return nil, fmt.Errorf("no %s column in header %v", name, header)
		}
		cols[name] = i
	}

	var rows []stocks.PriceRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if dateCol >= len(record) {
			return nil, fmt.Errorf("line %d: missing timestamp", line)
		}
		values := make(map[string]string, len(cols))
		for name, i := range cols {
			if i >= 0 && i < len(record) {
				values[name] = record[i]
			}
		}
		row, err := parseRecord(record[dateCol], values)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV writes rows in the format read by ReadCSV.
func WriteCSV(w io.Writer, rows []stocks.PriceRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(append([]string{"timestamp"}, columns...)); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write([]string{
			r.Date.String(),
			r.Open.String(),
			r.High.String(),
			r.Low.String(),
			r.Close.String(),
			fmt.Sprint(r.Volume),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
