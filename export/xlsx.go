// Package export writes portfolio snapshots to spreadsheets.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSX writes one sheet per snapshot: a header row "#, Symbol, Shares, Value",
// a row per holding and a total row.
func XLSX(w io.Writer, snapshots ...stocks.Snapshot) (err error) {
	if len(snapshots) == 0 {
		return errors.New("no portfolio to export")
	}
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#cfe2f3"}},
	})
	if err != nil {
		return err
	}

	names := make(map[string]bool, len(snapshots))
	for _, s := range snapshots {
		name := SheetName(s.Name)
		if names[name] {
			return fmt.Errorf("two portfolios export to the sheet %q", name)
		}
		names[name] = true
		if err := fillSheet(f, name, s, header); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}
	if !names[defaultSheet] {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func fillSheet(f *excelize.File, sheet string, s stocks.Snapshot, header int) error {
	if sheet != defaultSheet {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &[]any{"#", "Symbol", "Shares", "Value"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", header); err != nil {
		return err
	}

	total := decimal.Zero
	row := 2
	for _, h := range s.Holdings {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]any{h.Index, h.Symbol, h.Shares.InexactFloat64(), h.Value.InexactFloat64()}); err != nil {
			return err
		}
		total = total.Add(h.Value)
		row++
	}

	cell, err := excelize.CoordinatesToCellName(2, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &[]any{"Total", nil, total.InexactFloat64()}); err != nil {
		return err
	}
	start, _ := excelize.CoordinatesToCellName(1, row)
	end, _ := excelize.CoordinatesToCellName(4, row)
	if err := f.SetCellStyle(sheet, start, end, header); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "D", 14)
}

// SheetName returns a valid sheet name for a portfolio name: at most 31
// characters, none of : \ / ? * [ ].
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "portfolio"
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}
