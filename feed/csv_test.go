package feed

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aaplCSV = `timestamp,open,high,low,close,volume
2021-01-31,158.5,161,157.25,160,1200000
2021-01-01,149,151.5,148,150,980000
`

func TestCSVDirRows(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AAPL.csv"), []byte(aaplCSV), 0644))

	rows, err := CSVDir{Dir: dir}.Rows(context.Background(), "aapl")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, date.MustParse("2021-01-31"), rows[0].Date)
	assert.True(t, rows[0].Close.Equal(decimal.NewFromInt(160)))
	assert.True(t, rows[0].Low.Equal(decimal.RequireFromString("157.25")))
	assert.Equal(t, int64(980000), rows[1].Volume)

	_, err = CSVDir{Dir: dir}.Rows(context.Background(), "MSFT")
	assert.ErrorIs(t, err, stocks.ErrNoSuchSymbol)
}

func TestReadCSV(t *testing.T) {
	t.Run("columns in any order", func(t *testing.T) {
		rows, err := ReadCSV(strings.NewReader("close,date,open,low,high\n10,2024-06-07,9,8,11\n"))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].Open.Equal(decimal.NewFromInt(9)))
		assert.Zero(t, rows[0].Volume)
	})
	t.Run("empty", func(t *testing.T) {
		rows, err := ReadCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	for name, input := range map[string]string{
		"no timestamp":   "open,high,low,close\n1,1,1,1\n",
		"no close":       "timestamp,open,high,low\n2024-06-07,1,1,1\n",
		"bad date":       "timestamp,open,high,low,close\n06/07/2024,1,1,1,1\n",
		"bad price":      "timestamp,open,high,low,close\n2024-06-07,1,one,1,1\n",
		"negative price": "timestamp,open,high,low,close\n2024-06-07,1,1,1,-1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestWriteCSV(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(aaplCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))
	assert.Equal(t, aaplCSV, buf.String())
}

func TestLoadSymbols(t *testing.T) {
	const listing = `symbol,name,exchange,assetType,ipoDate,delistingDate,status
AAPL,Apple Inc,NASDAQ,Stock,1980-12-12,null,Active
msft,Microsoft Corporation,NASDAQ,Stock,1986-03-13,null,Active
ZZZZ,Gone Corp,NYSE,Stock,1990-01-02,2001-01-02,Delisted
`
	d, err := LoadSymbols(strings.NewReader(listing))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.True(t, d.Contains("AAPL"))
	assert.True(t, d.Contains("MSFT"))
	assert.False(t, d.Contains("ZZZZ"))

	d, err = LoadSymbols(strings.NewReader("ticker\nIBM\n"))
	require.NoError(t, err)
	assert.True(t, d.Contains("IBM"), "first column is the symbol without a symbol header")

	path := filepath.Join(t.TempDir(), "listing_status.csv")
	require.NoError(t, os.WriteFile(path, []byte(listing), 0644))
	d, err = LoadSymbolsFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
}
