package feed

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/annahallx127/HW4Stocks-sub000"
	"github.com/annahallx127/HW4Stocks-sub000/date"
	"github.com/shopspring/decimal"
)

// columns are the fields of a price row, after the date.
var columns = []string{"open", "high", "low", "close", "volume"}

// parseRecord builds a record from the date and the column values of a row.
//
// An empty volume is read as zero, every other field is required.
func parseRecord(day string, values map[string]string) (stocks.PriceRecord, error) {
	on, err := date.Parse(strings.TrimSpace(day))
	if err != nil {
		return stocks.PriceRecord{}, err
	}
	r := stocks.PriceRecord{Date: on}
	for _, f := range []struct {
		name string
		dst  *decimal.Decimal
	}{{"open", &r.Open}, {"high", &r.High}, {"low", &r.Low}, {"close", &r.Close}} {
		v, err := decimal.NewFromString(strings.TrimSpace(values[f.name]))
		if err != nil {
			return stocks.PriceRecord{}, fmt.Errorf("%s: invalid %s %q: %w", on, f.name, values[f.name], err)
		}
		*f.dst = v
	}
	if v := strings.TrimSpace(values["volume"]); v != "" {
		volume, err := decimal.NewFromString(v)
		if err != nil {
			return stocks.PriceRecord{}, fmt.Errorf("%s: invalid volume %q: %w", on, v, err)
		}
		r.Volume = volume.IntPart()
	}
	if err := r.Validate(); err != nil {
		return stocks.PriceRecord{}, err
	}
	return r, nil
}

// text returns the textual form of a decoded JSON scalar.
func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return decimal.NewFromFloat(v).String()
	default:
		return fmt.Sprint(v)
	}
}

// lookup returns the value of the field name in m. Keys match exactly or by
// suffix, so that "4. close" is the close of a row; the shortest matching key
// wins, so that "5. adjusted close" is not.
func lookup(m map[string]any, name string) (any, bool) {
	best, found := "", false
	for k := range m {
		key := strings.ToLower(strings.TrimSpace(k))
		if key != name && !strings.HasSuffix(key, " "+name) && !strings.HasSuffix(key, "."+name) {
			continue
		}
		if !found || len(k) < len(best) || (len(k) == len(best) && k < best) {
			best, found = k, true
		}
	}
	if !found {
		return nil, false
	}
	return m[best], true
}
