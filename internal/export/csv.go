// Package export serializes a price series, plus whatever derived series
// are currently enabled, to a comma-separated table suitable for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/bhanu03042005/marketwatcher/internal/model"
)

const dateLayout = "2006-01-02"

// NamedSeries is one derived column to append after the OHLCV columns.
// Values align index-for-index with the series bars; NaN cells are written
// empty.
type NamedSeries struct {
	Name   string
	Values []float64
}

var baseHeader = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// WriteCSV writes a header row naming each column and one row per date.
func WriteCSV(w io.Writer, series *model.PriceSeries, derived ...NamedSeries) error {
	cw := csv.NewWriter(w)

	header := append([]string{}, baseHeader...)
	for _, d := range derived {
		if len(d.Values) != series.Len() {
			return fmt.Errorf("derived series %q has %d values, series has %d bars",
				d.Name, len(d.Values), series.Len())
		}
		header = append(header, d.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, b := range series.Bars {
		row := []string{
			b.Date.Format(dateLayout),
			floatStr(b.Open),
			floatStr(b.High),
			floatStr(b.Low),
			floatStr(b.Close),
			floatStr(b.Volume),
		}
		for _, d := range derived {
			if math.IsNaN(d.Values[i]) {
				row = append(row, "")
			} else {
				row = append(row, floatStr(d.Values[i]))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the table to a file at path. A failed close is a
// failed write: buffered data may not have reached disk.
func WriteCSVFile(path string, series *model.PriceSeries, derived ...NamedSeries) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv file: %w", cerr)
		}
	}()
	return WriteCSV(f, series, derived...)
}

// ReadCSV parses the base OHLCV columns back into a price series, ignoring
// any trailing derived columns. The symbol is not part of the table, so the
// returned series carries an empty one; Start and End are taken from the
// first and last row. Exporting a series and re-reading the result
// reproduces the original (date, open, high, low, close, volume) tuples in
// order.
func ReadCSV(r io.Reader) (*model.PriceSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header row")
	}
	for i, name := range baseHeader {
		if len(records[0]) <= i || records[0][i] != name {
			return nil, fmt.Errorf("unexpected csv header %v", records[0])
		}
	}

	bars := make([]model.OHLCV, 0, len(records)-1)
	for line, rec := range records[1:] {
		if len(rec) < len(baseHeader) {
			return nil, fmt.Errorf("row %d: want at least %d columns, got %d", line+2, len(baseHeader), len(rec))
		}
		date, err := time.ParseInLocation(dateLayout, rec[0], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line+2, err)
		}
		vals := make([]float64, 5)
		for i := 0; i < 5; i++ {
			v, err := strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", line+2, baseHeader[i+1], err)
			}
			vals[i] = v
		}
		bars = append(bars, model.OHLCV{
			Date: date, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3], Volume: vals[4],
		})
	}

	var start, end time.Time
	if len(bars) > 0 {
		start, end = bars[0].Date, bars[len(bars)-1].Date
	}
	return model.NewPriceSeries("", start, end, bars), nil
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
