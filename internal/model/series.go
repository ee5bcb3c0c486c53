package model

import (
	"sort"
	"time"
)

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds the raw price data for one ticker over one date range.
// It is built once per query and never mutated afterwards. Bars are ordered
// by strictly increasing date.
type PriceSeries struct {
	Symbol    string
	Start     time.Time
	End       time.Time
	Bars      []OHLCV
	FetchedAt time.Time
}

// NewPriceSeries builds a series for the given query window. Provider rows
// are normalized on the way in: bars are sorted ascending by date, and
// duplicate dates collapse to the last sample seen, so the stored bars
// always satisfy the strictly-increasing invariant.
func NewPriceSeries(symbol string, start, end time.Time, bars []OHLCV) *PriceSeries {
	ordered := make([]OHLCV, len(bars))
	copy(ordered, bars)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	deduped := ordered[:0]
	for _, b := range ordered {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(b.Date) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}

	return &PriceSeries{
		Symbol:    symbol,
		Start:     start,
		End:       end,
		Bars:      deduped,
		FetchedAt: time.Now(),
	}
}

// IsEmpty reports whether the provider returned no samples. Callers check
// this once at the top of a pipeline; downstream stages assume non-empty.
func (s *PriceSeries) IsEmpty() bool {
	return s == nil || len(s.Bars) == 0
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Latest returns the bar with the maximum date. ok is false for an empty
// series.
func (s *PriceSeries) Latest() (OHLCV, bool) {
	if s.IsEmpty() {
		return OHLCV{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Closes extracts the close column in bar order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, s.Len())
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Dates extracts the date column in bar order.
func (s *PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, s.Len())
	for i, b := range s.Bars {
		dates[i] = b.Date
	}
	return dates
}

// Volumes extracts the volume column in bar order.
func (s *PriceSeries) Volumes() []float64 {
	vols := make([]float64, s.Len())
	for i, b := range s.Bars {
		vols[i] = b.Volume
	}
	return vols
}
