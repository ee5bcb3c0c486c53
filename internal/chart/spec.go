// Package chart turns a price series and a set of display toggles into a
// declarative chart specification: named traces over the shared date
// domain, each tagged with a display kind and a target axis. Rendering the
// specification is a separate concern (see render.go).
package chart

import (
	"errors"
	"fmt"
	"time"

	"github.com/bhanu03042005/marketwatcher/internal/indicator"
	"github.com/bhanu03042005/marketwatcher/internal/model"
)

// Kind selects how a trace is drawn.
type Kind string

const (
	KindLine        Kind = "line"
	KindBar         Kind = "bar"
	KindCandlestick Kind = "candlestick"
)

// Axis tags a trace with the value axis it belongs to. Oscillators such as
// RSI live on a secondary axis and volume on a tertiary one, because their
// numeric ranges have nothing in common with price.
type Axis string

const (
	AxisPrice      Axis = "price"
	AxisOscillator Axis = "oscillator"
	AxisVolume     Axis = "volume"
)

// Type selects the base chart drawn from the raw series.
type Type string

const (
	TypeLine        Type = "line"
	TypeSMA         Type = "sma"
	TypeCandlestick Type = "candlestick"
)

// Trace is one named (date, value) sequence. Candlestick traces carry the
// full OHLC bars instead of a single value column.
type Trace struct {
	Name   string
	Kind   Kind
	Axis   Axis
	Dates  []time.Time
	Values []float64
	Bars   []model.OHLCV
}

// Spec is the complete declarative chart description handed to a renderer.
type Spec struct {
	Title  string
	Traces []Trace
}

// Options mirrors the dashboard's chart controls.
type Options struct {
	Type          Type
	SMAWindow     int
	ShowRSI       bool
	ShowMACD      bool
	ShowBollinger bool
	ShowVolume    bool
}

// DefaultOptions matches the dashboard's initial control state.
func DefaultOptions() Options {
	return Options{Type: TypeLine, SMAWindow: 20}
}

// Assemble selects and computes the traces to plot. The caller has already
// established that the series is non-empty.
func Assemble(series *model.PriceSeries, opts Options) (*Spec, error) {
	if series.IsEmpty() {
		return nil, errors.New("cannot assemble chart for empty series")
	}

	dates := series.Dates()
	closes := series.Closes()
	spec := &Spec{Title: fmt.Sprintf("%s Stock Chart", series.Symbol)}

	switch opts.Type {
	case TypeLine:
		spec.Traces = append(spec.Traces, Trace{
			Name: "Close", Kind: KindLine, Axis: AxisPrice, Dates: dates, Values: closes,
		})
	case TypeSMA:
		sma, err := indicator.SMA(closes, opts.SMAWindow)
		if err != nil {
			return nil, err
		}
		spec.Traces = append(spec.Traces,
			Trace{Name: "Close", Kind: KindLine, Axis: AxisPrice, Dates: dates, Values: closes},
			Trace{
				Name: fmt.Sprintf("%d-Day SMA", opts.SMAWindow),
				Kind: KindLine, Axis: AxisPrice, Dates: dates, Values: sma,
			},
		)
	case TypeCandlestick:
		spec.Traces = append(spec.Traces, Trace{
			Name: "Candlestick", Kind: KindCandlestick, Axis: AxisPrice, Dates: dates, Bars: series.Bars,
		})
	default:
		return nil, fmt.Errorf("unknown chart type %q", opts.Type)
	}

	if opts.ShowRSI {
		rsi, err := indicator.RSI(closes, indicator.DefaultRSIPeriod)
		if err != nil {
			return nil, err
		}
		spec.Traces = append(spec.Traces, Trace{
			Name: "RSI", Kind: KindLine, Axis: AxisOscillator, Dates: dates, Values: rsi,
		})
	}

	if opts.ShowMACD {
		macd, signal, err := indicator.MACD(closes,
			indicator.DefaultMACDFast, indicator.DefaultMACDSlow, indicator.DefaultMACDSignal)
		if err != nil {
			return nil, err
		}
		spec.Traces = append(spec.Traces,
			Trace{Name: "MACD", Kind: KindLine, Axis: AxisPrice, Dates: dates, Values: macd},
			Trace{Name: "Signal", Kind: KindLine, Axis: AxisPrice, Dates: dates, Values: signal},
		)
	}

	if opts.ShowBollinger {
		upper, _, lower, err := indicator.Bollinger(closes,
			indicator.DefaultBollingerWindow, indicator.DefaultBollingerWidth)
		if err != nil {
			return nil, err
		}
		spec.Traces = append(spec.Traces,
			Trace{Name: "Upper Band", Kind: KindLine, Axis: AxisPrice, Dates: dates, Values: upper},
			Trace{Name: "Lower Band", Kind: KindLine, Axis: AxisPrice, Dates: dates, Values: lower},
		)
	}

	if opts.ShowVolume {
		spec.Traces = append(spec.Traces, Trace{
			Name: "Volume", Kind: KindBar, Axis: AxisVolume, Dates: dates, Values: series.Volumes(),
		})
	}

	return spec, nil
}

// DerivedTraces returns the non-raw traces of the spec, i.e. every trace
// computed by the indicator engine. Used by the CSV exporter to include
// whatever is currently enabled.
func (s *Spec) DerivedTraces() []Trace {
	var out []Trace
	for _, t := range s.Traces {
		if t.Kind == KindLine && t.Name != "Close" {
			out = append(out, t)
		}
	}
	return out
}
