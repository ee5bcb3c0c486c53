package chart

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/bhanu03042005/marketwatcher/internal/model"
)

// HTMLRenderer draws a Spec as an interactive self-contained HTML chart.
type HTMLRenderer struct{}

// NewHTMLRenderer creates the default renderer.
func NewHTMLRenderer() *HTMLRenderer { return &HTMLRenderer{} }

// RenderFile renders the spec into an HTML file at path.
func (r *HTMLRenderer) RenderFile(spec *Spec, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	return r.Render(spec, f)
}

// Render writes the interactive chart to w. Traces tagged with the
// oscillator and volume axes are mapped onto extended y-axes so their
// ranges do not flatten the price scale.
func (r *HTMLRenderer) Render(spec *Spec, w io.Writer) error {
	if len(spec.Traces) == 0 {
		return fmt.Errorf("chart spec has no traces")
	}

	xLabels := dateLabels(spec.Traces[0])
	axisIndex := axisIndices(spec)

	if candle := candleTrace(spec); candle != nil {
		return renderKlineBase(spec, candle, xLabels, axisIndex, w)
	}
	return renderLineBase(spec, xLabels, axisIndex, w)
}

func renderLineBase(spec *Spec, xLabels []string, axisIndex map[Axis]int, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions(spec)...)
	extendAxes(line.ExtendYAxis, axisIndex)
	line.SetXAxis(xLabels)

	for _, t := range spec.Traces {
		if t.Kind == KindLine {
			line.AddSeries(t.Name, lineData(t.Values),
				charts.WithLineChartOpts(opts.LineChart{YAxisIndex: axisIndex[t.Axis]}))
		}
	}
	for _, t := range spec.Traces {
		if t.Kind == KindBar {
			line.Overlap(newBarChart(t, xLabels, axisIndex))
		}
	}
	return line.Render(w)
}

func renderKlineBase(spec *Spec, candle *Trace, xLabels []string, axisIndex map[Axis]int, w io.Writer) error {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(globalOptions(spec)...)
	extendAxes(kline.ExtendYAxis, axisIndex)
	kline.SetXAxis(xLabels).AddSeries(candle.Name, klineData(candle.Bars))

	var haveLines bool
	line := charts.NewLine()
	line.SetXAxis(xLabels)
	for _, t := range spec.Traces {
		if t.Kind == KindLine {
			haveLines = true
			line.AddSeries(t.Name, lineData(t.Values),
				charts.WithLineChartOpts(opts.LineChart{YAxisIndex: axisIndex[t.Axis]}))
		}
	}
	if haveLines {
		kline.Overlap(line)
	}
	for _, t := range spec.Traces {
		if t.Kind == KindBar {
			kline.Overlap(newBarChart(t, xLabels, axisIndex))
		}
	}
	return kline.Render(w)
}

func newBarChart(t Trace, xLabels []string, axisIndex map[Axis]int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetXAxis(xLabels)
	bar.AddSeries(t.Name, barData(t.Values),
		charts.WithBarChartOpts(opts.BarChart{YAxisIndex: axisIndex[t.Axis]}))
	return bar
}

func globalOptions(spec *Spec) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Orient: "horizontal"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price (USD)"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
	}
}

// axisIndices assigns echarts y-axis indices to the axes the spec uses:
// price is always index 0, oscillator and volume take the next slots.
func axisIndices(spec *Spec) map[Axis]int {
	used := make(map[Axis]struct{})
	for _, t := range spec.Traces {
		used[t.Axis] = struct{}{}
	}

	axisIndex := map[Axis]int{AxisPrice: 0}
	if _, ok := used[AxisOscillator]; ok {
		axisIndex[AxisOscillator] = len(axisIndex)
	}
	if _, ok := used[AxisVolume]; ok {
		axisIndex[AxisVolume] = len(axisIndex)
	}
	return axisIndex
}

func extendAxes(extend func(...opts.YAxis), axisIndex map[Axis]int) {
	if _, ok := axisIndex[AxisOscillator]; ok {
		extend(opts.YAxis{Name: "RSI", Type: "value", Show: opts.Bool(true)})
	}
	if _, ok := axisIndex[AxisVolume]; ok {
		extend(opts.YAxis{Name: "Volume", Type: "value", Show: opts.Bool(true)})
	}
}

func candleTrace(spec *Spec) *Trace {
	for i := range spec.Traces {
		if spec.Traces[i].Kind == KindCandlestick {
			return &spec.Traces[i]
		}
	}
	return nil
}

func dateLabels(t Trace) []string {
	labels := make([]string, len(t.Dates))
	for i, d := range t.Dates {
		labels[i] = d.Format("2006-01-02")
	}
	return labels
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			data[i] = opts.LineData{Value: nil} // warm-up gap
			continue
		}
		data[i] = opts.LineData{Value: v}
	}
	return data
}

func barData(values []float64) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}
	return data
}

func klineData(bars []model.OHLCV) []opts.KlineData {
	data := make([]opts.KlineData, len(bars))
	for i, b := range bars {
		data[i] = opts.KlineData{Value: [4]float64{b.Open, b.Close, b.Low, b.High}}
	}
	return data
}
