package chart

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhanu03042005/marketwatcher/internal/model"
)

func testSeries(t *testing.T, n int) *model.PriceSeries {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, n)
	for i := range bars {
		p := 100 + float64(i%7)
		bars[i] = model.OHLCV{
			Date:   start.AddDate(0, 0, i),
			Open:   p - 0.5,
			High:   p + 1,
			Low:    p - 1,
			Close:  p,
			Volume: float64(1000 * (i + 1)),
		}
	}
	return model.NewPriceSeries("AAPL", start, start.AddDate(0, 0, n), bars)
}

func traceByName(t *testing.T, spec *Spec, name string) Trace {
	t.Helper()
	for _, tr := range spec.Traces {
		if tr.Name == name {
			return tr
		}
	}
	t.Fatalf("trace %q not found", name)
	return Trace{}
}

func TestAssemble_LineType(t *testing.T) {
	spec, err := Assemble(testSeries(t, 30), Options{Type: TypeLine, SMAWindow: 20})
	require.NoError(t, err)
	require.Len(t, spec.Traces, 1)
	assert.Equal(t, "Close", spec.Traces[0].Name)
	assert.Equal(t, KindLine, spec.Traces[0].Kind)
	assert.Equal(t, AxisPrice, spec.Traces[0].Axis)
	assert.Equal(t, "AAPL Stock Chart", spec.Title)
}

func TestAssemble_SMAType(t *testing.T) {
	spec, err := Assemble(testSeries(t, 30), Options{Type: TypeSMA, SMAWindow: 10})
	require.NoError(t, err)
	require.Len(t, spec.Traces, 2)
	sma := traceByName(t, spec, "10-Day SMA")
	assert.Equal(t, KindLine, sma.Kind)
	assert.Equal(t, AxisPrice, sma.Axis)
	assert.Len(t, sma.Values, 30)
}

func TestAssemble_CandlestickType(t *testing.T) {
	series := testSeries(t, 30)
	spec, err := Assemble(series, Options{Type: TypeCandlestick, SMAWindow: 20})
	require.NoError(t, err)
	require.Len(t, spec.Traces, 1)
	assert.Equal(t, KindCandlestick, spec.Traces[0].Kind)
	assert.Len(t, spec.Traces[0].Bars, series.Len())
}

func TestAssemble_RSIOnOscillatorAxis(t *testing.T) {
	spec, err := Assemble(testSeries(t, 30), Options{Type: TypeLine, SMAWindow: 20, ShowRSI: true})
	require.NoError(t, err)
	rsi := traceByName(t, spec, "RSI")
	assert.Equal(t, AxisOscillator, rsi.Axis)
	assert.Equal(t, KindLine, rsi.Kind)
}

func TestAssemble_VolumeOnVolumeAxisAsBars(t *testing.T) {
	spec, err := Assemble(testSeries(t, 30), Options{Type: TypeLine, SMAWindow: 20, ShowVolume: true})
	require.NoError(t, err)
	vol := traceByName(t, spec, "Volume")
	assert.Equal(t, AxisVolume, vol.Axis)
	assert.Equal(t, KindBar, vol.Kind)
}

func TestAssemble_MACDAndBollingerToggles(t *testing.T) {
	spec, err := Assemble(testSeries(t, 60), Options{
		Type: TypeLine, SMAWindow: 20, ShowMACD: true, ShowBollinger: true,
	})
	require.NoError(t, err)
	// Close + MACD + Signal + Upper Band + Lower Band
	assert.Len(t, spec.Traces, 5)
	traceByName(t, spec, "MACD")
	traceByName(t, spec, "Signal")
	traceByName(t, spec, "Upper Band")
	traceByName(t, spec, "Lower Band")
}

func TestAssemble_EmptySeriesRejected(t *testing.T) {
	empty := model.NewPriceSeries("AAPL", time.Now(), time.Now(), nil)
	_, err := Assemble(empty, DefaultOptions())
	assert.Error(t, err)
}

func TestAssemble_BadSMAWindow(t *testing.T) {
	_, err := Assemble(testSeries(t, 30), Options{Type: TypeSMA, SMAWindow: 0})
	assert.Error(t, err)
}

func TestAssemble_UnknownType(t *testing.T) {
	_, err := Assemble(testSeries(t, 30), Options{Type: "scatter"})
	assert.Error(t, err)
}

func TestDerivedTraces_ExcludesRawSeries(t *testing.T) {
	spec, err := Assemble(testSeries(t, 60), Options{
		Type: TypeSMA, SMAWindow: 20, ShowRSI: true, ShowVolume: true,
	})
	require.NoError(t, err)

	names := make([]string, 0)
	for _, tr := range spec.DerivedTraces() {
		names = append(names, tr.Name)
	}
	assert.ElementsMatch(t, []string{"20-Day SMA", "RSI"}, names)
}

func TestRender_LineChartSmoke(t *testing.T) {
	spec, err := Assemble(testSeries(t, 40), Options{
		Type: TypeLine, SMAWindow: 20, ShowRSI: true, ShowVolume: true,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewHTMLRenderer().Render(spec, &buf))
	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "RSI")
	assert.Contains(t, html, "Volume")
}

func TestRender_CandlestickSmoke(t *testing.T) {
	spec, err := Assemble(testSeries(t, 40), Options{
		Type: TypeCandlestick, SMAWindow: 20, ShowVolume: true,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewHTMLRenderer().Render(spec, &buf))
	assert.Contains(t, buf.String(), "candlestick")
}

func TestRender_EmptySpecRejected(t *testing.T) {
	var buf bytes.Buffer
	err := NewHTMLRenderer().Render(&Spec{Title: "x"}, &buf)
	assert.Error(t, err)
}
