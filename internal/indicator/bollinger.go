package indicator

import "math"

// Default Bollinger parameters: 20-day window, 2 standard deviations.
const (
	DefaultBollingerWindow = 20
	DefaultBollingerWidth  = 2.0
)

// Bollinger computes the volatility envelope around the SMA(window)
// center line: upper/lower = center +/- width * stddev. The spread uses
// the trailing sample standard deviation (n-1 divisor) to match the
// center's rolling-window convention. Same NaN prefix as SMA.
func Bollinger(closes []float64, window int, width float64) (upper, middle, lower []float64, err error) {
	middle, err = SMA(closes, window)
	if err != nil {
		return nil, nil, nil, err
	}

	upper = undefinedSeries(len(closes))
	lower = undefinedSeries(len(closes))
	if window == 1 {
		// A single-sample window has no sample deviation; the bands
		// collapse onto the center line.
		copy(upper, middle)
		copy(lower, middle)
		return upper, middle, lower, nil
	}

	for i := window - 1; i < len(closes); i++ {
		mean := middle[i]
		var sq float64
		for j := i - window + 1; j <= i; j++ {
			d := closes[j] - mean
			sq += d * d
		}
		sd := math.Sqrt(sq / float64(window-1))
		upper[i] = mean + width*sd
		lower[i] = mean - width*sd
	}
	return upper, middle, lower, nil
}
