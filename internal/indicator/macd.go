package indicator

// Default MACD parameters, the conventional 12/26/9 setup.
const (
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// EMA computes the exponential moving average with smoothing factor
// alpha = 2/(span+1), seeded with the first close. No bias correction, so
// the series is defined from the first sample onward.
func EMA(closes []float64, span int) ([]float64, error) {
	if err := checkWindow("ema", span); err != nil {
		return nil, err
	}

	out := undefinedSeries(len(closes))
	if len(closes) == 0 {
		return out, nil
	}

	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = closes[0]
	for i := 1; i < len(closes); i++ {
		out[i] = alpha*closes[i] + (1.0-alpha)*out[i-1]
	}
	return out, nil
}

// MACD computes the moving average convergence/divergence line
// EMA(fast) - EMA(slow) and its EMA(signal) smoothing. Both lines are
// defined from the first sample, though early values are low-confidence.
func MACD(closes []float64, fast, slow, signal int) (macd, signalLine []float64, err error) {
	fastEMA, err := EMA(closes, fast)
	if err != nil {
		return nil, nil, err
	}
	slowEMA, err := EMA(closes, slow)
	if err != nil {
		return nil, nil, err
	}

	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine, err = EMA(macd, signal)
	if err != nil {
		return nil, nil, err
	}
	return macd, signalLine, nil
}
