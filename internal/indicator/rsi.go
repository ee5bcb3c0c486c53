package indicator

import "math"

// DefaultRSIPeriod is the conventional 14-day lookback.
const DefaultRSIPeriod = 14

// RSI computes the relative strength index over a trailing period using
// simple (not Wilder-smoothed) means of gains and losses. The first
// `period` positions are NaN: one sample lost to differencing, period-1
// to the rolling mean.
//
// When the mean loss is zero the ratio RS is infinite; that position is
// reported as exactly 100 (fully overbought) rather than NaN. A flat
// window, where mean gain and mean loss are both zero, has no defined
// momentum and stays NaN.
func RSI(closes []float64, period int) ([]float64, error) {
	if err := checkWindow("rsi", period); err != nil {
		return nil, err
	}

	out := undefinedSeries(len(closes))
	if len(closes) < period+1 {
		return out, nil
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}

		meanGain := gainSum / float64(period)
		meanLoss := lossSum / float64(period)
		switch {
		case meanLoss == 0 && meanGain == 0:
			out[i] = math.NaN()
		case meanLoss == 0:
			out[i] = 100.0
		default:
			rs := meanGain / meanLoss
			out[i] = 100.0 - 100.0/(1.0+rs)
		}
	}
	return out, nil
}
