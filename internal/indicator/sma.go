package indicator

// SMA computes the simple moving average of closes over a trailing window.
// The first window-1 positions are NaN.
func SMA(closes []float64, window int) ([]float64, error) {
	if err := checkWindow("sma", window); err != nil {
		return nil, err
	}

	out := undefinedSeries(len(closes))
	if len(closes) < window {
		return out, nil
	}

	var sum float64
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out, nil
}
