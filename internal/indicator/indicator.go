// Package indicator computes derived series from raw close prices. Every
// function is pure: same input, same output, no I/O.
//
// Outputs are aligned index-for-index with the input. Warm-up positions
// where insufficient history exists hold NaN; use Defined to test a value
// before display. An empty or too-short input yields an entirely-NaN
// series rather than an error — checking for an empty series belongs to
// the caller, before any indicator is invoked.
package indicator

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidWindow is returned when a window or period of zero or less is
// supplied. Parameters are rejected up front, never clamped.
var ErrInvalidWindow = errors.New("window must be positive")

// Defined reports whether a derived value exists at a position (i.e. is
// not a warm-up NaN).
func Defined(v float64) bool { return !math.IsNaN(v) }

// undefinedSeries allocates an all-NaN series of length n.
func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func checkWindow(name string, window int) error {
	if window <= 0 {
		return fmt.Errorf("%s: %w (got %d)", name, ErrInvalidWindow, window)
	}
	return nil
}
