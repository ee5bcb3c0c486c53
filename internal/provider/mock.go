package provider

import (
	"time"

	"github.com/bhanu03042005/marketwatcher/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars    []model.OHLCV
	Profile model.CompanyProfile
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ string, start, end time.Time) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateBars(100.0, start, end), nil
}

func (m *MockFetcher) LookupProfile(_ string) (*model.CompanyProfile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p := m.Profile
	return &p, nil
}

// GenerateBars produces one synthetic weekday bar per day in [start, end]
// with a gentle drift around basePrice.
func GenerateBars(basePrice float64, start, end time.Time) []model.OHLCV {
	var bars []model.OHLCV
	i := 0
	for d := start.UTC().Truncate(24 * time.Hour); !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		p := basePrice * (1 + 0.001*float64(i%20-10))
		bars = append(bars, model.OHLCV{
			Date:   d,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1_000_000,
		})
		i++
	}
	return bars
}
