package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barsFixture() []OHLCV {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return []OHLCV{
		{Date: start, Open: 99, High: 101, Low: 98, Close: 100, Volume: 500},
		{Date: start.AddDate(0, 0, 1), Open: 100, High: 103, Low: 100, Close: 102, Volume: 600},
		{Date: start.AddDate(0, 0, 2), Open: 102, High: 102, Low: 100, Close: 101, Volume: 700},
	}
}

func TestPriceSeries_IsEmpty(t *testing.T) {
	var nilSeries *PriceSeries
	assert.True(t, nilSeries.IsEmpty())

	empty := NewPriceSeries("AAPL", time.Now(), time.Now(), nil)
	assert.True(t, empty.IsEmpty())

	full := NewPriceSeries("AAPL", time.Now(), time.Now(), barsFixture())
	assert.False(t, full.IsEmpty())
}

func TestPriceSeries_Latest(t *testing.T) {
	series := NewPriceSeries("AAPL", time.Now(), time.Now(), barsFixture())

	latest, ok := series.Latest()
	require.True(t, ok)
	assert.Equal(t, 101.0, latest.Close)

	_, ok = NewPriceSeries("AAPL", time.Now(), time.Now(), nil).Latest()
	assert.False(t, ok)
}

func TestPriceSeries_Columns(t *testing.T) {
	series := NewPriceSeries("AAPL", time.Now(), time.Now(), barsFixture())

	assert.Equal(t, []float64{100, 102, 101}, series.Closes())
	assert.Equal(t, []float64{500, 600, 700}, series.Volumes())

	dates := series.Dates()
	require.Len(t, dates, 3)
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i].After(dates[i-1]), "dates must be strictly increasing")
	}
}

func TestNewPriceSeries_NormalizesBars(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := []OHLCV{
		{Date: start.AddDate(0, 0, 2), Close: 103},
		{Date: start, Close: 100},
		{Date: start.AddDate(0, 0, 1), Close: 101},
		// duplicate date: a corrected row for the same day wins
		{Date: start.AddDate(0, 0, 1), Close: 102},
	}

	series := NewPriceSeries("AAPL", start, start.AddDate(0, 0, 2), bars)

	require.Equal(t, 3, series.Len())
	assert.Equal(t, []float64{100, 102, 103}, series.Closes())
	dates := series.Dates()
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i].After(dates[i-1]), "dates must be strictly increasing")
	}
}

func TestCompanyProfile_Placeholders(t *testing.T) {
	empty := &CompanyProfile{}
	assert.Equal(t, "N/A", empty.DisplayName())
	assert.Equal(t, "N/A", empty.DisplaySector())
	assert.Equal(t, "N/A", empty.DisplayIndustry())
	assert.Equal(t, "N/A", empty.DisplayWebsite())

	full := &CompanyProfile{Name: "Apple Inc.", Sector: "Technology"}
	assert.Equal(t, "Apple Inc.", full.DisplayName())
	assert.Equal(t, "Technology", full.DisplaySector())
	assert.Equal(t, "N/A", full.DisplayIndustry())
}
