package provider

import (
	"time"

	"github.com/bhanu03042005/marketwatcher/internal/model"
)

// Fetcher retrieves historical daily bars for a ticker over a closed date
// range. A successful call with no matching samples returns an empty slice
// and a nil error; distinguishing "no data" from failure is the caller's
// job.
type Fetcher interface {
	FetchHistory(symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}

// ProfileLookup retrieves optional descriptive company fields. Absent
// fields come back empty and are rendered as placeholders by the caller.
type ProfileLookup interface {
	LookupProfile(symbol string) (*model.CompanyProfile, error)
}
