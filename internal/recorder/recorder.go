package recorder

import "time"

// QueryEvent records one data fetch performed during the session.
type QueryEvent struct {
	Symbol  string
	Start   time.Time
	End     time.Time
	BarsGot int
}

// EvaluationEvent records one alert submission and its outcome.
type EvaluationEvent struct {
	Symbol      string
	LatestClose float64
	TargetPrice float64
	Decision    string
	Delivered   bool
	Error       string
}

// Recorder appends audit events for later inspection. It is write-only:
// nothing in the session ever reads these records back.
type Recorder interface {
	RecordQuery(evt *QueryEvent) error
	RecordEvaluation(evt *EvaluationEvent) error
	Close() error
}
