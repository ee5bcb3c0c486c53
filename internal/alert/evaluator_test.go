package alert

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhanu03042005/marketwatcher/internal/model"
)

type fakeTransport struct {
	sent []Message
	err  error
}

func (f *fakeTransport) Send(recipient, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, Message{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

func makeSeries(t *testing.T, symbol string, closes ...float64) *model.PriceSeries {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return model.NewPriceSeries(symbol, start, start.AddDate(0, 0, len(closes)), bars)
}

func TestEvaluate_FiresBelowTarget(t *testing.T) {
	series := makeSeries(t, "AAPL", 100, 102, 101, 105, 98)

	decision, err := Evaluate(series, 99.0)
	require.NoError(t, err)
	assert.Equal(t, Fire, decision)
}

func TestEvaluate_BoundaryIsInclusive(t *testing.T) {
	series := makeSeries(t, "AAPL", 100, 98)

	decision, err := Evaluate(series, 98.0)
	require.NoError(t, err)
	assert.Equal(t, Fire, decision)
}

func TestEvaluate_HoldsAboveTarget(t *testing.T) {
	series := makeSeries(t, "AAPL", 100, 102, 101, 105, 98)

	decision, err := Evaluate(series, 95.0)
	require.NoError(t, err)
	assert.Equal(t, Hold, decision)
}

func TestEvaluate_UsesMaximumDateSample(t *testing.T) {
	// earlier closes are below target, only the latest one counts
	series := makeSeries(t, "AAPL", 90, 91, 120)

	decision, err := Evaluate(series, 100.0)
	require.NoError(t, err)
	assert.Equal(t, Hold, decision)
}

func TestEvaluate_EmptySeriesIsError(t *testing.T) {
	series := model.NewPriceSeries("AAPL", time.Now(), time.Now(), nil)

	_, err := Evaluate(series, 100.0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptySeries))
}

func TestEvaluate_Idempotent(t *testing.T) {
	series := makeSeries(t, "AAPL", 100, 98)

	first, err := Evaluate(series, 99.0)
	require.NoError(t, err)
	second, err := Evaluate(series, 99.0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSubmit_FireDeliversPayload(t *testing.T) {
	transport := &fakeTransport{}
	ev := NewEvaluator(transport)
	series := makeSeries(t, "AAPL", 100, 102, 101, 105, 98)

	outcome, err := ev.Submit(series, Rule{Recipient: "user@example.com", TargetPrice: 99.0})
	require.NoError(t, err)
	assert.Equal(t, Fire, outcome.Decision)
	assert.True(t, outcome.Delivered)
	require.Len(t, transport.sent, 1)

	msg := transport.sent[0]
	assert.Equal(t, "user@example.com", msg.Recipient)
	assert.Equal(t, "AAPL Price Alert", msg.Subject)
	assert.Contains(t, msg.Body, "$98.00")
	assert.Contains(t, msg.Body, "$99.00")
	assert.Contains(t, msg.Body, "AAPL")
}

func TestSubmit_HoldDoesNotSend(t *testing.T) {
	transport := &fakeTransport{}
	ev := NewEvaluator(transport)
	series := makeSeries(t, "AAPL", 100, 102, 101, 105, 98)

	outcome, err := ev.Submit(series, Rule{Recipient: "user@example.com", TargetPrice: 95.0})
	require.NoError(t, err)
	assert.Equal(t, Hold, outcome.Decision)
	assert.False(t, outcome.Delivered)
	assert.Empty(t, transport.sent)
}

func TestSubmit_DeliveryFailureSurfacedNotRetried(t *testing.T) {
	transport := &fakeTransport{err: errors.New("relay refused")}
	ev := NewEvaluator(transport)
	series := makeSeries(t, "AAPL", 98)

	outcome, err := ev.Submit(series, Rule{Recipient: "user@example.com", TargetPrice: 99.0})
	require.NoError(t, err, "delivery failure is an outcome, not a submit error")
	assert.Equal(t, Fire, outcome.Decision)
	assert.False(t, outcome.Delivered)
	require.Error(t, outcome.DeliveryErr)
	assert.Contains(t, outcome.DeliveryErr.Error(), "relay refused")
}

func TestSubmit_EmptySeriesRejected(t *testing.T) {
	ev := NewEvaluator(&fakeTransport{})
	series := model.NewPriceSeries("AAPL", time.Now(), time.Now(), nil)

	_, err := ev.Submit(series, Rule{Recipient: "user@example.com", TargetPrice: 99.0})
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestSubmit_InvalidRuleRejected(t *testing.T) {
	transport := &fakeTransport{}
	ev := NewEvaluator(transport)
	series := makeSeries(t, "AAPL", 98)

	_, err := ev.Submit(series, Rule{Recipient: "not-an-email", TargetPrice: 99.0})
	require.Error(t, err)

	_, err = ev.Submit(series, Rule{Recipient: "user@example.com", TargetPrice: 0})
	require.Error(t, err)
	assert.Empty(t, transport.sent)
}

func TestBuildMessage_TwoDecimalPlaces(t *testing.T) {
	msg := BuildMessage("TSLA", 184.5, 200, "user@example.com")
	assert.Contains(t, msg.Body, "$184.50")
	assert.Contains(t, msg.Body, "$200.00")
	assert.Equal(t, "TSLA Price Alert", msg.Subject)
}
