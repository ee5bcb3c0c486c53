package alert

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/bhanu03042005/marketwatcher/internal/model"
)

// ErrEmptySeries is returned when an evaluation is requested against a
// series with no samples. An empty series is a caller bug, not a Hold.
var ErrEmptySeries = errors.New("cannot evaluate alert on empty price series")

// Decision is the outcome of comparing the latest close to the target.
type Decision string

const (
	Fire Decision = "FIRE"
	Hold Decision = "HOLD"
)

// Rule is a single-shot alert request: notify the recipient when the
// latest close falls to or below the target price. Rules are transient and
// scoped to one submission.
type Rule struct {
	Recipient   string  `validate:"required,email"`
	TargetPrice float64 `validate:"gt=0"`
}

// Message is the notification payload handed to the delivery transport.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// Outcome reports one evaluation back to the user-facing layer. When the
// decision is Fire, Delivered and DeliveryErr carry the transport result
// verbatim; delivery is never retried here.
type Outcome struct {
	Decision    Decision
	LatestClose float64
	Delivered   bool
	DeliveryErr error
}

// Evaluate compares the latest available close (the maximum-date sample,
// not necessarily today's) against the target. The boundary is inclusive:
// latest close equal to the target fires. Stateless and idempotent.
func Evaluate(series *model.PriceSeries, target float64) (Decision, error) {
	latest, ok := series.Latest()
	if !ok {
		return Hold, ErrEmptySeries
	}
	if latest.Close <= target {
		return Fire, nil
	}
	return Hold, nil
}

// BuildMessage formats the notification for a fired rule. Prices are
// rendered to exactly two decimal places.
func BuildMessage(symbol string, latestClose, target float64, recipient string) Message {
	price := decimal.NewFromFloat(latestClose).StringFixed(2)
	limit := decimal.NewFromFloat(target).StringFixed(2)
	return Message{
		Recipient: recipient,
		Subject:   fmt.Sprintf("%s Price Alert", symbol),
		Body: fmt.Sprintf("The price of %s has dropped to $%s, below your target of $%s.",
			symbol, price, limit),
	}
}

// Evaluator runs single-shot alert submissions and delegates delivery.
type Evaluator struct {
	transport Transport
	validate  *validator.Validate
}

// NewEvaluator creates an Evaluator backed by the given transport.
func NewEvaluator(transport Transport) *Evaluator {
	return &Evaluator{
		transport: transport,
		validate:  validator.New(),
	}
}

// Submit validates the rule, evaluates it against the series, and on Fire
// hands the payload to the transport. The returned error covers rule
// validation and the empty-series precondition; a transport failure is not
// an error here, it is surfaced in the outcome for the user-facing layer.
func (e *Evaluator) Submit(series *model.PriceSeries, rule Rule) (*Outcome, error) {
	if err := e.validate.Struct(rule); err != nil {
		return nil, fmt.Errorf("invalid alert rule: %w", err)
	}

	decision, err := Evaluate(series, rule.TargetPrice)
	if err != nil {
		return nil, err
	}

	latest, _ := series.Latest()
	out := &Outcome{Decision: decision, LatestClose: latest.Close}
	if decision != Fire {
		return out, nil
	}

	msg := BuildMessage(series.Symbol, latest.Close, rule.TargetPrice, rule.Recipient)
	if err := e.transport.Send(msg.Recipient, msg.Subject, msg.Body); err != nil {
		out.DeliveryErr = err
		return out, nil
	}
	out.Delivered = true
	return out, nil
}
