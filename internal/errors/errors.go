package errors

import (
	"errors"
	"fmt"
)

// Kind categorizes the errors the backtest engine can raise
type Kind string

const (
	// KindPlan covers invalid plan input: bad date ranges, non-positive
	// amounts, out-of-bound percentages. Not recoverable by the engine.
	KindPlan Kind = "PLAN"

	// KindData covers empty or unusable price feeds.
	KindData Kind = "DATA"

	// KindTrade covers trades rejected for non-positive price or amount.
	KindTrade Kind = "TRADE"

	// KindHoldings covers sells that exceed the owned quantity.
	KindHoldings Kind = "HOLDINGS"
)

// BacktestError is a categorized error with the component it came from.
type BacktestError struct {
	Kind       Kind
	Component  string
	Message    string
	Underlying error
}

func (e *BacktestError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Kind, e.Component, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Component, e.Message)
}

func (e *BacktestError) Unwrap() error {
	return e.Underlying
}

// New creates a new categorized error.
func New(kind Kind, component, format string, args ...interface{}) *BacktestError {
	return &BacktestError{
		Kind:      kind,
		Component: component,
		Message:   fmt.Sprintf(format, args...),
	}
}

// Wrap attaches kind and component context to an existing error.
// Returns nil when err is nil.
func Wrap(err error, kind Kind, component, message string) *BacktestError {
	if err == nil {
		return nil
	}
	return &BacktestError{
		Kind:       kind,
		Component:  component,
		Message:    message,
		Underlying: err,
	}
}

// IsKind reports whether err (or anything it wraps) is a BacktestError
// of the given kind.
func IsKind(err error, kind Kind) bool {
	var be *BacktestError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// IsInvalidPlan reports whether err is a plan validation error.
func IsInvalidPlan(err error) bool { return IsKind(err, KindPlan) }

// IsNoData reports whether err is a price feed data error.
func IsNoData(err error) bool { return IsKind(err, KindData) }

// IsInvalidTrade reports whether err is a rejected trade error.
func IsInvalidTrade(err error) bool { return IsKind(err, KindTrade) }

// IsInsufficientHoldings reports whether err is an over-sell error.
func IsInsufficientHoldings(err error) bool { return IsKind(err, KindHoldings) }
