package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnrecognizedCurrency = errors.New("unrecognized currency")
	ErrAmbiguousCurrency    = fmt.Errorf("ambiguous currency: %w", ErrUnrecognizedCurrency)
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrUpstreamUnavailable  = errors.New("upstream unavailable")
	ErrInsufficientData     = errors.New("insufficient historical data")
)

// CurrencyError carries the raw input and, for ambiguous input, the candidate codes.
type CurrencyError struct {
	Input      string
	Candidates []string
	Err        error
}

func (e *CurrencyError) Error() string {
	if len(e.Candidates) > 0 {
		return fmt.Sprintf("%v: %q matches %s", e.Err, e.Input, strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Input)
}

func (e *CurrencyError) Unwrap() error { return e.Err }
