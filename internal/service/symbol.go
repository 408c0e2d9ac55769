// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSymbol matches every symbol validation failure.
var ErrInvalidSymbol = errors.New("invalid stock symbol")

// InvalidSymbolError reports why a symbol was rejected.
type InvalidSymbolError struct {
	Reason string
	Value  string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid stock symbol %q: %s", e.Value, e.Reason)
}

// Is makes InvalidSymbolError match ErrInvalidSymbol.
func (e *InvalidSymbolError) Is(target error) bool {
	return target == ErrInvalidSymbol
}

// ValidateSymbol checks that a ticker symbol is safe to place in an
// outbound URL. Braces are rejected so a symbol can never expand into a
// path template. The symbol is returned unchanged.
func ValidateSymbol(symbol string) (string, error) {
	if strings.TrimSpace(symbol) == "" {
		return "", &InvalidSymbolError{Reason: "symbol is empty", Value: symbol}
	}
	if strings.ContainsAny(symbol, "{}") {
		return "", &InvalidSymbolError{Reason: "symbol contains template braces", Value: symbol}
	}
	return symbol, nil
}
