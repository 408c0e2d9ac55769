package service

import (
	"errors"
	"testing"
)

func TestValidateSymbol(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		wantErr bool
	}{
		{"plain", "AAPL", false},
		{"lowercase kept", "aapl", false},
		{"exchange suffix", "RELIANCE.NS", false},
		{"with hyphen", "BRK-B", false},
		{"empty", "", true},
		{"spaces", "   ", true},
		{"tabs and newline", "\t\n", true},
		{"open brace", "{symbol", true},
		{"close brace", "AAPL}", true},
		{"template", "{symbol}", true},
		{"embedded template", "AA{x}PL", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSymbol(tt.symbol)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSymbol) {
					t.Fatalf("expected ErrInvalidSymbol, got %v", err)
				}
				var invalid *InvalidSymbolError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected *InvalidSymbolError, got %T", err)
				}
				if invalid.Value != tt.symbol {
					t.Errorf("Value = %q, want %q", invalid.Value, tt.symbol)
				}
				if invalid.Reason == "" {
					t.Error("expected a reason")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.symbol {
				t.Errorf("symbol changed: got %q, want %q", got, tt.symbol)
			}
		})
	}
}
