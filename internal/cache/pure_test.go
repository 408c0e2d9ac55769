package cache

import (
	"context"
	"strings"
	"testing"
)

func TestHashKey_Deterministic(t *testing.T) {
	t.Parallel()

	caller := "Bearer eyJhbGciOiJIUzI1NiJ9.e30.sig"

	if HashKey(caller) != HashKey(caller) {
		t.Error("Same caller should produce same hash")
	}
}

func TestHashKey_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		caller string
	}{
		{"IPv4", "192.168.1.1"},
		{"IPv6 localhost", "::1"},
		{"bearer", "Bearer abc.def.ghi"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hash := HashKey(tt.caller)
			if len(hash) != 16 {
				t.Errorf("HashKey(%q) length = %d, want 16", tt.caller, len(hash))
			}
			if tt.caller != "" && strings.Contains(hash, tt.caller) {
				t.Errorf("hash leaks the raw key: %s", hash)
			}
		})
	}
}

func TestHashKey_Different(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"different IPv4", "192.168.1.1", "192.168.1.2"},
		{"IPv4 vs IPv6", "127.0.0.1", "::1"},
		{"different tokens", "Bearer a.b.c", "Bearer a.b.d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if HashKey(tt.a) == HashKey(tt.b) {
				t.Errorf("Different keys should produce different hashes: %q and %q", tt.a, tt.b)
			}
		})
	}
}

func TestCheckRateLimit_DisabledSkipsRedis(t *testing.T) {
	t.Parallel()

	// A nil client would panic if the script ran.
	c := &Cache{}
	result, err := c.CheckRateLimit(context.Background(), "caller", 0, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Allowed {
		t.Error("expected request to be allowed")
	}
	if result.Remaining != 7 {
		t.Errorf("Remaining = %d, want 7", result.Remaining)
	}
}
