package model

import (
	"net/url"
	"testing"
	"time"
)

func TestNewUserFromClaims(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	claims := IdentityClaims{Subject: "user_2abc", Email: "ada@example.com", Name: "Ada"}

	user := NewUserFromClaims(claims, now)

	if user.ID != "user_2abc" {
		t.Errorf("expected ID user_2abc, got %s", user.ID)
	}
	if user.Email != "ada@example.com" || user.Name != "Ada" {
		t.Errorf("unexpected profile: %+v", user)
	}
	if user.Watchlist == nil || len(user.Watchlist) != 0 {
		t.Errorf("expected empty non-nil watchlist, got %#v", user.Watchlist)
	}
	if user.Preferences == nil || len(user.Preferences) != 0 {
		t.Errorf("expected empty non-nil preferences, got %#v", user.Preferences)
	}
	if !user.CreatedAt.Equal(now) || !user.UpdatedAt.Equal(now) {
		t.Errorf("expected timestamps %v, got %v / %v", now, user.CreatedAt, user.UpdatedAt)
	}
}

func TestRequestContext_Accessors(t *testing.T) {
	rc := RequestContext{
		PathParams: map[string]string{"symbol": "AAPL"},
		Query:      url.Values{"horizon": {"10"}, "empty": {""}},
	}

	if got := rc.Param("symbol"); got != "AAPL" {
		t.Errorf("Param(symbol) = %q", got)
	}
	if got := rc.Param("missing"); got != "" {
		t.Errorf("Param(missing) = %q", got)
	}
	if got := rc.QueryValue("horizon"); got != "10" {
		t.Errorf("QueryValue(horizon) = %q", got)
	}
	if !rc.HasQuery("empty") {
		t.Error("expected HasQuery(empty) to be true")
	}
	if rc.HasQuery("symbols") {
		t.Error("expected HasQuery(symbols) to be false")
	}
}

func TestRequestContext_ZeroValue(t *testing.T) {
	var rc RequestContext

	if rc.Param("symbol") != "" || rc.QueryValue("horizon") != "" || rc.HasQuery("horizon") {
		t.Error("zero RequestContext should report no params")
	}
}
