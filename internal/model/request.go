package model

import "net/url"

// RequestContext carries what a handler extracted from an inbound request.
// It is built once per request and passed by value, so components never
// reach back into the *http.Request.
type RequestContext struct {
	RequestID  string
	PathParams map[string]string
	Query      url.Values
}

// Param returns a path parameter, or "" when absent.
func (rc RequestContext) Param(name string) string {
	return rc.PathParams[name]
}

// QueryValue returns the first value of a query parameter, or "".
func (rc RequestContext) QueryValue(name string) string {
	if rc.Query == nil {
		return ""
	}
	return rc.Query.Get(name)
}

// HasQuery reports whether the query parameter was supplied at all.
func (rc RequestContext) HasQuery(name string) bool {
	if rc.Query == nil {
		return false
	}
	return rc.Query.Has(name)
}
