package testutil

import (
	"context"
	"net/http"
	"time"

	"tripcheck/pkg/requestcontext"
)

// WithEmployee attaches verified employee claims to the request, as the auth
// middleware does for a valid bearer token.
func WithEmployee(req *http.Request, claims requestcontext.EmployeeClaims) *http.Request {
	return req.WithContext(requestcontext.WithEmployee(req.Context(), claims))
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
