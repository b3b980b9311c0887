// Package middleware provides HTTP middleware for the ClimateGuard API.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// maxInboundRequestIDLen caps client-supplied request IDs so they stay
// usable in logs.
const maxInboundRequestIDLen = 64

// requestIDKey is the context key for the request ID.
type requestIDKey struct{}

// RequestID propagates an inbound X-Request-Id or generates one, and
// echoes it in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if len(requestID) > maxInboundRequestIDLen {
			requestID = requestID[:maxInboundRequestIDLen]
		}
		if requestID == "" {
			requestID = "req_" + uuid.New().String()[:22]
		}

		w.Header().Set("X-Request-Id", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
