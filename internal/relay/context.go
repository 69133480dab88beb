package relay

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// This package tags every forwarded request with a relay ID so the access log,
// the handler logs and the client can be correlated.

// contextKey is a private type to avoid key collisions in the context.
type contextKey string

// IDKey is where the relay ID lives in a request context.
const IDKey = contextKey("relay_id")

// HeaderName is the response header that echoes the relay ID.
const HeaderName = "X-Relay-ID"

// SetID returns a new request with the relay ID added to its context.
func SetID(r *http.Request, id uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), IDKey, id)
	return r.WithContext(ctx)
}

// GetID retrieves the relay ID from the context.
func GetID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(IDKey).(uuid.UUID)
	if !ok {
		// Happens when the middleware is not mounted.
		return uuid.Nil, fmt.Errorf("no relay ID in context")
	}
	return id, nil
}

// IDString is GetID for log fields; it returns "" when no ID is set.
func IDString(ctx context.Context) string {
	id, err := GetID(ctx)
	if err != nil {
		return ""
	}
	return id.String()
}

// Middleware assigns a fresh relay ID to each request and echoes it back.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New()
		w.Header().Set(HeaderName, id.String())
		next.ServeHTTP(w, SetID(r, id))
	})
}
