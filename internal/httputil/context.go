package httputil

import "context"

// requestIDKey is a context key type for storing the request correlation id.
type requestIDKey struct{}

// WithRequestID stores the correlation id for the current request in the
// context. Set once by the server middleware; every nested call reads it from
// there, so concurrent requests can never observe each other's id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID retrieves the correlation id from the context. Returns an empty
// string outside a request scope.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
