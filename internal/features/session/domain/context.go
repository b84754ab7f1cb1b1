package domain

import "context"

type sessionIDKey struct{}

// WithID returns a context carrying the visitor session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// IDFrom returns the visitor session id carried by ctx.
func IDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(string)
	return id, ok && id != ""
}
