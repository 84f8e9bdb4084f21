package lookup

import "context"

type requestIDKey struct{}

// WithRequestID tags ctx so the lookup reuses the caller's id in logs
// and spans.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
