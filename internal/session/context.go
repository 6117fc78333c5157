package session

import "context"

type contextKey string

const idKey = contextKey("session_id")

// NewContext returns ctx carrying the session id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// IDFromContext returns the session id stored by NewContext, or "".
func IDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(idKey).(string); ok {
		return id
	}
	return ""
}
