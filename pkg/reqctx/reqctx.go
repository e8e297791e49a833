// Package reqctx carries request-scoped values shared by the HTTP and gRPC layers.
package reqctx

import "context"

type ctxKey struct{}

// HeaderRequestID is the header/metadata key used to propagate request ids.
const HeaderRequestID = "X-Request-ID"

// WithRequestID stores id on ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the request id stored on ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
