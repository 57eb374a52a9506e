package remote

import "context"

type idempotencyKeyCtx struct{}

// WithIdempotencyKey attaches the key that record services send with a save.
// Callers reuse one key for every retry of the same submission.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

// IdempotencyKey returns the key attached by WithIdempotencyKey.
func IdempotencyKey(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(idempotencyKeyCtx{}).(string)
	return key, ok && key != ""
}
