package web

import "context"

// confirmContextKey carries the visitor's answer to a confirmation prompt.
type confirmContextKey struct{}

// WithConfirmation stores the visitor's answer in context.
func WithConfirmation(ctx context.Context, accepted bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, confirmContextKey{}, accepted)
}

// ConfirmationFromContext returns the stored answer, false when none is present.
func ConfirmationFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	accepted, _ := ctx.Value(confirmContextKey{}).(bool)
	return accepted
}

// requestConfirmer answers confirmation prompts from the request that
// triggered the deletion.
type requestConfirmer struct{}

func (requestConfirmer) Confirm(ctx context.Context, _ string) bool {
	return ConfirmationFromContext(ctx)
}
