// Package completion wraps the language model used to execute prompts.
package completion

import "context"

// Completer turns a fully substituted prompt into model output. Deadlines and
// cancellation travel on ctx.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Disabled is the Completer used when no provider is configured.
type Disabled struct{}

func (Disabled) Complete(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
