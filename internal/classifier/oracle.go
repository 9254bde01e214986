package classifier

import "context"

// Oracle is a text-completion backend used to pick a personality from
// the taxonomy. Implementations return the raw completion text.
type Oracle interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}
