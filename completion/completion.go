// Package completion adapts generative-model backends to a single
// request/response contract: system instruction plus ordered history in,
// generated text out.
package completion

import (
	"context"

	"github.com/hanjelito/hackatonNasa2025/domain"
)

// Completer sends a rendered system instruction and the ordered message
// history to a model backend and returns the generated text. One round
// trip per call; implementations do not retry.
type Completer interface {
	Generate(ctx context.Context, systemInstruction string, messages []domain.Turn) (string, error)
}
