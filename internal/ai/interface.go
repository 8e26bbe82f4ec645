package ai

import (
	"context"
)

// Provider is the completion-endpoint contract: submit prompt text, receive
// either a raw text payload or a failure. An empty string with a nil error
// means the service answered but produced no usable text; classifying that
// as a failure is the caller's concern.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
