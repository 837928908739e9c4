// Package llm provides the generator collaborator: chat-completion clients
// for the providers that produce and repair scenario documents.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client is the interface the orchestrator depends on.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// TransientError marks a provider failure worth retrying: rate limits,
// 5xx responses, network hiccups. The repair loop consumes one attempt on a
// transient failure instead of aborting the run.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return fmt.Sprintf("transient llm error: %v", e.Err) }

func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps an error as retryable.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// IsTransient reports whether err is retryable.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
