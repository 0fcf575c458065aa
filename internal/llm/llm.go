// Package llm wraps the chat-completion API behind a small interface so the
// relay handler can be tested without network access.
package llm

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// DefaultModel is the model identifier used when none is configured.
const DefaultModel = "gpt-4"

// ErrNoChoices is returned when the API answers without any choice.
var ErrNoChoices = errors.New("chat completion returned no choices")

// Completer sends a single user prompt and returns the generated text.
// Complete blocks until the upstream answers or ctx is done.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds the settings of a chat-completion client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds a single upstream call. Zero means no timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Result is the outcome of an asynchronous completion.
type Result struct {
	Content string
	Err     error
}

// CompleteAsync is the non-blocking variant of Completer.Complete. It returns
// at once; the channel receives exactly one Result and is never closed
// before that. The channel is buffered so the worker never leaks when the
// caller stops listening.
func CompleteAsync(ctx context.Context, c Completer, prompt string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		content, err := c.Complete(ctx, prompt)
		ch <- Result{Content: content, Err: err}
	}()
	return ch
}
