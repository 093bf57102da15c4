// Package narrative generates human-readable recommendations via the
// warehouse-hosted LLM. Narrative text is decorative: every caller must
// keep working when this package returns ErrUnavailable.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phantom-air/irops/internal/logging"
)

// ErrUnavailable means the completion service could not answer.
// Non-fatal everywhere; ranking and commits proceed without narrative.
var ErrUnavailable = errors.New("narrative service unavailable")

// Completer produces completion text for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// cortexQuerier is the warehouse-side completion call.
type cortexQuerier interface {
	CortexComplete(ctx context.Context, model, prompt string) (string, error)
}

// CortexClient implements Completer over the warehouse's hosted
// completion function.
type CortexClient struct {
	q     cortexQuerier
	model string
	log   *slog.Logger
}

// NewCortexClient creates a client for the given model name.
func NewCortexClient(q cortexQuerier, model string) *CortexClient {
	return &CortexClient{
		q:     q,
		model: model,
		log:   logging.New("narrative"),
	}
}

// Complete sends the prompt with the standard system preamble.
func (c *CortexClient) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := c.q.CortexComplete(ctx, c.model, systemPreamble+prompt)
	if err != nil {
		c.log.Warn("completion failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	response = strings.TrimSpace(response)
	if response == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return response, nil
}

// Narrate returns completion text, or "" when the service is down.
// The error is logged, never propagated; use Complete directly when the
// caller wants to distinguish.
func Narrate(ctx context.Context, c Completer, prompt string) string {
	if c == nil {
		return ""
	}
	text, err := c.Complete(ctx, prompt)
	if err != nil {
		return ""
	}
	return text
}
