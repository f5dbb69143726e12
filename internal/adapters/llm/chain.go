package llm

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/0xcro3dile/collegebot-go/internal/domain/entities"
)

// Apology is the fixed degraded reply when every provider attempt is
// exhausted. The chain never surfaces a hard failure to the end user.
const Apology = "Sorry — I couldn't reach the model right now. Please try again in a few minutes."

// ErrNotConfigured reports a chain built with no provider credentials.
// This is the only configuration error on the chat surface.
var ErrNotConfigured = errors.New("no provider credentials configured")

// Chain tries an ordered list of providers and stops at the first one that
// yields usable text. Provider failures (bad status, timeout, malformed or
// empty body) are logged and move the chain to the next tier; total
// exhaustion degrades to the apology text rather than an error.
type Chain struct {
	providers []namedProvider
	log       *zap.Logger
}

type namedProvider struct {
	name     string
	complete func(context.Context, []entities.ChatMessage) (string, error)
}

// NewChain creates an empty provider chain.
func NewChain(log *zap.Logger) *Chain {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chain{log: log}
}

// Add appends a provider attempt to the chain. Order of calls is the
// fallback order.
func (c *Chain) Add(name string, provider interface {
	Complete(context.Context, []entities.ChatMessage) (string, error)
}) *Chain {
	c.providers = append(c.providers, namedProvider{name: name, complete: provider.Complete})
	return c
}

// Configured reports whether at least one provider is available.
func (c *Chain) Configured() bool {
	return len(c.providers) > 0
}

// Complete walks the chain. With no providers it fails with ErrNotConfigured;
// otherwise it always returns text.
func (c *Chain) Complete(ctx context.Context, history []entities.ChatMessage) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	for _, p := range c.providers {
		text, err := p.complete(ctx, history)
		if err != nil {
			c.log.Warn("provider attempt failed", zap.String("provider", p.name), zap.Error(err))
			continue
		}
		c.log.Debug("provider answered", zap.String("provider", p.name))
		return text, nil
	}

	return Apology, nil
}
