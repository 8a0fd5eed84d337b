// Package tiktoken provides a tiktoken-go based token counter compatible
// with the root model.TokenCounter interface.
package tiktoken

import (
	"context"
	"fmt"

	"github.com/tiktoken-go/tokenizer"

	"github.com/agentacademy/go-agents/model"
)

// Counter counts tokens with a tokenizer.Codec. Counts match what OpenAI
// models actually bill, unlike the rune-based estimate in model.
type Counter struct {
	encoding tokenizer.Codec
}

// New creates a tiktoken-based counter for modelName (e.g. "gpt-4o").
// Unknown models fall back to cl100k_base.
func New(modelName string) (*Counter, error) {
	enc, err := tokenizer.ForModel(tokenizer.Model(modelName))
	if err != nil {
		enc, err = tokenizer.Get(tokenizer.Cl100kBase)
		if err != nil {
			return nil, fmt.Errorf("failed to get fallback tokenizer: %w", err)
		}
	}
	return &Counter{encoding: enc}, nil
}

// CountTokens returns the token count for a single message.
func (c *Counter) CountTokens(_ context.Context, message model.Message) (int, error) {
	if message.Content == "" {
		return 0, nil
	}
	toks, _, err := c.encoding.Encode(message.Content)
	if err != nil {
		return 0, fmt.Errorf("encode content failed: %w", err)
	}
	return len(toks), nil
}

// CountTokensRange returns the token count for messages[start:end].
func (c *Counter) CountTokensRange(ctx context.Context, messages []model.Message, start, end int) (int, error) {
	if start < 0 || end > len(messages) || start >= end {
		return 0, fmt.Errorf("invalid range: start=%d, end=%d, len=%d", start, end, len(messages))
	}
	total := 0
	for i := start; i < end; i++ {
		tokens, err := c.CountTokens(ctx, messages[i])
		if err != nil {
			return 0, fmt.Errorf("count tokens for message %d failed: %w", i, err)
		}
		total += tokens
	}
	return total, nil
}
