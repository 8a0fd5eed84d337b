package model

import (
	"context"
	"fmt"
	"unicode/utf8"
)

const approxRunesPerToken = 4 // heuristic: ~1 token per 4 UTF-8 runes

// TokenCounter counts tokens for message content.
// The interface is model-agnostic to keep the model package lightweight;
// a tiktoken-backed implementation lives in model/tiktoken.
type TokenCounter interface {
	// CountTokens returns the estimated token count for a single message.
	CountTokens(ctx context.Context, message Message) (int, error)

	// CountTokensRange returns the estimated token count for a range of messages.
	CountTokensRange(ctx context.Context, messages []Message, start, end int) (int, error)
}

// SimpleTokenCounter provides a very rough token estimation based on rune length.
// Heuristic: approximately one token per four UTF-8 runes of content.
type SimpleTokenCounter struct{}

// NewSimpleTokenCounter creates a SimpleTokenCounter.
func NewSimpleTokenCounter() *SimpleTokenCounter {
	return &SimpleTokenCounter{}
}

// CountTokens estimates tokens for a single message.
func (c *SimpleTokenCounter) CountTokens(_ context.Context, message Message) (int, error) {
	total := utf8.RuneCountInString(message.Content) / approxRunesPerToken

	// Total should be at least 1 if the message is not empty.
	if len(message.Content) > 0 && total < 1 {
		return 1, nil
	}
	return total, nil
}

// CountTokensRange estimates tokens for a range of messages.
func (c *SimpleTokenCounter) CountTokensRange(ctx context.Context, messages []Message, start, end int) (int, error) {
	if start < 0 || end > len(messages) || start >= end {
		return 0, fmt.Errorf("invalid range: start=%d, end=%d, len=%d", start, end, len(messages))
	}
	total := 0
	for i := start; i < end; i++ {
		n, err := c.CountTokens(ctx, messages[i])
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
