package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RewriteInput captures the inputs for an instruction-driven document rewrite.
type RewriteInput struct {
	Document    json.RawMessage
	Instruction string
	Lang        string
}

// Client abstracts LLM providers for document rewriting and visitor chat.
type Client interface {
	RewritePortfolio(ctx context.Context, input RewriteInput) (json.RawMessage, error)
	Chat(ctx context.Context, messages []Message) (string, error)
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// RewritePortfolio returns ErrNotImplemented.
func (PlaceholderClient) RewritePortfolio(ctx context.Context, input RewriteInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}

// Chat returns ErrNotImplemented.
func (PlaceholderClient) Chat(ctx context.Context, messages []Message) (string, error) {
	_ = ctx
	_ = messages
	return "", ErrNotImplemented
}
