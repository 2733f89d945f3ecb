// Package llm is the completion gateway: it sends a role-tagged message list
// to a text-completion backend and returns the raw text of the first choice.
// It never parses or interprets that text; callers own all validation.
package llm

import (
	"context"
	"encoding/json"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// ResponseSchema is a structured-output hint. Backends that support schema
// constrained decoding enforce it; others ignore it.
type ResponseSchema struct {
	Name   string
	Schema json.RawMessage
}

type Options struct {
	Model       string
	Temperature float32
	Schema      *ResponseSchema
}

// Provider is the capability interface for a completion backend. Any
// implementation of "take messages plus config, return text" substitutes
// transparently.
type Provider interface {
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}

// CompletionError covers transport failures and responses with no textual
// content. One outbound call per invocation; no retries.
type CompletionError struct {
	Message string
	Err     error
}

func (e *CompletionError) Error() string {
	if e.Err != nil {
		return "completion failed: " + e.Message + ": " + e.Err.Error()
	}
	return "completion failed: " + e.Message
}

func (e *CompletionError) Unwrap() error { return e.Err }
