package llm

import (
	"context"
	"errors"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type mockMessager struct {
	response *anthropic.Message
	err      error
	last     anthropic.MessageNewParams
	calls    int
}

func (m *mockMessager) New(_ context.Context, params anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	m.calls++
	m.last = params
	return m.response, m.err
}

func withMockClient(mock *mockMessager) func() {
	old := newAnthropicClient
	newAnthropicClient = func(_ string) AnthropicMessager { return mock }
	return func() { newAnthropicClient = old }
}

func newMockMessage(text string) *anthropic.Message {
	return &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{
			{Type: "text", Text: text},
		},
	}
}

func TestAnthropicProviderReturnsFirstChoiceText(t *testing.T) {
	mock := &mockMessager{response: newMockMessage(`{"ok":true}`)}
	cleanup := withMockClient(mock)
	defer cleanup()

	p := NewAnthropicProvider("test-key")
	got, err := p.Complete(context.Background(), []Message{
		{Role: RoleSystem, Content: "system text"},
		{Role: RoleUser, Content: "user text"},
	}, Options{Model: "test-model", Temperature: 0.1})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != `{"ok":true}` {
		t.Fatalf("got %q", got)
	}
	if mock.calls != 1 {
		t.Fatalf("calls = %d", mock.calls)
	}
	if len(mock.last.System) != 1 || mock.last.System[0].Text != "system text" {
		t.Fatalf("system block = %+v", mock.last.System)
	}
	if len(mock.last.Messages) != 1 {
		t.Fatalf("messages = %+v", mock.last.Messages)
	}
}

func TestAnthropicProviderEmptyContentIsCompletionError(t *testing.T) {
	cleanup := withMockClient(&mockMessager{
		response: &anthropic.Message{Content: []anthropic.ContentBlockUnion{}},
	})
	defer cleanup()

	p := NewAnthropicProvider("test-key")
	_, err := p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, Options{Model: "m"})
	var cerr *CompletionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CompletionError, got %v", err)
	}
}

func TestAnthropicProviderTransportErrorIsCompletionError(t *testing.T) {
	cause := errors.New("connection reset")
	cleanup := withMockClient(&mockMessager{err: cause})
	defer cleanup()

	p := NewAnthropicProvider("test-key")
	_, err := p.Complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, Options{Model: "m"})
	var cerr *CompletionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CompletionError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected the transport error to be wrapped")
	}
}
