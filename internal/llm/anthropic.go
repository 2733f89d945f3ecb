package llm

import (
	"context"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 4096

// AnthropicMessager is the slice of the Anthropic SDK the provider uses,
// kept as an interface so tests can substitute a fake.
type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicProvider calls the Anthropic messages API. It ignores the
// structured-output schema hint; callers embed the expected shape in the
// prompt instead.
type AnthropicProvider struct {
	messages AnthropicMessager
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	return &AnthropicProvider{messages: newAnthropicClient(apiKey)}
}

func (p *AnthropicProvider) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	var system []anthropic.TextBlockParam
	var turns []anthropic.MessageParam
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case RoleAssistant:
			turns = append(turns, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			turns = append(turns, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	resp, err := p.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(opts.Model),
		MaxTokens:   anthropicMaxTokens,
		System:      system,
		Messages:    turns,
		Temperature: anthropic.Float(float64(opts.Temperature)),
	})
	if err != nil {
		return "", &CompletionError{Message: "anthropic request", Err: err}
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	if sb.Len() == 0 {
		return "", &CompletionError{Message: "response contained no text content"}
	}
	return sb.String(), nil
}
