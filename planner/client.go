package planner

import (
	"context"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	aoption "github.com/anthropics/anthropic-sdk-go/option"

	sdk "github.com/reportforge/sdk"
)

// Client is the minimal surface the planner needs from a model
// provider.
type Client interface {
	// Complete sends one prompt and returns the model's full text
	// response.
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-5"

const systemPrompt = "You are a Principal Security Engineer specializing in authorization and complex business logic flaws."

// defaultMaxTokens bounds the response; a full plan fits comfortably.
const defaultMaxTokens = 4096

// AnthropicClient calls the Anthropic Messages API.
type AnthropicClient struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicClient builds a client for the given credential and model
// name. An empty credential fails with sdk.ErrCredentialMissing; an
// empty model name selects DefaultModel.
func NewAnthropicClient(apiKey, model string) (*AnthropicClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, sdk.NewInputError("planner.NewAnthropicClient", sdk.ErrCredentialMissing)
	}
	if model == "" {
		model = DefaultModel
	}
	return &AnthropicClient{
		client: anthropic.NewClient(aoption.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}, nil
}

// Complete implements Client.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   defaultMaxTokens,
		Temperature: anthropic.Float(temperature),
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", sdk.NewExternalError("planner.Complete", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String(), nil
}
