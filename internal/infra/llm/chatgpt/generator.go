package chatgpt

import (
	"context"
	"strings"

	"github.com/yanqian/home-solutions/internal/domain/classifier"
	"github.com/yanqian/home-solutions/pkg/metrics"
)

// Generator adapts the client to the classifier domain using JSON mode.
type Generator struct {
	client      *Client
	model       string
	temperature float32
}

// NewGenerator constructs the adapter.
func NewGenerator(client *Client, model string, temperature float32) *Generator {
	return &Generator{client: client, model: model, temperature: temperature}
}

// Generate implements classifier.Generator.
func (g *Generator) Generate(ctx context.Context, prompt classifier.Prompt) (classifier.Completion, error) {
	req := ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages:    make([]Message, 0, 2),
	}
	if system := strings.TrimSpace(prompt.System); system != "" {
		req.Messages = append(req.Messages, Message{Role: "system", Content: system})
	}
	req.Messages = append(req.Messages, Message{Role: "user", Content: prompt.User})
	if len(prompt.JSONFields) > 0 {
		req.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return classifier.Completion{}, err
	}
	completion := classifier.Completion{
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) > 0 {
		completion.Text = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	return completion, nil
}

var _ classifier.Generator = (*Generator)(nil)
