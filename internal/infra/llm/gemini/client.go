package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yanqian/home-solutions/internal/domain/classifier"
	"github.com/yanqian/home-solutions/pkg/metrics"
)

const defaultModel = "gemini-2.5-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator asks Gemini for JSON answers constrained by a response schema.
type Generator struct {
	models      contentGenerator
	modelName   string
	temperature float32
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, temperature float32) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGenerator(client.Models, model, temperature), nil
}

func newGenerator(models contentGenerator, model string, temperature float32) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Generator{models: models, modelName: model, temperature: temperature}
}

// Generate implements classifier.Generator.
func (g *Generator) Generate(ctx context.Context, prompt classifier.Prompt) (classifier.Completion, error) {
	if g == nil || g.models == nil {
		return classifier.Completion{}, errors.New("gemini generator is not initialized")
	}
	user := strings.TrimSpace(prompt.User)
	if user == "" {
		return classifier.Completion{}, errors.New("prompt must not be empty")
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(user), g.buildConfig(prompt))
	if err != nil {
		return classifier.Completion{}, fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return classifier.Completion{}, nil
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			builder.WriteString(part.Text)
		}
	}

	completion := classifier.Completion{Text: strings.TrimSpace(builder.String())}
	if usage := resp.UsageMetadata; usage != nil {
		completion.Usage = metrics.TokenUsage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}
	return completion, nil
}

func (g *Generator) buildConfig(prompt classifier.Prompt) *genai.GenerateContentConfig {
	temperature := g.temperature
	cfg := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if system := strings.TrimSpace(prompt.System); system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}
	if len(prompt.JSONFields) > 0 {
		properties := make(map[string]*genai.Schema, len(prompt.JSONFields))
		for _, field := range prompt.JSONFields {
			properties[field] = &genai.Schema{Type: genai.TypeString}
		}
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = &genai.Schema{
			Type:       genai.TypeObject,
			Properties: properties,
			Required:   append([]string(nil), prompt.JSONFields...),
		}
	}
	return cfg
}

// Model reports the configured model name.
func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

var _ classifier.Generator = (*Generator)(nil)
