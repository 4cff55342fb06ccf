package nli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const nliSystemPrompt = `You are a natural language inference classifier.
Given a premise and a hypothesis, estimate the probability of each NLI label.
Respond with ONLY a JSON object of the form
{"entailment": E, "neutral": N, "contradiction": C}
where E, N and C are numbers in [0,1] that sum to 1. No other text.`

// OpenAIProvider implements Provider against the OpenAI API (or any
// OpenAI-compatible endpoint via BaseURL): chat completions for NLI and the
// embeddings endpoint for sentence vectors.
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Models returns the configured classification and embedding models
func (p *OpenAIProvider) Models() (string, string) {
	return p.config.Model, p.config.EmbeddingModel
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Classify runs NLI over a (premise, hypothesis) pair
func (p *OpenAIProvider) Classify(ctx context.Context, premise, hypothesis string) (Result, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.config.Model,
		Temperature: 0,
		MaxTokens:   p.config.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: nliSystemPrompt},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Premise: %s\nHypothesis: %s", premise, hypothesis),
			},
		},
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("openai classify: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("openai classify: empty response")
	}

	return parseLabelScores(resp.Choices[0].Message.Content)
}

// Embed returns a sentence embedding
func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.config.EmbeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embed: empty response")
	}

	raw := resp.Data[0].Embedding
	vector := make([]float64, len(raw))
	for i, v := range raw {
		vector[i] = float64(v)
	}
	return vector, nil
}

// parseLabelScores decodes the model's JSON label map into a Result with
// normalized labels, in a deterministic order.
func parseLabelScores(content string) (Result, error) {
	content = strings.TrimSpace(content)

	// Some models wrap JSON in code fences despite instructions
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var raw map[string]float64
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return Result{}, fmt.Errorf("parse label scores: %w", err)
	}
	if len(raw) == 0 {
		return Result{}, fmt.Errorf("parse label scores: no labels returned")
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := Result{Scores: make([]LabelScore, 0, len(keys))}
	for _, k := range keys {
		result.Scores = append(result.Scores, LabelScore{
			Label: NormalizeLabel(k),
			Raw:   k,
			Score: raw[k],
		})
	}
	return result, nil
}
