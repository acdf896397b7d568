package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements the Provider interface for Google Gemini
// models (an alternative Model-B backend)
type GeminiProvider struct {
	client *genai.Client
	config Config
}

// NewGeminiProvider creates a new Gemini provider. The client holds a
// gRPC connection, so the caller owns the lifecycle via Close.
func NewGeminiProvider(ctx context.Context, config Config) (*GeminiProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		config: config,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Close releases the underlying client connection
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// IsAvailable checks if the provider is properly configured by
// issuing a minimal generation call
func (p *GeminiProvider) IsAvailable(ctx context.Context) bool {
	model := p.client.GenerativeModel(p.modelName())
	_, err := model.GenerateContent(ctx, genai.Text("ping"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Gemini API check failed: %v\n", err)
		return false
	}
	return true
}

// ExtractJSON runs the extraction prompt with a JSON response MIME
// type so Gemini returns machine-parseable output
func (p *GeminiProvider) ExtractJSON(ctx context.Context, req ExtractRequest) ([]byte, error) {
	name := req.Model
	if name == "" {
		name = p.modelName()
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 1200
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	model := p.client.GenerativeModel(name)
	temperature := req.Temperature
	tokens := int32(maxTokens)
	model.GenerationConfig = genai.GenerationConfig{
		MaxOutputTokens: &tokens,
		Temperature:     &temperature,
	}
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from Gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return cleanJSON(string(text)), nil
		}
	}

	return nil, fmt.Errorf("empty response from Gemini")
}

func (p *GeminiProvider) modelName() string {
	if p.config.Model != "" {
		return p.config.Model
	}
	return "gemini-1.5-flash"
}
