package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/gautam-rahul-09/genai-verification-system/internal/model"
)

// NewProvider creates an extraction model provider based on
// configuration
func NewProvider(ctx context.Context, config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "ollama":
		return NewOllamaProvider(config)

	case "openai", "azure":
		return NewOpenAIProvider(config)

	case "gemini":
		return NewGeminiProvider(ctx, config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: ollama, openai, gemini)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:    modelConfig.Provider,
		Model:       modelConfig.Model,
		APIKey:      modelConfig.APIKey,
		BaseURL:     modelConfig.BaseURL,
		Timeout:     modelConfig.Timeout,
		MaxTokens:   modelConfig.MaxTokens,
		Temperature: modelConfig.Temperature,
	}
}
