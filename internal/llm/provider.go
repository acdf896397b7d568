// Package llm provides the two extraction model collaborators. Each
// provider answers a structured-extraction prompt with raw JSON;
// everything downstream (decoding, reconciliation, consensus) happens
// outside this package.
package llm

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrUnavailable signals that a model backend cannot be reached. The
// consensus engine routes the whole field to human review on this
// error; no retries happen here.
var ErrUnavailable = errors.New("model unavailable")

// systemPrompt pins every provider to strict JSON output
const systemPrompt = "You are a strict information extraction engine. " +
	"Return VALID JSON only. No explanation."

// Provider defines the contract for an extraction model
type Provider interface {
	// Name returns the provider name
	Name() string

	// ExtractJSON sends an extraction prompt and returns the model's
	// raw JSON response
	ExtractJSON(ctx context.Context, req ExtractRequest) ([]byte, error)

	// IsAvailable checks if the provider is properly configured and
	// reachable
	IsAvailable(ctx context.Context) bool
}

// ExtractRequest contains the input for one structured extraction call
type ExtractRequest struct {
	// Prompt is the full extraction prompt, document text included
	Prompt string

	// Model overrides the configured model name if non-empty
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature for sampling; extraction wants it near zero
	Temperature float32
}

// Config holds provider configuration
type Config struct {
	// Provider name: "ollama", "openai", "gemini"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for cloud providers, injected via configuration —
	// never embedded in source
	APIKey string

	// BaseURL for custom endpoints (Ollama, Azure-compatible OpenAI)
	BaseURL string

	// Timeout for a single call
	Timeout time.Duration

	// MaxTokens default for responses
	MaxTokens int

	// Temperature default for sampling
	Temperature float32
}

// cleanJSON trims markdown code fences and leading prose that some
// models wrap around their JSON despite the strict system prompt
func cleanJSON(raw string) []byte {
	s := strings.TrimSpace(raw)

	if start := strings.IndexAny(s, "{["); start > 0 {
		s = s[start:]
	}
	if end := strings.LastIndexAny(s, "}]"); end >= 0 && end < len(s)-1 {
		s = s[:end+1]
	}

	return []byte(s)
}
