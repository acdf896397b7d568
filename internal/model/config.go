package model

import "time"

// Config holds the full configuration for a verification run
type Config struct {
	OCR         OCRConfig
	ModelA      LLMConfig
	ModelB      LLMConfig
	Rules       RulesConfig
	Cache       CacheConfig
	Concurrency ConcurrencyConfig
	RateLimit   RateLimitConfig
	Output      OutputConfig
}

// OCRConfig configures document text extraction
type OCRConfig struct {
	// TessdataPrefix points at the Tesseract language data directory.
	// Empty means use the system default.
	TessdataPrefix string

	// Languages for OCR, e.g. "eng"
	Languages []string

	// MinTextLength is the minimum usable extracted-text length.
	// Anything shorter is treated as unreadable.
	MinTextLength int
}

// LLMConfig configures one extraction model collaborator
type LLMConfig struct {
	// Provider name: "ollama", "openai", "gemini"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for cloud providers. Never embedded in source; comes
	// from config file or environment only.
	APIKey string

	// BaseURL for custom endpoints (Ollama, Azure-compatible OpenAI)
	BaseURL string

	// Timeout for a single extraction call
	Timeout time.Duration

	// MaxTokens for the structured response
	MaxTokens int

	// Temperature for sampling; extraction wants it low
	Temperature float32
}

// RulesConfig locates the regulatory rule store
type RulesConfig struct {
	// Path to the extracted-rules file (YAML or JSON)
	Path string

	// Fallback ceilings applied when the file is absent or a rule
	// is missing (industry practice)
	DefaultMaxLTVGeneral  float64
	DefaultMaxLTVAbove75L float64
}

// CacheConfig configures the extracted-text cache
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// ConcurrencyConfig controls batch-mode parallelism
type ConcurrencyConfig struct {
	Workers int
}

// RateLimitConfig throttles model calls per provider
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Languages:     []string{"eng"},
			MinTextLength: 50,
		},
		ModelA: LLMConfig{
			Provider:    "ollama",
			Model:       "llama3:8b",
			Timeout:     60 * time.Second,
			MaxTokens:   1200,
			Temperature: 0.1,
		},
		ModelB: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Timeout:     30 * time.Second,
			MaxTokens:   1200,
			Temperature: 0,
		},
		Rules: RulesConfig{
			DefaultMaxLTVGeneral:  0.80,
			DefaultMaxLTVAbove75L: 0.75,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         4,
		},
		Output: OutputConfig{},
	}
}
