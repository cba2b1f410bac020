package ai

import "fmt"

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini", "ollama" or "auto"

	// Gemini config
	GeminiAPIKey string

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// NewSummarizerService creates a SummarizerService based on the config.
// This is the factory function - switch AI provider by changing config.Provider.
func NewSummarizerService(cfg Config) (SummarizerService, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return NewGeminiService(cfg.GeminiAPIKey), nil

	case ProviderOllama:
		return NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel), nil

	default:
		// "auto": both providers with fallback when a Gemini key exists,
		// otherwise Ollama alone
		ollama := NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel)
		if cfg.GeminiAPIKey != "" {
			return NewFallbackService(NewGeminiService(cfg.GeminiAPIKey), ollama), nil
		}
		return ollama, nil
	}
}
