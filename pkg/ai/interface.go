package ai

import "context"

// VideoSummary is the structured output of a video summarization call.
type VideoSummary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
	Tags      []string `json:"tags"`
}

// SummarizerService is the interface for AI summary generation.
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, etc.)
type SummarizerService interface {
	SummarizeVideo(ctx context.Context, title, channel, transcript string) (*VideoSummary, error)
	SummarizeArticle(ctx context.Context, title, content string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
