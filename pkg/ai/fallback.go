package ai

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
)

// FallbackService routes between a primary and a secondary provider:
// structured video summaries go to Gemini first (better at strict JSON),
// article summaries go to Ollama first (local, free), each falling back to
// the other provider on connection-level failure.
type FallbackService struct {
	gemini SummarizerService
	ollama *OllamaService
}

// NewFallbackService creates a new fallback service with both providers
func NewFallbackService(gemini SummarizerService, ollama *OllamaService) *FallbackService {
	return &FallbackService{
		gemini: gemini,
		ollama: ollama,
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := err.Error()
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"EOF",
	}
	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

// SummarizeVideo implements SummarizerService
func (f *FallbackService) SummarizeVideo(ctx context.Context, title, channel, transcript string) (*VideoSummary, error) {
	if f.gemini != nil {
		result, err := f.gemini.SummarizeVideo(ctx, title, channel, transcript)
		if err == nil {
			return result, nil
		}
		log.Printf("[AI Fallback] Gemini video summary failed, trying Ollama: %v", err)
	}

	if f.ollama != nil {
		return f.ollama.SummarizeVideo(ctx, title, channel, transcript)
	}
	return nil, fmt.Errorf("no AI provider available")
}

// SummarizeArticle implements SummarizerService
func (f *FallbackService) SummarizeArticle(ctx context.Context, title, content string) (string, error) {
	if f.ollama != nil {
		result, err := f.ollama.SummarizeArticle(ctx, title, content)
		if err == nil {
			return result, nil
		}
		if !isConnectionError(err) {
			return "", err
		}
		log.Printf("[AI Fallback] Ollama unreachable, trying Gemini: %v", err)
	}

	if f.gemini != nil {
		return f.gemini.SummarizeArticle(ctx, title, content)
	}
	return "", fmt.Errorf("no AI provider available")
}
