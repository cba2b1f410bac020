package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiResponse(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return string(body)
}

func TestGeminiSummarizeVideo(t *testing.T) {
	modelOutput := "```json\n{\"summary\": \"A talk about Go concurrency.\", \"key_points\": [\"channels\", \"goroutines\"], \"tags\": [\"go\", \"concurrency\"]}\n```"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiResponse(modelOutput)))
	}))
	defer server.Close()

	svc := NewGeminiService("test-key")
	svc.BaseURL = server.URL

	result, err := svc.SummarizeVideo(context.Background(), "Go Concurrency", "GopherCon", "today we talk about channels...")
	require.NoError(t, err)
	assert.Equal(t, "A talk about Go concurrency.", result.Summary)
	assert.Equal(t, []string{"channels", "goroutines"}, result.KeyPoints)
	assert.Equal(t, []string{"go", "concurrency"}, result.Tags)
}

func TestGeminiSummarizeVideoMalformedModelOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiResponse("I cannot summarize this video.")))
	}))
	defer server.Close()

	svc := NewGeminiService("test-key")
	svc.BaseURL = server.URL

	_, err := svc.SummarizeVideo(context.Background(), "t", "c", "tr")
	assert.Error(t, err)
}

func TestGeminiAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewGeminiService("test-key")
	svc.BaseURL = server.URL

	_, err := svc.SummarizeArticle(context.Background(), "title", "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini API error")
}

func TestOllamaSummarizeArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "llama3", payload["model"])
		assert.Equal(t, false, payload["stream"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"response": "  The article explains generics in Go.  ",
			"done":     true,
		})
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "llama3")
	summary, err := svc.SummarizeArticle(context.Background(), "Generics", "long article text")
	require.NoError(t, err)
	assert.Equal(t, "The article explains generics in Go.", summary)
}

func TestOllamaAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewOllamaService(server.URL, "missing-model")
	_, err := svc.SummarizeArticle(context.Background(), "t", "c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama API error")
}

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced plain", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding prose", "Here you go: {\"a\":1} hope it helps", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanModelJSON(tt.in))
		})
	}
}

func TestFallbackUsesSecondaryOnConnectionError(t *testing.T) {
	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiResponse("fallback summary")))
	}))
	defer gemini.Close()

	geminiSvc := NewGeminiService("test-key")
	geminiSvc.BaseURL = gemini.URL

	// Port 1 is never listening, so the Ollama call fails with a dial error.
	ollama := NewOllamaService("http://127.0.0.1:1", "llama3")

	svc := NewFallbackService(geminiSvc, ollama)
	summary, err := svc.SummarizeArticle(context.Background(), "t", "c")
	require.NoError(t, err)
	assert.Equal(t, "fallback summary", summary)
}
