package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OllamaService implements SummarizerService using a local Ollama LLM
type OllamaService struct {
	BaseURL string
	Model   string
}

// NewOllamaService creates a new Ollama service
func NewOllamaService(baseURL, model string) *OllamaService {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &OllamaService{BaseURL: baseURL, Model: model}
}

// SummarizeVideo implements SummarizerService
func (o *OllamaService) SummarizeVideo(ctx context.Context, title, channel, transcript string) (*VideoSummary, error) {
	// Same prompt shape as the Gemini provider for consistency across providers
	prompt := fmt.Sprintf(`You are an assistant that summarizes YouTube videos from their transcripts.

Respond with a single JSON object, no markdown fences, no extra text:
{"summary": "...", "key_points": ["..."], "tags": ["..."]}

Rules:
- "summary": 2-4 sentences covering the main argument of the video
- "key_points": 3-7 short bullet points, most important first
- "tags": 3-5 lowercase topic tags
- Write in the language of the transcript

VIDEO TITLE: %s
CHANNEL: %s

TRANSCRIPT:
%s`, title, channel, transcript)

	text, err := o.generate(ctx, prompt, 600)
	if err != nil {
		return nil, err
	}

	jsonText := cleanModelJSON(text)
	var result VideoSummary
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return nil, fmt.Errorf("failed to parse summary JSON: %w", err)
	}
	if result.Summary == "" {
		return nil, fmt.Errorf("no summary returned")
	}
	return &result, nil
}

// SummarizeArticle implements SummarizerService
func (o *OllamaService) SummarizeArticle(ctx context.Context, title, content string) (string, error) {
	prompt := fmt.Sprintf(`You are an assistant that summarizes web articles.

Summarize the following article in 3-5 sentences. Respond with the summary only,
no preamble, no markdown. Write in the language of the article.

ARTICLE TITLE: %s

ARTICLE:
%s`, title, content)

	text, err := o.generate(ctx, prompt, 300)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no summary returned")
	}
	return text, nil
}

func (o *OllamaService) generate(ctx context.Context, prompt string, numPredict int) (string, error) {
	url := o.BaseURL + "/api/generate"

	payload := map[string]interface{}{
		"model":  o.Model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": 0.3,
			"num_predict": numPredict,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return result.Response, nil
}

// cleanModelJSON strips markdown fences and surrounding prose from a model
// response that is supposed to be a JSON object.
func cleanModelJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return text
}
