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

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiService struct {
	ApiKey  string
	BaseURL string
}

func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{ApiKey: apiKey, BaseURL: defaultBaseURL}
}

// SummarizeVideo asks Gemini for a structured summary of a video transcript.
// The model is instructed to answer with a single JSON object so the result
// can be stored field by field.
func (g *GeminiService) SummarizeVideo(ctx context.Context, title, channel, transcript string) (*VideoSummary, error) {
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

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	jsonText := extractJSONObject(text)
	var result VideoSummary
	if err := json.Unmarshal([]byte(jsonText), &result); err != nil {
		return nil, fmt.Errorf("failed to parse summary JSON: %w", err)
	}
	if result.Summary == "" {
		return nil, fmt.Errorf("no summary returned")
	}
	return &result, nil
}

// SummarizeArticle asks Gemini for a short plain-text summary of an article.
func (g *GeminiService) SummarizeArticle(ctx context.Context, title, content string) (string, error) {
	prompt := fmt.Sprintf(`You are an assistant that summarizes web articles.

Summarize the following article in 3-5 sentences. Respond with the summary only,
no preamble, no markdown. Write in the language of the article.

ARTICLE TITLE: %s

ARTICLE:
%s`, title, content)

	text, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no summary returned")
	}
	return text, nil
}

func (g *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	// gemini-2.5-flash is fast enough for interactive summarization
	url := g.BaseURL + "/models/gemini-2.5-flash:generateContent?key=" + g.ApiKey

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API error: %s", string(respBody))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) > 0 && len(result.Candidates[0].Content.Parts) > 0 {
		return result.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", fmt.Errorf("no candidates returned")
}

// extractJSONObject trims markdown fences and anything around the outermost
// JSON object in a model response.
func extractJSONObject(text string) string {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return text
}
