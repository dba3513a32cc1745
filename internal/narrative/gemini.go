package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient generates flavor text through the Gemini REST API. A
// zero-value or keyless client is not usable; construct through NewGemini
// and fall back to Fallback{} when the key is absent.
type GeminiClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	fallback   Fallback
}

func NewGemini(baseURL, apiKey, model string) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

func (c *GeminiClient) DailySummary(ctx context.Context, facts DayFacts) (string, error) {
	prompt := fmt.Sprintf(
		"You are the narrator of a farm life simulation. Write 2 short sentences summarizing day %d. Weather: %s. Cash: $%d. Horses: %d. Events: %s. Folksy tone, no lists.",
		facts.Day, facts.Weather, facts.Money, facts.Horses, strings.Join(facts.Messages, "; "))
	return c.generate(ctx, prompt)
}

func (c *GeminiClient) Headlines(ctx context.Context, day int) ([]string, error) {
	prompt := fmt.Sprintf(
		"Write 3 one-line small-town agricultural news headlines for day %d of a farm simulation. One headline per line, no numbering.", day)
	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty headline response")
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out, nil
}

func (c *GeminiClient) HorseBio(ctx context.Context, breed string) (string, error) {
	prompt := fmt.Sprintf("Write a 2 sentence backstory for a %s horse on a working ranch. Warm tone.", breed)
	return c.generate(ctx, prompt)
}

func (c *GeminiClient) FarmName(ctx context.Context) string {
	text, err := c.generate(ctx, "Invent one rustic American farm name, 2-4 words. Reply with the name only.")
	if err != nil || text == "" {
		return c.fallback.FarmName(ctx)
	}
	return text
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("gemini api key not configured")
	}
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty gemini response")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}
