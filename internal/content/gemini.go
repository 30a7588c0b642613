package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dil-avcilari/internal/game"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient implements game.Generator against the Gemini REST API.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiClient(apiKey, model, baseURL string) *GeminiClient {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
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
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", errors.New("Gemini API key is not configured")
	}
	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to build Gemini request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build Gemini request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", strings.TrimSpace(c.apiKey))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach Gemini")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Gemini response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("Gemini request failed (%d)", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse Gemini response")
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return "", fmt.Errorf("Gemini error: %s", parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("Gemini returned no content")
	}
	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", errors.New("Gemini returned empty content")
	}
	return text, nil
}

func (c *GeminiClient) RoundTask(ctx context.Context, language string, difficulty game.Difficulty) (string, error) {
	return c.generate(ctx, round1TaskPrompt(language, difficulty))
}

func (c *GeminiClient) ColorTask(ctx context.Context, color, language string, difficulty game.Difficulty) (string, error) {
	return c.generate(ctx, colorTaskPrompt(color, language, difficulty))
}

func (c *GeminiClient) Penalty(ctx context.Context, language string) (string, error) {
	return c.generate(ctx, penaltyPrompt(language))
}

func (c *GeminiClient) LuckFlavor(ctx context.Context, kind game.LuckKind) (string, error) {
	return c.generate(ctx, luckFlavorPrompt(kind))
}

func (c *GeminiClient) WrongWordPuzzle(ctx context.Context, language string, difficulty game.Difficulty) (string, error) {
	return c.generate(ctx, wrongWordPrompt(language, difficulty))
}

func (c *GeminiClient) InterviewQuestion(ctx context.Context, language string, difficulty game.Difficulty) (string, error) {
	return c.generate(ctx, interviewPrompt(language, difficulty))
}

func (c *GeminiClient) Riddle(ctx context.Context, language string) (string, error) {
	return c.generate(ctx, riddlePrompt(language))
}
