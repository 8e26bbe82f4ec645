package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// generateRequest mirrors the Ollama /api/generate body. Streaming stays off
// and format stays "json" so the whole payload arrives in one response field.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Format  string          `json:"format"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumCtx      int     `json:"num_ctx"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// OllamaProvider talks to a local Ollama server. The zero-timeout client is
// deliberate: per-request deadlines come from the caller's context, which is
// how generation timeouts are enforced and cancelled.
type OllamaProvider struct {
	baseURL     string
	model       string
	temperature float64
	numCtx      int
	httpClient  *http.Client
}

func NewOllamaProvider(baseURL, model string, temperature float64, numCtx int) *OllamaProvider {
	return &OllamaProvider{
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		numCtx:      numCtx,
		httpClient:  &http.Client{},
	}
}

// Complete sends prompt to the generate endpoint and returns the raw text
// payload. Transport failures and non-success statuses are errors; an empty
// response field is returned as-is.
func (p *OllamaProvider) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(generateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
		Options: generateOptions{
			Temperature: p.temperature,
			NumCtx:      p.numCtx,
		},
	})
	if err != nil {
		return "", fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("ollama: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ollama: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama: api status %d: %s", resp.StatusCode, snippet(body))
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("ollama: unmarshal response: %w", err)
	}
	if gr.Error != "" {
		return "", fmt.Errorf("ollama: api error: %s", gr.Error)
	}
	return gr.Response, nil
}

// snippet keeps error messages readable when the server returns a page of HTML.
func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
