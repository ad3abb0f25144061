package genai

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

// Client calls the Gemini generateContent REST API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// ClientConfig holds the construction parameters for a Client.
type ClientConfig struct {
	APIKey  string
	Model   string
	BaseURL string // e.g. https://generativelanguage.googleapis.com
	Timeout time.Duration
}

// NewClient creates a new generateContent client.
func NewClient(cfg ClientConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Model returns the configured model identifier for logs.
func (c *Client) Model() string { return c.model }

// GenerateContent sends one multimodal generation request and returns the
// concatenated text of the first candidate. An empty candidate list or a
// candidate with no text parts yields an empty string, not an error.
func (c *Client) GenerateContent(ctx context.Context, parts []Part, cfg *GenerationConfig) (string, error) {
	reqBody := generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: cfg,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generateContent API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(result.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
