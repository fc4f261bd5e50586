// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/template"

	"github.com/fluxgen/sourcing-engine/internal/httputil"
)

// searchPromptTmpl instructs the model to return supplier pages as a
// bare JSON array. Informational and news pages are excluded at the
// prompt level; the parser still treats the response as untrusted
// free-form text. Per prd002-search R2.1.
var searchPromptTmpl = template.Must(template.New("search").Parse(`Search the web for: {{.Query}}

Return the results as a JSON array with objects containing:
- title: company/page title
- url: website URL
- snippet: description/snippet
- domain: domain name

Focus on finding actual supplier companies, manufacturers, or distributors.
Skip general information pages, news articles, or non-supplier content.

Return ONLY the JSON array, no other text.`))

// claudeAPIURL is the Claude API endpoint. Package-level var for test
// substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend calls the Claude Messages API with the web_search tool
// enabled. Per prd002-search R2.2.
type ClaudeBackend struct {
	APIKey string
	Model  string
	Client *http.Client

	// UserAgent is sent with each request when set.
	UserAgent string

	// MaxRetries is the rate-limit retry budget. Zero uses the
	// httputil default.
	MaxRetries int
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Tools     []claudeTool    `json:"tools,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeTool struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	MaxUses int    `json:"max_uses,omitempty"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Name returns the backend identifier.
func (c *ClaudeBackend) Name() string { return "claude" }

// Search sends the supplier search prompt and returns the text blocks
// of the response concatenated in order. Tool-use and citation blocks
// are skipped; only text can carry the result array (R2.3).
func (c *ClaudeBackend) Search(ctx context.Context, query string, maxResults int) (string, error) {
	prompt, err := renderSearchPrompt(query)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	reqBody := claudeRequest{
		Model:     c.Model,
		MaxTokens: 4096,
		Tools: []claudeTool{
			{Type: "web_search_20250305", Name: "web_search", MaxUses: maxResults},
		},
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding Claude response: %w", err)
	}

	var buf bytes.Buffer
	for _, block := range cResp.Content {
		if block.Type == "text" {
			buf.WriteString(block.Text)
		}
	}

	if buf.Len() == 0 {
		return "", fmt.Errorf("Claude API returned no text content")
	}
	return buf.String(), nil
}

func renderSearchPrompt(query string) (string, error) {
	var buf bytes.Buffer
	if err := searchPromptTmpl.Execute(&buf, struct{ Query string }{Query: query}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
