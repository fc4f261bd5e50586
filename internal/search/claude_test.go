// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fluxgen/sourcing-engine/internal/httputil"
)

const sampleClaudeResponse = `{
  "content": [
    {"type": "server_tool_use", "id": "tu1", "name": "web_search"},
    {"type": "text", "text": "[{\"title\": \"Acme Welding Supply\", "},
    {"type": "text", "text": "\"url\": \"https://acmewelding.ca\", \"snippet\": \"Welding supplies\", \"domain\": \"acmewelding.ca\"}]"}
  ]
}`

// newClaudeTestServer stands in for the Claude API and captures the
// request for inspection.
func newClaudeTestServer(t *testing.T, handler http.HandlerFunc) *ClaudeBackend {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	orig := claudeAPIURL
	claudeAPIURL = ts.URL
	t.Cleanup(func() { claudeAPIURL = orig })

	return &ClaudeBackend{
		APIKey: "test-key",
		Model:  "claude-test",
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestClaudeSearch(t *testing.T) {
	var gotReq claudeRequest
	var gotAPIKey, gotVersion string

	backend := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleClaudeResponse))
	})

	text, err := backend.Search(context.Background(), "steel suppliers", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	// Text blocks are concatenated in order; tool-use blocks are skipped.
	results, err := ParseResults(text)
	if err != nil {
		t.Fatalf("response text not parseable: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Acme Welding Supply" {
		t.Errorf("results = %+v", results)
	}

	if gotAPIKey != "test-key" {
		t.Errorf("x-api-key = %q", gotAPIKey)
	}
	if gotVersion != "2023-06-01" {
		t.Errorf("anthropic-version = %q", gotVersion)
	}
	if gotReq.Model != "claude-test" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Tools) != 1 || gotReq.Tools[0].Name != "web_search" {
		t.Errorf("tools = %+v, want the web_search tool", gotReq.Tools)
	}
	if gotReq.Tools[0].MaxUses != 3 {
		t.Errorf("max_uses = %d, want 3", gotReq.Tools[0].MaxUses)
	}
	if len(gotReq.Messages) != 1 || !strings.Contains(gotReq.Messages[0].Content, "steel suppliers") {
		t.Errorf("prompt should embed the query: %+v", gotReq.Messages)
	}
}

func TestClaudeSearchAPIError(t *testing.T) {
	backend := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "overloaded"}`))
	})

	_, err := backend.Search(context.Background(), "steel", 3)
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error = %q, should carry the status code", err.Error())
	}
}

func TestClaudeSearchRetriesRateLimit(t *testing.T) {
	origDelay := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	defer func() { httputil.RetryBaseDelay = origDelay }()

	attempts := 0
	backend := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(sampleClaudeResponse))
	})

	_, err := backend.Search(context.Background(), "steel", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestClaudeSearchNoTextContent(t *testing.T) {
	backend := newClaudeTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content": [{"type": "server_tool_use", "id": "tu1"}]}`))
	})

	_, err := backend.Search(context.Background(), "steel", 3)
	if err == nil {
		t.Fatal("expected an error when the response has no text blocks")
	}
}

func TestRenderSearchPrompt(t *testing.T) {
	prompt, err := renderSearchPrompt("MIG welder suppliers")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(prompt, "Search the web for: MIG welder suppliers") {
		t.Errorf("prompt missing the query line: %s", prompt)
	}
	if !strings.Contains(prompt, "Return ONLY the JSON array") {
		t.Errorf("prompt missing the output instruction: %s", prompt)
	}
}
