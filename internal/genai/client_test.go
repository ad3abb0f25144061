package genai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	return NewClient(ClientConfig{
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: url,
		Timeout: 5 * time.Second,
	})
}

func TestGenerateContent(t *testing.T) {
	t.Run("sends_parts_and_auth_header", func(t *testing.T) {
		var gotPath, gotKey string
		var gotBody generateRequest

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("x-goog-api-key")
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &gotBody)
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello "},{"text":"world"}]}}]}`))
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		parts := []Part{
			AudioPart("QUJD", "audio/webm"),
			TextPart("transcribe this"),
		}
		text, err := c.GenerateContent(context.Background(), parts, nil)
		if err != nil {
			t.Fatalf("GenerateContent: %v", err)
		}
		if text != "hello world" {
			t.Errorf("text = %q, want %q", text, "hello world")
		}
		if gotPath != "/v1beta/models/gemini-test:generateContent" {
			t.Errorf("path = %q", gotPath)
		}
		if gotKey != "test-key" {
			t.Errorf("x-goog-api-key = %q, want test-key", gotKey)
		}
		if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 2 {
			t.Fatalf("contents = %+v, want 1 turn with 2 parts", gotBody.Contents)
		}
		if d := gotBody.Contents[0].Parts[0].InlineData; d == nil || d.Data != "QUJD" || d.MIMEType != "audio/webm" {
			t.Errorf("inline data = %+v", d)
		}
		if gotBody.GenerationConfig != nil {
			t.Errorf("generationConfig sent without being requested")
		}
	})

	t.Run("sends_response_schema", func(t *testing.T) {
		var raw map[string]json.RawMessage
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &raw)
			w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{}"}]}}]}`))
		}))
		defer srv.Close()

		cfg := &GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"summary": {Type: TypeString},
				},
				Required: []string{"summary"},
			},
		}
		c := newTestClient(srv.URL)
		if _, err := c.GenerateContent(context.Background(), []Part{TextPart("x")}, cfg); err != nil {
			t.Fatalf("GenerateContent: %v", err)
		}

		gc, ok := raw["generationConfig"]
		if !ok {
			t.Fatal("generationConfig missing from request body")
		}
		if !strings.Contains(string(gc), `"responseMimeType":"application/json"`) {
			t.Errorf("generationConfig = %s, missing responseMimeType", gc)
		}
		if !strings.Contains(string(gc), `"required":["summary"]`) {
			t.Errorf("generationConfig = %s, missing required list", gc)
		}
	})

	t.Run("empty_candidates_is_empty_text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}))
		defer srv.Close()

		text, err := newTestClient(srv.URL).GenerateContent(context.Background(), []Part{TextPart("x")}, nil)
		if err != nil {
			t.Fatalf("GenerateContent: %v", err)
		}
		if text != "" {
			t.Errorf("text = %q, want empty", text)
		}
	})

	t.Run("non_200_is_error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).GenerateContent(context.Background(), []Part{TextPart("x")}, nil)
		if err == nil {
			t.Fatal("GenerateContent succeeded on 429, want error")
		}
		if !strings.Contains(err.Error(), "status 429") {
			t.Errorf("error = %v, want status 429 mentioned", err)
		}
	})

	t.Run("malformed_response_is_error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).GenerateContent(context.Background(), []Part{TextPart("x")}, nil)
		if err == nil {
			t.Fatal("GenerateContent succeeded on malformed body, want error")
		}
	})
}
