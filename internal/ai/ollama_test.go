package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

func TestOllamaComplete_RequestShape(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"response": "{\"overview\":\"ok\"}"}`))
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "gemma2:2b", 0.7, 2048)
	text, err := provider.Complete(context.Background(), "plan my trip")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != `{"overview":"ok"}` {
		t.Errorf("text = %q", text)
	}

	if got.Model != "gemma2:2b" || got.Prompt != "plan my trip" {
		t.Errorf("request = %+v", got)
	}
	if got.Stream {
		t.Error("stream must be false")
	}
	if got.Format != "json" {
		t.Errorf("format = %q, want json", got.Format)
	}
	if got.Options.Temperature != 0.7 || got.Options.NumCtx != 2048 {
		t.Errorf("options = %+v", got.Options)
	}
}

func TestOllamaComplete_EmptyResponseFieldIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": ""}`))
	}))
	defer server.Close()

	text, err := NewOllamaProvider(server.URL, "m", 0, 0).Complete(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}

func TestOllamaComplete_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := NewOllamaProvider(server.URL, "m", 0, 0).Complete(context.Background(), "p"); err == nil {
		t.Fatal("expected error on non-success status")
	}
}

func TestOllamaComplete_APIErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "out of memory"}`))
	}))
	defer server.Close()

	if _, err := NewOllamaProvider(server.URL, "m", 0, 0).Complete(context.Background(), "p"); err == nil {
		t.Fatal("expected error from error field")
	}
}

func TestOllamaComplete_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server arms its background read and can
		// observe the client disconnect; otherwise this handler never
		// unblocks and server.Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if _, err := NewOllamaProvider(server.URL, "m", 0, 0).Complete(ctx, "p"); err == nil {
		t.Fatal("expected error on context deadline")
	}
}

// TestOllamaComplete_Live exercises a real Ollama server when one is
// configured; CI skips it.
func TestOllamaComplete_Live(t *testing.T) {
	baseURL := os.Getenv("TRIPZY_OLLAMA_URL")
	if baseURL == "" {
		t.Skip("TRIPZY_OLLAMA_URL not set; skipping integration test")
	}
	model := os.Getenv("TRIPZY_OLLAMA_MODEL")
	if model == "" {
		model = "gemma2:2b"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	provider := NewOllamaProvider(baseURL, model, 0.7, 2048)
	text, err := provider.Complete(ctx, `Reply with a JSON object {"ok": true} and nothing else.`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text == "" {
		t.Fatal("expected a non-empty response")
	}
}
