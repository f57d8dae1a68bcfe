package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestComplete_ReturnsFirstChoice(t *testing.T) {
	var gotBody chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Expected bearer auth header, got %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"first choice"}},{"message":{"content":"second choice"}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")

	got, err := client.Complete(context.Background(), "system prompt", "user prompt", ChatOptions{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got != "first choice" {
		t.Errorf("Expected 'first choice', got %q", got)
	}

	if gotBody.Model != "gpt-4o-mini" {
		t.Errorf("Expected configured model in request, got %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != "system" || gotBody.Messages[1].Role != "user" {
		t.Errorf("Expected system+user messages, got %q/%q", gotBody.Messages[0].Role, gotBody.Messages[1].Role)
	}
}

func TestComplete_OmitsEmptySystemPrompt(t *testing.T) {
	var gotBody chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")

	if _, err := client.Complete(context.Background(), "", "user prompt", ChatOptions{MaxTokens: 150}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(gotBody.Messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != "user" {
		t.Errorf("Expected user message only, got %q", gotBody.Messages[0].Role)
	}
	if gotBody.MaxTokens != 150 {
		t.Errorf("Expected max_tokens 150, got %d", gotBody.MaxTokens)
	}
}

func TestComplete_ProviderErrorSurfacesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")

	_, err := client.Complete(context.Background(), "sys", "user", ChatOptions{})
	if err == nil {
		t.Fatal("Expected error for provider failure")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("Expected status in error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("Expected provider error body in error, got: %v", err)
	}
}

func TestComplete_MissingAPIKey(t *testing.T) {
	client := NewClient("https://api.openai.com/v1", "", "gpt-4o-mini")

	_, err := client.Complete(context.Background(), "sys", "user", ChatOptions{})
	if err == nil {
		t.Fatal("Expected error when API key is missing")
	}
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")

	_, err := client.Complete(context.Background(), "sys", "user", ChatOptions{})
	if err == nil {
		t.Fatal("Expected error when response has no choices")
	}
}

func TestGenerateImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("Expected path /images/generations, got %s", r.URL.Path)
		}
		var req imageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		if req.Size != "1024x1024" {
			t.Errorf("Expected size 1024x1024, got %q", req.Size)
		}
		if req.N != 1 {
			t.Errorf("Expected n=1, got %d", req.N)
		}
		w.Write([]byte(`{"data":[{"url":"https://images.example.com/signed/abc"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")

	url, err := client.GenerateImage(context.Background(), "a rocket over a city", "1024x1024", "standard")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if url != "https://images.example.com/signed/abc" {
		t.Errorf("Expected image URL from provider, got %q", url)
	}
}

func TestGenerateImage_EmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini")

	if _, err := client.GenerateImage(context.Background(), "prompt", "1024x1024", "standard"); err == nil {
		t.Fatal("Expected error for empty image data")
	}
}
