package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetcher_ReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "AlphaNews/test" {
			t.Errorf("Expected configured user agent, got %q", ua)
		}
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	fetcher := NewFetcher("AlphaNews/test")

	data, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("Expected fetched body, got %q", string(data))
	}
}

func TestFetcher_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewFetcher("AlphaNews/test")

	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for non-200 status")
	}
}

func TestFetcher_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	fetcher := NewFetcher("AlphaNews/test")

	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for empty body")
	}
}

func TestFetcher_TransportFailure(t *testing.T) {
	fetcher := NewFetcher("AlphaNews/test")

	if _, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1"); err == nil {
		t.Fatal("Expected error for unreachable host")
	}
}
