package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestSearchClient(baseURL string) *SearchClient {
	return NewSearchClient(SearchOptions{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		CX:        "test-cx",
		ReqPerSec: 1000,
		Burst:     1000,
	}, zap.NewNop())
}

func TestBannerReturnsFirstHit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Acme banner" {
			t.Errorf("query = %q, want %q", got, "Acme banner")
		}
		if got := r.URL.Query().Get("searchType"); got != "image" {
			t.Errorf("searchType = %q, want image", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"link":"https://img.example/acme-banner.png"}]}`))
	}))
	defer srv.Close()

	c := newTestSearchClient(srv.URL)
	if got := c.Banner(context.Background(), "Acme"); got != "https://img.example/acme-banner.png" {
		t.Fatalf("Banner = %q", got)
	}
}

func TestEmptyResultsDegradeToPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Acme logo" {
			t.Errorf("query = %q, want %q", got, "Acme logo")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	c := newTestSearchClient(srv.URL)
	if got := c.Logo(context.Background(), "Acme"); got != "No image found for this company." {
		t.Fatalf("Logo = %q, want the no-image placeholder", got)
	}
}

func TestNon2xxDegradesToErrorPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestSearchClient(srv.URL)
	got := c.Banner(context.Background(), "Acme")
	if !strings.HasPrefix(got, "Error fetching image: ") {
		t.Fatalf("Banner = %q, want an error placeholder", got)
	}
}

func TestTransportFailureDegradesToErrorPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c := newTestSearchClient(baseURL)
	got := c.Logo(context.Background(), "Acme")
	if !strings.HasPrefix(got, "Error fetching image: ") {
		t.Fatalf("Logo = %q, want an error placeholder", got)
	}
}
