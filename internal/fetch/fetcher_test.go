package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// TestFetchSuccess tests a plain successful fetch.
func TestFetchSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(WithMaxRetries(0))
	page, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if page.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", page.StatusCode)
	}
	if !page.IsHTML() {
		t.Error("expected HTML content type")
	}
	if !strings.Contains(string(page.Body), "hello") {
		t.Errorf("unexpected body: %s", page.Body)
	}
}

// TestFetchNotFoundNoRetry tests that 404 fails immediately without retries.
func TestFetchNotFoundNoRetry(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(WithMaxRetries(2))
	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("expected exactly 1 request, got %d", got)
	}
}

// TestFetchRetriesTransientFailure tests that 5xx responses are retried and
// a later success is returned.
func TestFetchRetriesTransientFailure(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer server.Close()

	f := NewFetcher(WithMaxRetries(1))
	page, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if !strings.Contains(string(page.Body), "recovered") {
		t.Errorf("unexpected body: %s", page.Body)
	}
	if got := requests.Load(); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
}

// TestFetchUnavailableAfterRetries tests exhausting the retry budget.
func TestFetchUnavailableAfterRetries(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(WithMaxRetries(1))
	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if got := requests.Load(); got != 2 {
		t.Errorf("expected 2 requests (1 + 1 retry), got %d", got)
	}
}

// TestFetchForbiddenRetriedAsUnavailable tests that non-404 client errors
// go through the retry loop and surface as ErrUnavailable, not ErrNotFound.
func TestFetchForbiddenRetriedAsUnavailable(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	f := NewFetcher(WithMaxRetries(2))
	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatal("403 must not be classified as not found")
	}
	if got := requests.Load(); got != 3 {
		t.Errorf("expected 3 requests (1 + 2 retries), got %d", got)
	}
}

// TestFetchBodySizeLimit tests that oversized bodies are truncated.
func TestFetchBodySizeLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 1024)))
	}))
	defer server.Close()

	f := NewFetcher(WithMaxRetries(0), WithMaxBodySize(100))
	page, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(page.Body) != 100 {
		t.Errorf("expected body truncated to 100 bytes, got %d", len(page.Body))
	}
}

// TestFetchInvalidURL tests URL validation.
func TestFetchInvalidURL(t *testing.T) {
	t.Parallel()

	f := NewFetcher()

	for _, bad := range []string{"", "ftp://example.com/file", "://no-scheme", "http://"} {
		if _, err := f.Fetch(context.Background(), bad); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("expected ErrInvalidURL for %q, got %v", bad, err)
		}
	}
}

// TestFetchContextCancellation tests that cancellation stops the retry loop.
func TestFetchContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	f := NewFetcher(WithMaxRetries(5))
	start := time.Now()
	_, err := f.Fetch(ctx, server.URL)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("retry loop did not honor cancellation, took %v", elapsed)
	}
}

// TestFetchUserAgentRotation tests that successive requests rotate through
// the configured pool.
func TestFetchUserAgentRotation(t *testing.T) {
	t.Parallel()

	var mu []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu = append(mu, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := NewFetcher(WithMaxRetries(0), WithUserAgents([]string{"ua-a", "ua-b"}))
	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background(), server.URL); err != nil {
			t.Fatalf("fetch %d failed: %v", i, err)
		}
	}

	want := []string{"ua-a", "ua-b", "ua-a"}
	for i, ua := range want {
		if mu[i] != ua {
			t.Errorf("request %d: expected %q, got %q", i, ua, mu[i])
		}
	}
}

// TestNewProxiedFetcherValidation tests proxy address validation.
func TestNewProxiedFetcherValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		address string
		wantErr bool
	}{
		{"127.0.0.1:1080", false},
		{"localhost:9050", false},
		{"", true},
		{"no-port", true},
		{":1080", true},
		{"host:", true},
		{"host:99999", true},
		{"host:12ab", true},
	}

	for _, tt := range tests {
		_, err := NewProxiedFetcher(tt.address)
		if tt.wantErr && !errors.Is(err, ErrInvalidProxyAddress) {
			t.Errorf("address %q: expected ErrInvalidProxyAddress, got %v", tt.address, err)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("address %q: unexpected error %v", tt.address, err)
		}
	}
}
