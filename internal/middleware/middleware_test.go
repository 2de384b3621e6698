package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowAll(t *testing.T) {
	handler := NewCORSMiddleware([]string{"*"}).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := NewCORSMiddleware([]string{"*"}).Handler(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", resp.Code)
	}
	if resp.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("expected allow-methods header on preflight")
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	handler := NewCORSMiddleware([]string{"https://shop.example.com"}).Handler(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin header, got %q", got)
	}
	// The request itself still runs; the browser enforces the policy.
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	handler := NewRateLimiter(1, 2, nil).Handler(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected first two requests allowed, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request limited, got %v", codes)
	}
}

func TestRateLimiterIsPerClient(t *testing.T) {
	handler := NewRateLimiter(1, 1, nil).Handler(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, first)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	second := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, second)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected fresh client to be allowed, got %d", resp.Code)
	}
}

func TestRequestIDAssignedAndEchoed(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen == "" {
		t.Fatal("expected a request id in context")
	}
	if got := resp.Header().Get("X-Request-ID"); got != seen {
		t.Fatalf("expected header %q to match context id %q", got, seen)
	}
}

func TestRequestIDPreservesClientValue(t *testing.T) {
	handler := RequestID(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if got := resp.Header().Get("X-Request-ID"); got != "client-supplied-id" {
		t.Fatalf("expected client id preserved, got %q", got)
	}
}
